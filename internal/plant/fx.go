package plant

import (
	"go.uber.org/fx"

	"github.com/raizsolar/backoffice/internal/plant/repository"
	"github.com/raizsolar/backoffice/internal/plant/service"
)

var Module = fx.Module("plant.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
