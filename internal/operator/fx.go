package operator

import (
	"go.uber.org/fx"

	"github.com/raizsolar/backoffice/internal/operator/repository"
	"github.com/raizsolar/backoffice/internal/operator/service"
)

var Module = fx.Module("operator.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
