package distribution

import (
	"go.uber.org/fx"

	"github.com/raizsolar/backoffice/internal/distribution/repository"
	"github.com/raizsolar/backoffice/internal/distribution/service"
)

var Module = fx.Module("distribution.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
