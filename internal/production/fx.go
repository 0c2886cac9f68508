package production

import (
	"go.uber.org/fx"

	"github.com/raizsolar/backoffice/internal/production/repository"
	"github.com/raizsolar/backoffice/internal/production/service"
)

var Module = fx.Module("production.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
