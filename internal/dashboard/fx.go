package dashboard

import (
	"go.uber.org/fx"

	"github.com/raizsolar/backoffice/internal/dashboard/service"
)

var Module = fx.Module("dashboard.service",
	fx.Provide(service.New),
)
