package statement

import (
	"go.uber.org/fx"

	"github.com/raizsolar/backoffice/internal/statement/service"
)

var Module = fx.Module("statement.service",
	fx.Provide(service.New),
)
