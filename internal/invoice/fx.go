package invoice

import (
	"go.uber.org/fx"

	"github.com/raizsolar/backoffice/internal/invoice/repository"
	"github.com/raizsolar/backoffice/internal/invoice/service"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
