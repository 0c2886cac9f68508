package ledger

import (
	"go.uber.org/fx"

	"github.com/raizsolar/backoffice/internal/ledger/repository"
	"github.com/raizsolar/backoffice/internal/ledger/service"
)

var Module = fx.Module("ledger.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
