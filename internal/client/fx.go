package client

import (
	"go.uber.org/fx"

	"github.com/raizsolar/backoffice/internal/client/repository"
	"github.com/raizsolar/backoffice/internal/client/service"
)

var Module = fx.Module("client.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
