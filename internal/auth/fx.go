package auth

import (
	"go.uber.org/fx"

	"github.com/raizsolar/backoffice/internal/auth/repository"
	"github.com/raizsolar/backoffice/internal/auth/service"
	"github.com/raizsolar/backoffice/internal/auth/session"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
	fx.Provide(session.NewManager),
)
