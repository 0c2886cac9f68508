package domain

import (
	"context"
	"time"
)

// Service issues and resolves login sessions for operators and clients.
type Service interface {
	LoginOperator(ctx context.Context, req LoginRequest) (Principal, string, time.Time, error)
	LoginClient(ctx context.Context, req LoginRequest) (Principal, string, time.Time, error)
	Logout(ctx context.Context, token string) error
	Resolve(ctx context.Context, token string) (Principal, error)
}
