package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/raizsolar/backoffice/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateClientRequest) (Client, error)
	Get(ctx context.Context, id snowflake.ID) (Client, error)
	GetByUCNumber(ctx context.Context, ucNumber string) (Client, error)
	List(ctx context.Context, page pagination.Pagination) ([]Client, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateClientRequest) (Client, error)
	UpdateProfile(ctx context.Context, id snowflake.ID, req UpdateProfileRequest) (Client, error)
	Delete(ctx context.Context, id snowflake.ID) error
}
