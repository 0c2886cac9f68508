package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/raizsolar/backoffice/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreatePlantRequest) (Plant, error)
	Get(ctx context.Context, id snowflake.ID) (Plant, error)
	List(ctx context.Context, page pagination.Pagination) ([]Plant, error)
	Update(ctx context.Context, id snowflake.ID, req UpdatePlantRequest) (Plant, error)
	Delete(ctx context.Context, id snowflake.ID) error
}
