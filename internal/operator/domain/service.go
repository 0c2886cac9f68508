package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/raizsolar/backoffice/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateOperatorRequest) (Operator, error)
	Get(ctx context.Context, id snowflake.ID) (Operator, error)
	List(ctx context.Context, page pagination.Pagination) ([]Operator, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateOperatorRequest) (Operator, error)
	Delete(ctx context.Context, id snowflake.ID) error
}
