package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/raizsolar/backoffice/pkg/db/pagination"
)

type Service interface {
	Record(ctx context.Context, plantID snowflake.ID, req RecordProductionRequest) (Production, error)
	Revise(ctx context.Context, id snowflake.ID, req ReviseProductionRequest) (Production, error)
	Remove(ctx context.Context, id snowflake.ID) error
	Get(ctx context.Context, id snowflake.ID) (Production, error)
	List(ctx context.Context, page pagination.Pagination) ([]Production, error)
	ListByPlant(ctx context.Context, plantID snowflake.ID) ([]Production, error)
}
