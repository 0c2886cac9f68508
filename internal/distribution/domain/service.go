package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Set(ctx context.Context, plantID snowflake.ID, req SetDistributionsRequest) ([]Distribution, error)
	ListByPlant(ctx context.Context, plantID snowflake.ID) ([]Distribution, error)
}
