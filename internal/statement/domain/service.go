package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Build(ctx context.Context, clientID snowflake.ID) (Statement, error)
}
