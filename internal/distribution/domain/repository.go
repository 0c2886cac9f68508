package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	ListByPlant(ctx context.Context, db *gorm.DB, plantID snowflake.ID) ([]Distribution, error)
	ListByClient(ctx context.Context, db *gorm.DB, clientID snowflake.ID) ([]Distribution, error)
	DeleteByPlant(ctx context.Context, db *gorm.DB, plantID snowflake.ID) error
	Insert(ctx context.Context, db *gorm.DB, dist *Distribution) error
}
