package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertEntry(ctx context.Context, db *gorm.DB, entry *CreditEntry) error
	ListByClient(ctx context.Context, db *gorm.DB, clientID snowflake.ID) ([]CreditEntry, error)
	ListAdjustmentsByClient(ctx context.Context, db *gorm.DB, clientID snowflake.ID) ([]CreditEntry, error)
}
