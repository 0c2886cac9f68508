package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/raizsolar/backoffice/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Production, error)
	List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]Production, error)
	ListByPlant(ctx context.Context, db *gorm.DB, plantID snowflake.ID) ([]Production, error)
}
