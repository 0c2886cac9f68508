package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/raizsolar/backoffice/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, plant *Plant) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Plant, error)
	FindByUCNumber(ctx context.Context, db *gorm.DB, ucNumber string) (*Plant, error)
	List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]Plant, error)
	Update(ctx context.Context, db *gorm.DB, plant *Plant) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
