package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/raizsolar/backoffice/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, operator *Operator) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Operator, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*Operator, error)
	FindByCPF(ctx context.Context, db *gorm.DB, cpf string) (*Operator, error)
	List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]Operator, error)
	Update(ctx context.Context, db *gorm.DB, operator *Operator) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
