package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/raizsolar/backoffice/pkg/db/pagination"
	"gorm.io/gorm"
)

// ListInvoiceFilter narrows invoice listings; zero values are ignored.
type ListInvoiceFilter struct {
	ClientID snowflake.ID
	Month    string
	Status   string
}

type Repository interface {
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Invoice, error)
	List(ctx context.Context, db *gorm.DB, filter ListInvoiceFilter, page pagination.Pagination) ([]Invoice, error)
	ListByClient(ctx context.Context, db *gorm.DB, clientID snowflake.ID) ([]Invoice, error)
}
