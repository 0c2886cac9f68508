package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/raizsolar/backoffice/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateInvoiceRequest) (Invoice, error)
	Get(ctx context.Context, id snowflake.ID) (Invoice, error)
	List(ctx context.Context, filter ListInvoiceFilter, page pagination.Pagination) ([]Invoice, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateInvoiceRequest) (Invoice, error)
	Delete(ctx context.Context, id snowflake.ID) error
	RenderPDF(ctx context.Context, id snowflake.ID) ([]byte, error)
}
