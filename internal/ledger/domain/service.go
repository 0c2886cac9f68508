package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"

	invoicedomain "github.com/raizsolar/backoffice/internal/invoice/domain"
	productiondomain "github.com/raizsolar/backoffice/internal/production/domain"
)

// Service is the credit ledger engine. Every operation runs in one
// transaction: the triggering record and all resulting balance mutations
// commit or roll back together.
type Service interface {
	RecordProduction(ctx context.Context, plantID snowflake.ID, req productiondomain.RecordProductionRequest) (productiondomain.Production, error)
	ReviseProduction(ctx context.Context, id snowflake.ID, req productiondomain.ReviseProductionRequest) (productiondomain.Production, error)
	RemoveProduction(ctx context.Context, id snowflake.ID) error

	RecordInvoice(ctx context.Context, invoice *invoicedomain.Invoice) error
	ReviseInvoice(ctx context.Context, id snowflake.ID, req invoicedomain.UpdateInvoiceRequest) (invoicedomain.Invoice, error)
	RemoveInvoice(ctx context.Context, id snowflake.ID) error

	AdjustCredits(ctx context.Context, clientID snowflake.ID, req AdjustCreditsRequest) (CreditEntry, error)
	EntriesByClient(ctx context.Context, clientID snowflake.ID) ([]CreditEntry, error)
	AdjustmentsByClient(ctx context.Context, clientID snowflake.ID) ([]CreditEntry, error)
}
