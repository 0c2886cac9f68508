package domain

import (
	"github.com/bwmarrin/snowflake"

	invoicedomain "github.com/raizsolar/backoffice/internal/invoice/domain"
)

// Statement entry types.
const (
	TypeGeneration = "geracao"
	TypeBilling    = "faturamento"
	TypeAdjustment = "ajuste"
)

// Statuses for non-invoice lines. Billing lines carry the invoice status.
const (
	StatusCompleted = "concluído"
	StatusProcessed = "processado"
)

// Entry is one line of a client's transaction history. Kwh is signed:
// generation credits are positive, billed credits negative.
type Entry struct {
	Date        string                 `json:"date"`
	Type        string                 `json:"type"`
	Kwh         float64                `json:"kwh"`
	Description string                 `json:"description"`
	Status      string                 `json:"status,omitempty"`
	Item        *invoicedomain.Invoice `json:"item,omitempty"`
}

// Statement is a point-in-time snapshot of a client's history, newest first.
type Statement struct {
	ClientID       snowflake.ID `json:"client_id"`
	CurrentCredits float64      `json:"current_credits"`
	Entries        []Entry      `json:"entries"`
}
