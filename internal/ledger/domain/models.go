package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Entry directions.
const (
	DirectionCredit = "credit"
	DirectionDebit  = "debit"
)

// Entry operations. One entry is appended per client per balance mutation.
const (
	OpProductionRecord = "production.record"
	OpProductionRevise = "production.revise"
	OpProductionRemove = "production.remove"
	OpInvoiceRecord    = "invoice.record"
	OpInvoiceRevise    = "invoice.revise"
	OpInvoiceRemove    = "invoice.remove"
	OpAdjustment       = "adjustment"
)

// CreditEntry is the append-only record of one balance movement. Amount is
// the signed delta applied; BalanceAfter is the client's balance once the
// delta landed. Entries are immutable: reversals append new entries, they
// never rewrite old ones.
type CreditEntry struct {
	ID           snowflake.ID  `gorm:"column:id;primaryKey" json:"id"`
	Reference    string        `gorm:"column:reference;uniqueIndex" json:"reference"`
	ClientID     snowflake.ID  `gorm:"column:client_id;index" json:"client_id"`
	Operation    string        `gorm:"column:operation" json:"operation"`
	Direction    string        `gorm:"column:direction" json:"direction"`
	Amount       float64       `gorm:"column:amount" json:"amount"`
	BalanceAfter float64       `gorm:"column:balance_after" json:"balance_after"`
	ProductionID *snowflake.ID `gorm:"column:production_id" json:"production_id,omitempty"`
	InvoiceID    *snowflake.ID `gorm:"column:invoice_id" json:"invoice_id,omitempty"`
	Reason       string        `gorm:"column:reason" json:"reason"`
	CreatedAt    time.Time     `gorm:"column:created_at" json:"created_at"`
}

func (CreditEntry) TableName() string {
	return "credit_entries"
}

// AdjustCreditsRequest is a manual signed correction to a client balance.
// Amount may be zero; the entry then records the reason with no movement.
type AdjustCreditsRequest struct {
	Amount float64 `json:"amount"`
	Reason string  `json:"reason"`
}
