package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"

	clientdomain "github.com/raizsolar/backoffice/internal/client/domain"
)

// Invoice statuses. Billing flags (cobrado/pago/recebido) track the
// collection workflow independently of the status label.
const (
	StatusOpen    = "aberto"
	StatusOverdue = "vencido"
	StatusPaid    = "pago"
)

// Invoice is one client's bill for one month. CreditedBalance is the amount
// of accumulated credit consumed by this invoice; recording, revising and
// removing an invoice moves that amount through the client's balance.
type Invoice struct {
	ID                   snowflake.ID         `gorm:"column:id;primaryKey" json:"id"`
	ClientID             snowflake.ID         `gorm:"column:client_id;index" json:"client_id"`
	Month                string               `gorm:"column:month" json:"month"`
	InvoiceNumber        string               `gorm:"column:invoice_number" json:"invoice_number"`
	ConsumptionKwh       float64              `gorm:"column:consumption_kwh" json:"consumption_kwh"`
	KwhValue             float64              `gorm:"column:kwh_value" json:"kwh_value"`
	KwhValueOriginal     float64              `gorm:"column:kwh_value_original" json:"kwh_value_original"`
	KwhValueInjection    float64              `gorm:"column:kwh_value_injection" json:"kwh_value_injection"`
	CreditedBalance      float64              `gorm:"column:credited_balance" json:"credited_balance"`
	InvoiceValue         float64              `gorm:"column:invoice_value" json:"invoice_value"`
	FixedCost            float64              `gorm:"column:fixed_cost" json:"fixed_cost"`
	TotalInvoiced        float64              `gorm:"column:total_invoiced" json:"total_invoiced"`
	AmountToCollect      float64              `gorm:"column:amount_to_collect" json:"amount_to_collect"`
	ValueWithoutDiscount float64              `gorm:"column:value_without_discount" json:"value_without_discount"`
	TotalValue           float64              `gorm:"column:total_value" json:"total_value"`
	OriginalValue        float64              `gorm:"column:original_value" json:"original_value"`
	Discount             float64              `gorm:"column:discount" json:"discount"`
	Profit               float64              `gorm:"column:profit" json:"profit"`
	Status               string               `gorm:"column:status;default:aberto" json:"status"`
	StatusCobrado        bool                 `gorm:"column:status_cobrado" json:"status_cobrado"`
	StatusPago           bool                 `gorm:"column:status_pago" json:"status_pago"`
	StatusRecebido       bool                 `gorm:"column:status_recebido" json:"status_recebido"`
	CreatedAt            time.Time            `gorm:"column:created_at" json:"created_at"`
	UpdatedAt            time.Time            `gorm:"column:updated_at" json:"updated_at"`
	Client               *clientdomain.Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

func (Invoice) TableName() string {
	return "invoices"
}

type CreateInvoiceRequest struct {
	ClientID             snowflake.ID `json:"client_id" binding:"required"`
	Month                string       `json:"month" binding:"required"`
	InvoiceNumber        string       `json:"invoice_number"`
	ConsumptionKwh       float64      `json:"consumption_kwh"`
	KwhValue             *float64     `json:"kwh_value"`
	KwhValueOriginal     *float64     `json:"kwh_value_original"`
	KwhValueInjection    float64      `json:"kwh_value_injection"`
	CreditedBalance      float64      `json:"credited_balance"`
	InvoiceValue         float64      `json:"invoice_value"`
	FixedCost            *float64     `json:"fixed_cost"`
	TotalInvoiced        float64      `json:"total_invoiced"`
	AmountToCollect      float64      `json:"amount_to_collect"`
	ValueWithoutDiscount float64      `json:"value_without_discount"`
	TotalValue           float64      `json:"total_value"`
	OriginalValue        float64      `json:"original_value"`
	Discount             *float64     `json:"discount"`
	Profit               float64      `json:"profit"`
	Status               string       `json:"status"`
}

type UpdateInvoiceRequest struct {
	Month                *string  `json:"month"`
	InvoiceNumber        *string  `json:"invoice_number"`
	ConsumptionKwh       *float64 `json:"consumption_kwh"`
	KwhValue             *float64 `json:"kwh_value"`
	KwhValueOriginal     *float64 `json:"kwh_value_original"`
	KwhValueInjection    *float64 `json:"kwh_value_injection"`
	CreditedBalance      *float64 `json:"credited_balance"`
	InvoiceValue         *float64 `json:"invoice_value"`
	FixedCost            *float64 `json:"fixed_cost"`
	TotalInvoiced        *float64 `json:"total_invoiced"`
	AmountToCollect      *float64 `json:"amount_to_collect"`
	ValueWithoutDiscount *float64 `json:"value_without_discount"`
	TotalValue           *float64 `json:"total_value"`
	OriginalValue        *float64 `json:"original_value"`
	Discount             *float64 `json:"discount"`
	Profit               *float64 `json:"profit"`
	Status               *string  `json:"status"`
	StatusCobrado        *bool    `json:"status_cobrado"`
	StatusPago           *bool    `json:"status_pago"`
	StatusRecebido       *bool    `json:"status_recebido"`
}
