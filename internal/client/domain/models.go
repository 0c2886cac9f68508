package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Client is a consumer unit that receives credit shares and is invoiced
// monthly. CurrentCredits is the denormalized running balance maintained by
// the credit ledger.
type Client struct {
	ID                 snowflake.ID `gorm:"column:id;primaryKey" json:"id"`
	Name               string       `gorm:"column:name" json:"name"`
	Address            string       `gorm:"column:address" json:"address"`
	UCNumber           string       `gorm:"column:uc_number;uniqueIndex" json:"uc_number"`
	Email              string       `gorm:"column:email;uniqueIndex" json:"email"`
	Password           string       `gorm:"column:password" json:"-"`
	Phone              string       `gorm:"column:phone" json:"phone"`
	PaymentDay         int          `gorm:"column:payment_day;default:10" json:"payment_day"`
	KwhValueOriginal   float64      `gorm:"column:kwh_value_original" json:"kwh_value_original"`
	NegotiatedDiscount float64      `gorm:"column:negotiated_discount" json:"negotiated_discount"`
	CurrentCredits     float64      `gorm:"column:current_credits" json:"current_credits"`
	IsActive           bool         `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt          time.Time    `gorm:"column:created_at" json:"created_at"`
	UpdatedAt          time.Time    `gorm:"column:updated_at" json:"updated_at"`
}

func (Client) TableName() string {
	return "clients"
}

type CreateClientRequest struct {
	Name               string  `json:"name" binding:"required"`
	Address            string  `json:"address"`
	UCNumber           string  `json:"uc_number" binding:"required"`
	Email              string  `json:"email" binding:"required"`
	Password           string  `json:"password"`
	Phone              string  `json:"phone"`
	PaymentDay         int     `json:"payment_day"`
	KwhValueOriginal   float64 `json:"kwh_value_original"`
	NegotiatedDiscount float64 `json:"negotiated_discount"`
}

// UpdateClientRequest is the operator-facing partial update; every field is
// editable.
type UpdateClientRequest struct {
	Name               *string  `json:"name"`
	Address            *string  `json:"address"`
	UCNumber           *string  `json:"uc_number"`
	Email              *string  `json:"email"`
	Password           *string  `json:"password"`
	Phone              *string  `json:"phone"`
	PaymentDay         *int     `json:"payment_day"`
	KwhValueOriginal   *float64 `json:"kwh_value_original"`
	NegotiatedDiscount *float64 `json:"negotiated_discount"`
	IsActive           *bool    `json:"is_active"`
}

// UpdateProfileRequest is the client-facing self-service update. Billing
// terms (payment day, tariff, discount, UC number, active flag) are
// deliberately absent: only the client's own contact data can change here.
type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Address  *string `json:"address"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Phone    *string `json:"phone"`
}
