package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Operator is a back-office user with full administrative access.
type Operator struct {
	ID        snowflake.ID `gorm:"column:id;primaryKey" json:"id"`
	Name      string       `gorm:"column:name" json:"name"`
	Email     string       `gorm:"column:email;uniqueIndex" json:"email"`
	CPF       string       `gorm:"column:cpf" json:"cpf"`
	Password  string       `gorm:"column:password" json:"-"`
	IsActive  bool         `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt time.Time    `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time    `gorm:"column:updated_at" json:"updated_at"`
}

func (Operator) TableName() string {
	return "operators"
}

type CreateOperatorRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	CPF      string `json:"cpf"`
	Password string `json:"password" binding:"required"`
}

type UpdateOperatorRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	CPF      *string `json:"cpf"`
	Password *string `json:"password"`
	IsActive *bool   `json:"is_active"`
}
