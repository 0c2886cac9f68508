package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Plant is a generation plant whose monthly output is shared among clients.
type Plant struct {
	ID              snowflake.ID      `gorm:"column:id;primaryKey" json:"id"`
	Name            string            `gorm:"column:name" json:"name"`
	Slug            string            `gorm:"column:slug;uniqueIndex" json:"slug"`
	Address         string            `gorm:"column:address" json:"address"`
	UCNumber        string            `gorm:"column:uc_number;uniqueIndex" json:"uc_number"`
	CapacityKw      float64           `gorm:"column:capacity_kw" json:"capacity_kw"`
	AcquisitionCost float64           `gorm:"column:acquisition_cost" json:"acquisition_cost"`
	MaintenanceCost float64           `gorm:"column:maintenance_cost" json:"maintenance_cost"`
	PixKey          string            `gorm:"column:pix_key" json:"pix_key"`
	Metadata        datatypes.JSONMap `gorm:"column:metadata" json:"metadata,omitempty"`
	IsActive        bool              `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt       time.Time         `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"column:updated_at" json:"updated_at"`
}

func (Plant) TableName() string {
	return "plants"
}

// CreatePlantRequest carries the fields accepted when registering a plant.
type CreatePlantRequest struct {
	Name            string  `json:"name" binding:"required"`
	Address         string  `json:"address"`
	UCNumber        string  `json:"uc_number" binding:"required"`
	CapacityKw      float64 `json:"capacity_kw"`
	AcquisitionCost float64 `json:"acquisition_cost"`
	MaintenanceCost float64 `json:"maintenance_cost"`
	PixKey          string  `json:"pix_key"`
}

// UpdatePlantRequest carries a partial update; nil fields are left untouched.
type UpdatePlantRequest struct {
	Name            *string  `json:"name"`
	Address         *string  `json:"address"`
	UCNumber        *string  `json:"uc_number"`
	CapacityKw      *float64 `json:"capacity_kw"`
	AcquisitionCost *float64 `json:"acquisition_cost"`
	MaintenanceCost *float64 `json:"maintenance_cost"`
	PixKey          *string  `json:"pix_key"`
	IsActive        *bool    `json:"is_active"`
}
