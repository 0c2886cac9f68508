package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"

	plantdomain "github.com/raizsolar/backoffice/internal/plant/domain"
)

// Production is one plant's recorded output for one month. Crediting is
// derived from the plant's distribution table at the moment the record is
// created, revised or removed; the row itself carries no client reference.
type Production struct {
	ID        snowflake.ID       `gorm:"column:id;primaryKey" json:"id"`
	PlantID   snowflake.ID       `gorm:"column:plant_id;index" json:"plant_id"`
	Month     string             `gorm:"column:month" json:"month"`
	Kwh       float64            `gorm:"column:kwh" json:"kwh"`
	CreatedAt time.Time          `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time          `gorm:"column:updated_at" json:"updated_at"`
	Plant     *plantdomain.Plant `gorm:"foreignKey:PlantID" json:"plant,omitempty"`
}

func (Production) TableName() string {
	return "productions"
}

// Kwh has no required binding: a month with zero output is a valid record.
type RecordProductionRequest struct {
	Month string  `json:"month" binding:"required"`
	Kwh   float64 `json:"kwh_generated"`
}

type ReviseProductionRequest struct {
	Month *string  `json:"month"`
	Kwh   *float64 `json:"kwh_generated"`
}
