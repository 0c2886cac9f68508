package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"

	clientdomain "github.com/raizsolar/backoffice/internal/client/domain"
)

// PercentageCap is the maximum total share a plant may allocate. The 0.1
// headroom absorbs floating-point noise in user-entered percentages.
const PercentageCap = 100.1

// Distribution allocates a percentage of one plant's output to one client.
// The set of rows for a plant is its current allocation table; it has no
// time dimension.
type Distribution struct {
	ID         snowflake.ID         `gorm:"column:id;primaryKey" json:"id"`
	PlantID    snowflake.ID         `gorm:"column:plant_id;index" json:"plant_id"`
	ClientID   snowflake.ID         `gorm:"column:client_id" json:"client_id"`
	Percentage float64              `gorm:"column:percentage" json:"percentage"`
	CreatedAt  time.Time            `gorm:"column:created_at" json:"created_at"`
	Client     *clientdomain.Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

func (Distribution) TableName() string {
	return "distributions"
}

// Share is one (client, percentage) pair in a replace-all request.
type Share struct {
	ClientID   snowflake.ID `json:"client_id" binding:"required"`
	Percentage float64      `json:"percentage" binding:"required"`
}

type SetDistributionsRequest struct {
	Shares []Share `json:"distributions" binding:"required"`
}
