package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Principal kinds attached to a session.
const (
	KindOperator = "operator"
	KindClient   = "client"
)

// Session is a server-side login session. Only the SHA-256 hash of the
// opaque cookie token is stored.
type Session struct {
	ID            snowflake.ID `gorm:"column:id;primaryKey" json:"id"`
	TokenHash     string       `gorm:"column:token_hash;uniqueIndex" json:"-"`
	PrincipalKind string       `gorm:"column:principal_kind" json:"principal_kind"`
	PrincipalID   snowflake.ID `gorm:"column:principal_id" json:"principal_id"`
	UserAgent     string       `gorm:"column:user_agent" json:"user_agent"`
	IP            string       `gorm:"column:ip" json:"ip"`
	ExpiresAt     time.Time    `gorm:"column:expires_at" json:"expires_at"`
	CreatedAt     time.Time    `gorm:"column:created_at" json:"created_at"`
}

func (Session) TableName() string {
	return "sessions"
}

// LoginRequest authenticates an operator by email, or a client by email or
// UC number.
type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`

	// Filled by the handler, not the request body.
	UserAgent string `json:"-"`
	IP        string `json:"-"`
}

// Principal identifies the authenticated caller for the request lifetime.
type Principal struct {
	Kind string       `json:"kind"`
	ID   snowflake.ID `json:"id"`
	Name string       `json:"name"`
}
