package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Common audit statuses written by the upstream gateway. The column is an
// open string, not a closed enum: unknown statuses are stored as-is.
const (
	AuditStatusSuccess     = "success"
	AuditStatusError       = "error"
	AuditStatusBlocked     = "blocked"
	AuditStatusRateLimited = "rate_limited"
	AuditStatusPending     = "pending"
)

// AuditLog is an immutable record of one gateway interaction. Rows are
// written by the upstream gateway and only read here; no update path
// exists. UserID is a soft reference and may be nil for unauthenticated
// or system actions.
type AuditLog struct {
	ID string `gorm:"type:uuid;primaryKey"` // Primary key.

	UserID    *string   `gorm:"type:uuid;index"`         // Acting user, when known.
	Timestamp time.Time `gorm:"not null;index"`          // When the interaction happened.
	Action    string    `gorm:"type:text;not null"`      // Free-text action label.
	Status    string    `gorm:"type:text;not null;index"` // Outcome label.

	TokensUsed   *int64   // Tokens consumed, when metered.
	ResponseTime *float64 // Response time in milliseconds, when measured.

	Prompt            *string        `gorm:"type:text"`  // Raw prompt text, when captured.
	UserRequest       datatypes.JSON `gorm:"type:jsonb"` // Structured request payload.
	ServerComputation datatypes.JSON `gorm:"type:jsonb"` // Structured server-side computation payload.
	ModelResponse     datatypes.JSON `gorm:"type:jsonb"` // Structured model response payload.
	Metadata          datatypes.JSON `gorm:"type:jsonb"` // Arbitrary metadata payload.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Row creation timestamp.
}

// TableName overrides the default table name.
func (AuditLog) TableName() string {
	return "audit_logs"
}

// BeforeCreate assigns a UUID primary key and a timestamp when unset.
func (l *AuditLog) BeforeCreate(*gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.Timestamp.IsZero() {
		l.Timestamp = time.Now().UTC()
	}
	return nil
}
