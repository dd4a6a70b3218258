package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a gateway account managed through the admin console.
// Every user owns exactly one Quota and one Policy row, created together
// at provisioning time.
type User struct {
	ID string `gorm:"type:uuid;primaryKey"` // Opaque identifier, generated on creation.

	Email   string `gorm:"type:text;not null;uniqueIndex"`                 // Unique email, searched case-insensitively.
	OIDCSub string `gorm:"column:oidc_sub;type:text;not null;uniqueIndex"` // External identity subject.

	// No gorm default: a false value must reach the insert as-is, and
	// callers always set the flag explicitly.
	IsActive bool `gorm:"not null"` // Whether the user may use the gateway.

	CreatedAt time.Time `gorm:"not null;index;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"`       // Last update timestamp.
}

// TableName overrides the default table name.
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns a UUID primary key when none is set.
func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
