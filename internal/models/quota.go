package models

import "time"

// System defaults applied to every newly provisioned user.
const (
	DefaultTokensPerMinute    = 10000
	DefaultTokensPerDay       = 100000
	DefaultRequestsPerMinute  = 10
	DefaultConcurrentRequests = 2
)

// Quota holds the per-user rate limit configuration enforced by the
// upstream gateway. All four limits are strictly positive at all times.
type Quota struct {
	UserID string `gorm:"column:user_id;type:uuid;primaryKey"` // Owning user ID.

	TokensPerMinute    int64 `gorm:"not null"` // Token budget per minute.
	TokensPerDay       int64 `gorm:"not null"` // Token budget per day.
	RequestsPerMinute  int64 `gorm:"not null"` // Request budget per minute.
	ConcurrentRequests int64 `gorm:"not null"` // Concurrency cap.

	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// TableName overrides the default table name.
func (Quota) TableName() string {
	return "quotas"
}

// DefaultQuota returns a quota row populated with the system defaults.
func DefaultQuota(userID string) Quota {
	return Quota{
		UserID:             userID,
		TokensPerMinute:    DefaultTokensPerMinute,
		TokensPerDay:       DefaultTokensPerDay,
		RequestsPerMinute:  DefaultRequestsPerMinute,
		ConcurrentRequests: DefaultConcurrentRequests,
	}
}
