package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/closedcode/gateway-admin/internal/cache"
	"github.com/closedcode/gateway-admin/internal/models"
)

// Quotas is the repository for per-user rate limit rows.
type Quotas struct {
	db    *gorm.DB
	cache *cache.Cache
}

// NewQuotas constructs a Quotas repository. The cache may be nil.
func NewQuotas(db *gorm.DB, c *cache.Cache) *Quotas {
	return &Quotas{db: db, cache: c}
}

// QuotaPatch carries a partial quota update. Nil fields are left
// unchanged.
type QuotaPatch struct {
	TokensPerMinute    *int64
	TokensPerDay       *int64
	RequestsPerMinute  *int64
	ConcurrentRequests *int64
}

// validate checks every supplied field before anything is written. All
// four limits must be strictly positive.
func (p QuotaPatch) validate() error {
	checks := []struct {
		field string
		value *int64
	}{
		{"tokens_per_minute", p.TokensPerMinute},
		{"tokens_per_day", p.TokensPerDay},
		{"requests_per_minute", p.RequestsPerMinute},
		{"concurrent_requests", p.ConcurrentRequests},
	}
	for _, c := range checks {
		if c.value != nil && *c.value <= 0 {
			return &ValidationError{Field: c.field, Reason: "must be > 0"}
		}
	}
	return nil
}

// changes builds the column write set from the supplied fields only, so
// the update is deterministic regardless of request field order.
func (p QuotaPatch) changes() map[string]any {
	changes := map[string]any{}
	if p.TokensPerMinute != nil {
		changes["tokens_per_minute"] = *p.TokensPerMinute
	}
	if p.TokensPerDay != nil {
		changes["tokens_per_day"] = *p.TokensPerDay
	}
	if p.RequestsPerMinute != nil {
		changes["requests_per_minute"] = *p.RequestsPerMinute
	}
	if p.ConcurrentRequests != nil {
		changes["concurrent_requests"] = *p.ConcurrentRequests
	}
	return changes
}

// Get returns the quota row for a user.
func (s *Quotas) Get(ctx context.Context, userID string) (*models.Quota, error) {
	if cached, ok := s.cache.GetQuota(ctx, userID); ok {
		return cached, nil
	}
	var quota models.Quota
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&quota).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: get quota: %w", err)
	}
	s.cache.SetQuota(ctx, &quota)
	return &quota, nil
}

// Update applies a partial quota update. The whole patch is validated
// before any field is written; on a validation failure nothing changes.
func (s *Quotas) Update(ctx context.Context, userID string, patch QuotaPatch) (*models.Quota, error) {
	if err := patch.validate(); err != nil {
		return nil, err
	}
	changes := patch.changes()
	if len(changes) == 0 {
		return nil, &ValidationError{Reason: "no fields to update"}
	}
	changes["updated_at"] = time.Now().UTC()

	res := s.db.WithContext(ctx).
		Model(&models.Quota{}).
		Where("user_id = ?", userID).
		Updates(changes)
	if res.Error != nil {
		return nil, fmt.Errorf("store: update quota: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	s.cache.InvalidateUser(ctx, userID)
	return s.Get(ctx, userID)
}

// CreateDefault inserts the system default quota row for a user. Used by
// the provisioning workflow, inside its transaction.
func (s *Quotas) CreateDefault(tx *gorm.DB, userID string) error {
	quota := models.DefaultQuota(userID)
	if err := tx.Create(&quota).Error; err != nil {
		return fmt.Errorf("store: create default quota: %w", err)
	}
	return nil
}
