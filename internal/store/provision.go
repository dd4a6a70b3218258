package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/closedcode/gateway-admin/internal/cache"
	dbutil "github.com/closedcode/gateway-admin/internal/db"
	"github.com/closedcode/gateway-admin/internal/models"
)

// Provisioner creates users together with their default quota and
// policy rows. A user must never exist without exactly one of each, so
// the three inserts run in a single transaction.
type Provisioner struct {
	db       *gorm.DB
	quotas   *Quotas
	policies *Policies
	cache    *cache.Cache
}

// NewProvisioner constructs a Provisioner. The cache may be nil.
func NewProvisioner(db *gorm.DB, quotas *Quotas, policies *Policies, c *cache.Cache) *Provisioner {
	return &Provisioner{db: db, quotas: quotas, policies: policies, cache: c}
}

// CreateUserWithDefaults atomically inserts the user, its default quota
// and its default policy. Any failure rolls back all three inserts.
func (p *Provisioner) CreateUserWithDefaults(ctx context.Context, email, oidcSub string, isActive bool) (*models.User, error) {
	user, err := newUser(email, oidcSub, isActive)
	if err != nil {
		return nil, err
	}

	errTx := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if errCreate := tx.Create(user).Error; errCreate != nil {
			return errCreate
		}
		if errQuota := p.quotas.CreateDefault(tx, user.ID); errQuota != nil {
			return errQuota
		}
		return p.policies.CreateDefault(tx, user.ID)
	})
	if errTx != nil {
		if dbutil.IsUniqueViolation(errTx) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("store: provision user: %w", errTx)
	}

	p.cache.InvalidateUser(ctx, user.ID)
	return user, nil
}
