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

// Policies is the repository for per-user capability rows.
type Policies struct {
	db    *gorm.DB
	cache *cache.Cache
}

// NewPolicies constructs a Policies repository. The cache may be nil.
func NewPolicies(db *gorm.DB, c *cache.Cache) *Policies {
	return &Policies{db: db, cache: c}
}

// PolicyPatch carries a partial policy update. Nil fields are left
// unchanged; supplied fields fully replace the stored value (no merge).
// Tool identifiers are stored as given: the known-tool vocabulary is a
// console affordance, not a data constraint.
type PolicyPatch struct {
	MCPWhitelist     *[]string
	WebSearchEnabled *bool
	AllowedTools     *[]string
}

func (p PolicyPatch) changes() (map[string]any, error) {
	changes := map[string]any{}
	if p.MCPWhitelist != nil {
		raw, err := models.MarshalStringList(*p.MCPWhitelist)
		if err != nil {
			return nil, fmt.Errorf("store: encode mcp_whitelist: %w", err)
		}
		changes["mcp_whitelist"] = raw
	}
	if p.WebSearchEnabled != nil {
		changes["web_search_enabled"] = *p.WebSearchEnabled
	}
	if p.AllowedTools != nil {
		raw, err := models.MarshalStringList(*p.AllowedTools)
		if err != nil {
			return nil, fmt.Errorf("store: encode allowed_tools: %w", err)
		}
		changes["allowed_tools"] = raw
	}
	return changes, nil
}

// Get returns the policy row for a user.
func (s *Policies) Get(ctx context.Context, userID string) (*models.Policy, error) {
	if cached, ok := s.cache.GetPolicy(ctx, userID); ok {
		return cached, nil
	}
	var policy models.Policy
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&policy).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: get policy: %w", err)
	}
	s.cache.SetPolicy(ctx, &policy)
	return &policy, nil
}

// Update applies a partial policy update. Supplied list fields replace
// the prior value wholesale.
func (s *Policies) Update(ctx context.Context, userID string, patch PolicyPatch) (*models.Policy, error) {
	changes, err := patch.changes()
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return nil, &ValidationError{Reason: "no fields to update"}
	}
	changes["updated_at"] = time.Now().UTC()

	res := s.db.WithContext(ctx).
		Model(&models.Policy{}).
		Where("user_id = ?", userID).
		Updates(changes)
	if res.Error != nil {
		return nil, fmt.Errorf("store: update policy: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	s.cache.InvalidateUser(ctx, userID)
	return s.Get(ctx, userID)
}

// CreateDefault inserts the default policy row for a user: empty
// whitelist, web search disabled, no tools. Used by the provisioning
// workflow, inside its transaction.
func (s *Policies) CreateDefault(tx *gorm.DB, userID string) error {
	policy := models.DefaultPolicy(userID)
	if err := tx.Create(&policy).Error; err != nil {
		return fmt.Errorf("store: create default policy: %w", err)
	}
	return nil
}
