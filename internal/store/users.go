package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	dbutil "github.com/closedcode/gateway-admin/internal/db"
	"github.com/closedcode/gateway-admin/internal/models"
)

// Users is the repository for user identity rows.
type Users struct {
	db *gorm.DB
}

// NewUsers constructs a Users repository.
func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

// UserFilter narrows a user list query. Zero values mean "no filter".
type UserFilter struct {
	EmailContains string // Case-insensitive substring match on email.
	IsActive      *bool  // Exact match on is_active when set.
}

func (s *Users) filtered(ctx context.Context, f UserFilter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.User{})
	if needle := strings.TrimSpace(f.EmailContains); needle != "" {
		pattern := dbutil.NormalizeLikePattern(s.db, "%"+needle+"%")
		q = q.Where(dbutil.CaseInsensitiveLikeExpr(s.db, "email"), pattern)
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}
	return q
}

// List returns users matching the filter, newest first, plus the total
// count of matching rows ignoring pagination.
func (s *Users) List(ctx context.Context, f UserFilter, p Page) ([]models.User, int64, error) {
	base := s.filtered(ctx, f)

	var total int64
	if errCount := base.Count(&total).Error; errCount != nil {
		return nil, 0, fmt.Errorf("store: count users: %w", errCount)
	}

	p = p.Normalize()
	var rows []models.User
	if errFind := base.
		Order("created_at DESC").
		Limit(p.Limit).
		Offset(p.Offset).
		Find(&rows).Error; errFind != nil {
		return nil, 0, fmt.Errorf("store: list users: %w", errFind)
	}
	return rows, total, nil
}

// Get returns a single user by id.
func (s *Users) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: get user: %w", err)
	}
	return &user, nil
}

// Create inserts a bare user row. Most callers want
// Provisioner.CreateUserWithDefaults instead, which also creates the
// default quota and policy.
func (s *Users) Create(ctx context.Context, email, oidcSub string, isActive bool) (*models.User, error) {
	user, err := newUser(email, oidcSub, isActive)
	if err != nil {
		return nil, err
	}
	if errCreate := s.db.WithContext(ctx).Create(user).Error; errCreate != nil {
		if dbutil.IsUniqueViolation(errCreate) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("store: create user: %w", errCreate)
	}
	return user, nil
}

// SetActive toggles the is_active flag and returns the updated user.
func (s *Users) SetActive(ctx context.Context, id string, active bool) (*models.User, error) {
	res := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_active":  active,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return nil, fmt.Errorf("store: set user active: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, id)
}

// newUser validates the required identity fields and builds the row.
func newUser(email, oidcSub string, isActive bool) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, &ValidationError{Field: "email", Reason: "is required"}
	}
	oidcSub = strings.TrimSpace(oidcSub)
	if oidcSub == "" {
		return nil, &ValidationError{Field: "oidc_sub", Reason: "is required"}
	}
	return &models.User{
		Email:    email,
		OIDCSub:  oidcSub,
		IsActive: isActive,
	}, nil
}
