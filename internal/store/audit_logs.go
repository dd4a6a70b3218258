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

// AuditLogs is the read-only repository for gateway audit records. Rows
// are written by the upstream gateway; this layer exposes no mutation.
type AuditLogs struct {
	db *gorm.DB
}

// NewAuditLogs constructs an AuditLogs repository.
func NewAuditLogs(db *gorm.DB) *AuditLogs {
	return &AuditLogs{db: db}
}

// AuditLogFilter narrows an audit log query. All set filters are
// combined with AND; both timestamp bounds are inclusive.
type AuditLogFilter struct {
	UserID         string
	Status         string
	ActionContains string // Case-insensitive substring match on action.
	From           *time.Time
	To             *time.Time
}

func (s *AuditLogs) filtered(ctx context.Context, f AuditLogFilter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.AuditLog{})
	if userID := strings.TrimSpace(f.UserID); userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	if status := strings.TrimSpace(f.Status); status != "" {
		q = q.Where("status = ?", status)
	}
	if needle := strings.TrimSpace(f.ActionContains); needle != "" {
		pattern := dbutil.NormalizeLikePattern(s.db, "%"+needle+"%")
		q = q.Where(dbutil.CaseInsensitiveLikeExpr(s.db, "action"), pattern)
	}
	if f.From != nil {
		q = q.Where("timestamp >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("timestamp <= ?", *f.To)
	}
	return q
}

// List returns audit logs matching the filter, newest first, plus the
// total count of matching rows ignoring pagination.
func (s *AuditLogs) List(ctx context.Context, f AuditLogFilter, p Page) ([]models.AuditLog, int64, error) {
	base := s.filtered(ctx, f)

	var total int64
	if errCount := base.Count(&total).Error; errCount != nil {
		return nil, 0, fmt.Errorf("store: count audit logs: %w", errCount)
	}

	p = p.Normalize()
	var rows []models.AuditLog
	if errFind := base.
		Order("timestamp DESC").
		Limit(p.Limit).
		Offset(p.Offset).
		Find(&rows).Error; errFind != nil {
		return nil, 0, fmt.Errorf("store: list audit logs: %w", errFind)
	}
	return rows, total, nil
}

// Get returns a single audit log by id.
func (s *AuditLogs) Get(ctx context.Context, id string) (*models.AuditLog, error) {
	var row models.AuditLog
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: get audit log: %w", err)
	}
	return &row, nil
}
