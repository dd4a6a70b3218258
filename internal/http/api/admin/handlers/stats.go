package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/closedcode/gateway-admin/internal/models"
)

// StatsHandler serves the dashboard summary endpoint.
type StatsHandler struct {
	db *gorm.DB
}

// NewStatsHandler constructs a StatsHandler.
func NewStatsHandler(db *gorm.DB) *StatsHandler {
	return &StatsHandler{db: db}
}

// statusCount is one row of the audit status breakdown.
type statusCount struct {
	Status string `gorm:"column:status" json:"status"`
	Count  int64  `gorm:"column:count" json:"count"`
}

// Get returns console-wide totals: user counts, audit volume, status
// breakdown and tokens consumed over the last 24 hours.
func (h *StatsHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	var totalUsers int64
	if err := h.db.WithContext(ctx).Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "count users failed"})
		return
	}
	var activeUsers int64
	if err := h.db.WithContext(ctx).Model(&models.User{}).Where("is_active = ?", true).Count(&activeUsers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "count active users failed"})
		return
	}

	var totalLogs int64
	if err := h.db.WithContext(ctx).Model(&models.AuditLog{}).Count(&totalLogs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "count audit logs failed"})
		return
	}

	var byStatus []statusCount
	if err := h.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("count DESC").
		Scan(&byStatus).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "audit status breakdown failed"})
		return
	}
	if byStatus == nil {
		byStatus = []statusCount{}
	}

	since := time.Now().UTC().Add(-24 * time.Hour)
	var tokens24h int64
	if err := h.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("timestamp >= ?", since).
		Select("COALESCE(SUM(tokens_used), 0)").
		Scan(&tokens24h).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token usage sum failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_users":     totalUsers,
		"active_users":    activeUsers,
		"total_logs":      totalLogs,
		"logs_by_status":  byStatus,
		"tokens_used_24h": tokens24h,
	})
}
