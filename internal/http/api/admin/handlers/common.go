package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/closedcode/gateway-admin/internal/models"
	"github.com/closedcode/gateway-admin/internal/store"
)

// parsePage reads limit/offset query parameters, falling back to the
// repository defaults. Values are parsed as integers here and clamped
// again in the store, so raw strings never reach a statement.
func parsePage(c *gin.Context) store.Page {
	p := store.Page{Limit: store.DefaultLimit}
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			p.Limit = v
		}
	}
	if raw := strings.TrimSpace(c.Query("offset")); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			p.Offset = v
		}
	}
	return p.Normalize()
}

// timestampFormats lists accepted filter timestamp layouts, most
// specific first.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTimestamp parses a filter bound in any accepted layout.
func parseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// writeStoreError maps a store error onto the HTTP response. Validation
// failures name the offending field; anything unexpected is logged in
// full and surfaced as a generic 500.
func writeStoreError(c *gin.Context, err error, notFoundMsg string) {
	var ve *store.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	case errors.Is(err, store.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	default:
		log.WithError(err).Error("store operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func userJSON(u *models.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"email":      u.Email,
		"oidc_sub":   u.OIDCSub,
		"is_active":  u.IsActive,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}

func quotaJSON(q *models.Quota) gin.H {
	return gin.H{
		"user_id":             q.UserID,
		"tokens_per_minute":   q.TokensPerMinute,
		"tokens_per_day":      q.TokensPerDay,
		"requests_per_minute": q.RequestsPerMinute,
		"concurrent_requests": q.ConcurrentRequests,
		"updated_at":          q.UpdatedAt,
	}
}

func policyJSON(p *models.Policy) gin.H {
	return gin.H{
		"user_id":            p.UserID,
		"mcp_whitelist":      models.ParseStringList(p.MCPWhitelist),
		"web_search_enabled": p.WebSearchEnabled,
		"allowed_tools":      models.ParseStringList(p.AllowedTools),
		"updated_at":         p.UpdatedAt,
	}
}

func auditLogJSON(l *models.AuditLog) gin.H {
	return gin.H{
		"id":                 l.ID,
		"user_id":            l.UserID,
		"timestamp":          l.Timestamp,
		"action":             l.Action,
		"status":             l.Status,
		"tokens_used":        l.TokensUsed,
		"response_time":      l.ResponseTime,
		"prompt":             l.Prompt,
		"user_request":       l.UserRequest,
		"server_computation": l.ServerComputation,
		"model_response":     l.ModelResponse,
		"metadata":           l.Metadata,
	}
}
