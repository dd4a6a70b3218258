package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/closedcode/gateway-admin/internal/store"
)

// AuditLogHandler serves the read-only audit trail endpoints.
type AuditLogHandler struct {
	logs *store.AuditLogs
}

// NewAuditLogHandler constructs an AuditLogHandler.
func NewAuditLogHandler(logs *store.AuditLogs) *AuditLogHandler {
	return &AuditLogHandler{logs: logs}
}

// List returns audit logs matching the filters, newest first.
func (h *AuditLogHandler) List(c *gin.Context) {
	filter := store.AuditLogFilter{
		UserID:         c.Query("user_id"),
		Status:         c.Query("status"),
		ActionContains: c.Query("action"),
	}
	if raw := strings.TrimSpace(c.Query("from_date")); raw != "" {
		t, ok := parseTimestamp(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from_date"})
			return
		}
		filter.From = &t
	}
	if raw := strings.TrimSpace(c.Query("to_date")); raw != "" {
		t, ok := parseTimestamp(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to_date"})
			return
		}
		filter.To = &t
	}
	page := parsePage(c)

	rows, total, err := h.logs.List(c.Request.Context(), filter, page)
	if err != nil {
		writeStoreError(c, err, "audit log not found")
		return
	}

	out := make([]gin.H, 0, len(rows))
	for i := range rows {
		out = append(out, auditLogJSON(&rows[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"logs":   out,
		"total":  total,
		"limit":  page.Limit,
		"offset": page.Offset,
	})
}

// Get returns a single audit log with its full payloads.
func (h *AuditLogHandler) Get(c *gin.Context) {
	row, err := h.logs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeStoreError(c, err, "audit log not found")
		return
	}
	c.JSON(http.StatusOK, auditLogJSON(row))
}
