package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/closedcode/gateway-admin/internal/store"
)

// QuotaHandler serves the per-user quota endpoints.
type QuotaHandler struct {
	quotas *store.Quotas
}

// NewQuotaHandler constructs a QuotaHandler.
func NewQuotaHandler(quotas *store.Quotas) *QuotaHandler {
	return &QuotaHandler{quotas: quotas}
}

// Get returns the quota row for a user.
func (h *QuotaHandler) Get(c *gin.Context) {
	quota, err := h.quotas.Get(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		writeStoreError(c, err, "quota not found")
		return
	}
	c.JSON(http.StatusOK, quotaJSON(quota))
}

// updateQuotaRequest defines the partial update body. Absent fields are
// left unchanged.
type updateQuotaRequest struct {
	TokensPerMinute    *int64 `json:"tokens_per_minute"`
	TokensPerDay       *int64 `json:"tokens_per_day"`
	RequestsPerMinute  *int64 `json:"requests_per_minute"`
	ConcurrentRequests *int64 `json:"concurrent_requests"`
}

// Update applies a validated partial update to a user's quota.
func (h *QuotaHandler) Update(c *gin.Context) {
	var body updateQuotaRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	patch := store.QuotaPatch{
		TokensPerMinute:    body.TokensPerMinute,
		TokensPerDay:       body.TokensPerDay,
		RequestsPerMinute:  body.RequestsPerMinute,
		ConcurrentRequests: body.ConcurrentRequests,
	}
	quota, err := h.quotas.Update(c.Request.Context(), c.Param("user_id"), patch)
	if err != nil {
		writeStoreError(c, err, "quota not found")
		return
	}
	c.JSON(http.StatusOK, quotaJSON(quota))
}
