package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/closedcode/gateway-admin/internal/store"
)

// PolicyHandler serves the per-user policy endpoints.
type PolicyHandler struct {
	policies *store.Policies
}

// NewPolicyHandler constructs a PolicyHandler.
func NewPolicyHandler(policies *store.Policies) *PolicyHandler {
	return &PolicyHandler{policies: policies}
}

// Get returns the policy row for a user.
func (h *PolicyHandler) Get(c *gin.Context) {
	policy, err := h.policies.Get(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		writeStoreError(c, err, "policy not found")
		return
	}
	c.JSON(http.StatusOK, policyJSON(policy))
}

// updatePolicyRequest defines the partial update body. Supplied list
// fields replace the stored value wholesale.
type updatePolicyRequest struct {
	MCPWhitelist     *[]string `json:"mcp_whitelist"`
	WebSearchEnabled *bool     `json:"web_search_enabled"`
	AllowedTools     *[]string `json:"allowed_tools"`
}

// Update replaces the supplied policy fields for a user.
func (h *PolicyHandler) Update(c *gin.Context) {
	var body updatePolicyRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	patch := store.PolicyPatch{
		MCPWhitelist:     body.MCPWhitelist,
		WebSearchEnabled: body.WebSearchEnabled,
		AllowedTools:     body.AllowedTools,
	}
	policy, err := h.policies.Update(c.Request.Context(), c.Param("user_id"), patch)
	if err != nil {
		writeStoreError(c, err, "policy not found")
		return
	}
	c.JSON(http.StatusOK, policyJSON(policy))
}
