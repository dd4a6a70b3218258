package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/closedcode/gateway-admin/internal/store"
)

// UserHandler serves the user management endpoints.
type UserHandler struct {
	users       *store.Users
	quotas      *store.Quotas
	policies    *store.Policies
	provisioner *store.Provisioner
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(users *store.Users, quotas *store.Quotas, policies *store.Policies, provisioner *store.Provisioner) *UserHandler {
	return &UserHandler{users: users, quotas: quotas, policies: policies, provisioner: provisioner}
}

// List returns users matching the email/is_active filters with paging.
func (h *UserHandler) List(c *gin.Context) {
	filter := store.UserFilter{
		EmailContains: c.Query("email"),
	}
	if raw := strings.TrimSpace(c.Query("is_active")); raw != "" {
		switch raw {
		case "true":
			v := true
			filter.IsActive = &v
		case "false":
			v := false
			filter.IsActive = &v
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "is_active must be true or false"})
			return
		}
	}
	page := parsePage(c)

	rows, total, err := h.users.List(c.Request.Context(), filter, page)
	if err != nil {
		writeStoreError(c, err, "user not found")
		return
	}

	out := make([]gin.H, 0, len(rows))
	for i := range rows {
		out = append(out, userJSON(&rows[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"users":  out,
		"total":  total,
		"limit":  page.Limit,
		"offset": page.Offset,
	})
}

// createUserRequest defines the request body for user creation.
type createUserRequest struct {
	Email    string `json:"email"`
	OIDCSub  string `json:"oidc_sub"`
	IsActive *bool  `json:"is_active"`
}

// Create provisions a user together with its default quota and policy.
func (h *UserHandler) Create(c *gin.Context) {
	var body createUserRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	isActive := true
	if body.IsActive != nil {
		isActive = *body.IsActive
	}

	user, err := h.provisioner.CreateUserWithDefaults(c.Request.Context(), body.Email, body.OIDCSub, isActive)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "user already exists"})
			return
		}
		writeStoreError(c, err, "user not found")
		return
	}
	c.JSON(http.StatusCreated, userJSON(user))
}

// Get returns a user together with its quota and policy rows.
func (h *UserHandler) Get(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	user, err := h.users.Get(ctx, id)
	if err != nil {
		writeStoreError(c, err, "user not found")
		return
	}

	out := gin.H{"user": userJSON(user), "quota": nil, "policy": nil}
	if quota, errQuota := h.quotas.Get(ctx, id); errQuota == nil {
		out["quota"] = quotaJSON(quota)
	} else if !errors.Is(errQuota, store.ErrNotFound) {
		writeStoreError(c, errQuota, "quota not found")
		return
	}
	if policy, errPolicy := h.policies.Get(ctx, id); errPolicy == nil {
		out["policy"] = policyJSON(policy)
	} else if !errors.Is(errPolicy, store.ErrNotFound) {
		writeStoreError(c, errPolicy, "policy not found")
		return
	}
	c.JSON(http.StatusOK, out)
}

// updateUserRequest defines the request body for user updates.
type updateUserRequest struct {
	IsActive *bool `json:"is_active"`
}

// Update toggles the is_active flag.
func (h *UserHandler) Update(c *gin.Context) {
	var body updateUserRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if body.IsActive == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "is_active is required"})
		return
	}

	user, err := h.users.SetActive(c.Request.Context(), c.Param("id"), *body.IsActive)
	if err != nil {
		writeStoreError(c, err, "user not found")
		return
	}
	c.JSON(http.StatusOK, userJSON(user))
}
