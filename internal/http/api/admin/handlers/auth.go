package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/closedcode/gateway-admin/internal/config"
	"github.com/closedcode/gateway-admin/internal/security"
)

// AuthHandler serves the console session endpoints. Identity is an
// allow-listed email plus the shared console password; a full OIDC
// exchange is left to the identity provider in front of this service.
type AuthHandler struct {
	cfg          *config.Config
	passwordHash string
}

// NewAuthHandler constructs an AuthHandler. The configured console
// password is hashed once at startup.
func NewAuthHandler(cfg *config.Config) (*AuthHandler, error) {
	hash := ""
	if cfg.Admin.Password != "" {
		var err error
		hash, err = security.HashPassword(cfg.Admin.Password)
		if err != nil {
			return nil, err
		}
	}
	return &AuthHandler{cfg: cfg, passwordHash: hash}, nil
}

// loginRequest defines the login request body.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login validates the operator credentials and issues a session JWT.
func (h *AuthHandler) Login(c *gin.Context) {
	var body loginRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	email := strings.ToLower(strings.TrimSpace(body.Email))
	if email == "" || body.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}
	if !h.cfg.IsAdminEmail(email) || h.passwordHash == "" || !security.CheckPassword(h.passwordHash, body.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	expiry, errExpiry := h.cfg.JWTExpiry()
	if errExpiry != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	token, errSign := security.GenerateAdminToken(h.cfg.JWT.Secret, email, expiry)
	if errSign != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "email": email})
}

// Me returns the authenticated session identity.
func (h *AuthHandler) Me(c *gin.Context) {
	email, _ := c.Get("adminEmail")
	c.JSON(http.StatusOK, gin.H{"email": email})
}
