// Package admin wires the console REST API onto a gin engine.
package admin

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/closedcode/gateway-admin/internal/cache"
	"github.com/closedcode/gateway-admin/internal/config"
	"github.com/closedcode/gateway-admin/internal/http/api/admin/handlers"
	"github.com/closedcode/gateway-admin/internal/security"
	"github.com/closedcode/gateway-admin/internal/store"
)

// RegisterRoutes mounts the admin API under /api plus the unauthenticated
// health endpoint.
func RegisterRoutes(r *gin.Engine, conn *gorm.DB, c *cache.Cache, cfg *config.Config) error {
	users := store.NewUsers(conn)
	quotas := store.NewQuotas(conn, c)
	policies := store.NewPolicies(conn, c)
	auditLogs := store.NewAuditLogs(conn)
	provisioner := store.NewProvisioner(conn, quotas, policies, c)

	healthHandler := handlers.NewHealthHandler(conn)
	r.GET("/healthz", healthHandler.Healthz)

	authHandler, errAuth := handlers.NewAuthHandler(cfg)
	if errAuth != nil {
		return errAuth
	}

	api := r.Group("/api")
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(AdminAuthMiddleware(cfg))

	authed.GET("/auth/me", authHandler.Me)
	authed.GET("/version", handlers.Version)

	userHandler := handlers.NewUserHandler(users, quotas, policies, provisioner)
	authed.GET("/users", userHandler.List)
	authed.POST("/users", userHandler.Create)
	authed.GET("/users/:id", userHandler.Get)
	authed.PATCH("/users/:id", userHandler.Update)

	quotaHandler := handlers.NewQuotaHandler(quotas)
	authed.GET("/quotas/:user_id", quotaHandler.Get)
	authed.PATCH("/quotas/:user_id", quotaHandler.Update)

	policyHandler := handlers.NewPolicyHandler(policies)
	authed.GET("/policies/:user_id", policyHandler.Get)
	authed.PATCH("/policies/:user_id", policyHandler.Update)

	auditLogHandler := handlers.NewAuditLogHandler(auditLogs)
	authed.GET("/audit-logs", auditLogHandler.List)
	authed.GET("/audit-logs/:id", auditLogHandler.Get)

	statsHandler := handlers.NewStatsHandler(conn)
	authed.GET("/stats", statsHandler.Get)

	return nil
}

// AdminAuthMiddleware validates the Bearer session JWT and requires the
// subject email to be on the admin allow-list.
func AdminAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if header == "" || token == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := security.ParseAdminToken(cfg.JWT.Secret, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		if !cfg.IsAdminEmail(claims.Email) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not an admin"})
			return
		}

		c.Set("adminEmail", claims.Email)
		c.Next()
	}
}
