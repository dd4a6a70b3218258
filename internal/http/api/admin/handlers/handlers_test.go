package handlers

import (
	"fmt"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/closedcode/gateway-admin/internal/models"
	"github.com/closedcode/gateway-admin/internal/store"
)

func setupHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:handlers_%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, errOpen := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}
	if errMigrate := db.AutoMigrate(&models.User{}, &models.Quota{}, &models.Policy{}, &models.AuditLog{}); errMigrate != nil {
		t.Fatalf("migrate db: %v", errMigrate)
	}
	return db
}

// setupUserRouter wires the user/quota/policy/audit endpoints without the
// auth middleware, which is covered by the admin package tests.
func setupUserRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := store.NewUsers(db)
	quotas := store.NewQuotas(db, nil)
	policies := store.NewPolicies(db, nil)
	auditLogs := store.NewAuditLogs(db)
	provisioner := store.NewProvisioner(db, quotas, policies, nil)

	router := gin.New()
	userHandler := NewUserHandler(users, quotas, policies, provisioner)
	router.GET("/api/users", userHandler.List)
	router.POST("/api/users", userHandler.Create)
	router.GET("/api/users/:id", userHandler.Get)
	router.PATCH("/api/users/:id", userHandler.Update)

	quotaHandler := NewQuotaHandler(quotas)
	router.GET("/api/quotas/:user_id", quotaHandler.Get)
	router.PATCH("/api/quotas/:user_id", quotaHandler.Update)

	policyHandler := NewPolicyHandler(policies)
	router.GET("/api/policies/:user_id", policyHandler.Get)
	router.PATCH("/api/policies/:user_id", policyHandler.Update)

	auditLogHandler := NewAuditLogHandler(auditLogs)
	router.GET("/api/audit-logs", auditLogHandler.List)
	router.GET("/api/audit-logs/:id", auditLogHandler.Get)

	router.GET("/api/stats", NewStatsHandler(db).Get)

	return router
}
