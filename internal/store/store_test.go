package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/closedcode/gateway-admin/internal/models"
)

func setupStoreDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:store_%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, errOpen := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}
	if errMigrate := db.AutoMigrate(&models.User{}, &models.Quota{}, &models.Policy{}, &models.AuditLog{}); errMigrate != nil {
		t.Fatalf("migrate db: %v", errMigrate)
	}
	return db
}

func mustProvision(t *testing.T, db *gorm.DB, email, sub string, active bool) *models.User {
	t.Helper()
	quotas := NewQuotas(db, nil)
	policies := NewPolicies(db, nil)
	p := NewProvisioner(db, quotas, policies, nil)
	user, err := p.CreateUserWithDefaults(context.Background(), email, sub, active)
	if err != nil {
		t.Fatalf("provision %s: %v", email, err)
	}
	return user
}
