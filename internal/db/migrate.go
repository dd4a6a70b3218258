package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/closedcode/gateway-admin/internal/models"
)

// Migrate creates or updates the schema for all managed tables.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}
	if err := conn.AutoMigrate(
		&models.User{},
		&models.Quota{},
		&models.Policy{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("db: migrate: %w", err)
	}
	return nil
}
