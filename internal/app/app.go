// Package app boots the admin console: database, cache, routes, server.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/closedcode/gateway-admin/internal/cache"
	"github.com/closedcode/gateway-admin/internal/config"
	"github.com/closedcode/gateway-admin/internal/db"
	internalhttp "github.com/closedcode/gateway-admin/internal/http"
	"github.com/closedcode/gateway-admin/internal/http/api/admin"
	"github.com/closedcode/gateway-admin/internal/logging"
)

// Migrate opens the database and brings the schema up to date.
func Migrate(ctx context.Context, cfg *config.Config) error {
	conn, err := db.Open(cfg.Database.DSN)
	if err != nil {
		return err
	}
	return db.Migrate(conn)
}

// RunServer starts the console API and blocks until ctx is cancelled.
func RunServer(ctx context.Context, cfg *config.Config) error {
	logging.Setup(cfg.Log.Level, cfg.Log.File, cfg.Log.MaxSizeMB, cfg.Log.MaxBackups)

	conn, err := db.Open(cfg.Database.DSN)
	if err != nil {
		return err
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		return errMigrate
	}

	ttl, errTTL := cfg.RedisTTL()
	if errTTL != nil {
		return errTTL
	}
	quotaCache := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, ttl)
	defer func() { _ = quotaCache.Close() }()
	if quotaCache != nil {
		log.Infof("quota/policy cache enabled (redis=%s ttl=%s)", cfg.Redis.Addr, ttl)
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), internalhttp.RequestLogger())

	if errRoutes := admin.RegisterRoutes(r, conn, quotaCache, cfg); errRoutes != nil {
		return errRoutes
	}

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("admin console listening on %s", cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if errShutdown := srv.Shutdown(shutdownCtx); errShutdown != nil {
			return errShutdown
		}
		return nil
	case errServe := <-errCh:
		if errors.Is(errServe, http.ErrServerClosed) {
			return nil
		}
		return errServe
	}
}
