// Package db opens the destination database and waits for it to accept
// connections, since the job may start before Postgres finishes booting.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/railzwaylabs/salesetl/internal/config"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormprometheus "gorm.io/plugin/prometheus"
)

func Open(cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := WaitForReady(context.Background(), conn, cfg.Database.WaitRetries, cfg.Database.WaitDelay, log); err != nil {
		return nil, err
	}

	if cfg.Metrics.Addr != "" {
		if err := conn.Use(gormprometheus.New(gormprometheus.Config{
			DBName:          cfg.Database.Name,
			RefreshInterval: 15,
		})); err != nil {
			return nil, fmt.Errorf("attach db metrics: %w", err)
		}
	}

	return conn, nil
}

// WaitForReady pings the database until it responds or retries run out.
func WaitForReady(ctx context.Context, conn *gorm.DB, retries int, delay time.Duration, log *zap.Logger) error {
	if retries <= 0 {
		retries = 1
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return fmt.Errorf("unwrap sql db: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		if lastErr = sqlDB.PingContext(ctx); lastErr == nil {
			log.Info("database connection established", zap.Int("attempt", attempt))
			return nil
		}
		log.Warn("database not ready yet",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", retries),
			zap.Error(lastErr),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return fmt.Errorf("database not ready after %d attempts: %w", retries, lastErr)
}
