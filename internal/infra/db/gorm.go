package db

import (
	"time"

	"github.com/pagecraft-io/pagecraft/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"
)

// New opens the postgres connection and sizes the pool from config. The
// pool bounds request concurrency; it is the only shared mutable resource.
func New(cfg *config.Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), gcfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpen)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdle)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)
	return db, nil
}

// RegisterOpenTelemetryPlugin attaches query spans to the global tracer
// provider. Call it after telemetry.SetupTracing.
func RegisterOpenTelemetryPlugin(db *gorm.DB) error {
	return db.Use(tracing.NewPlugin())
}
