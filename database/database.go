package database

import (
	"fmt"
	"log/slog"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ShivamAmratlalPatel/chapter-portal-backend/config"
)

// Dialector returns the gorm dialector for the configured dialect.
func Dialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Dialect {
	case "postgres":
		return postgres.Open(cfg.URL), nil
	case "mysql":
		return mysql.Open(cfg.URL), nil
	case "sqlite":
		return sqlite.Open(cfg.URL), nil
	default:
		return nil, fmt.Errorf("unsupported database dialect '%s'", cfg.Dialect)
	}
}

// Open connects to the configured database and migrates models.
func Open(cfg config.DatabaseConfig, models ...any) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Warn
	if cfg.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("cannot open %s database: %w", cfg.Dialect, err)
	}

	if cfg.Dialect == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// Every connection to an in-memory database is a separate database.
		sqlDB.SetMaxOpenConns(1)
	}

	if len(models) > 0 {
		if err = db.AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("cannot migrate: %w", err)
		}
	}

	slog.Info("database connected", "dialect", cfg.Dialect)

	return db, nil
}
