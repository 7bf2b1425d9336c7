package infra

import (
	"errors"
	"time"

	"github.com/amirasaad/finance/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	maxOpenConns    = 25
	maxIdleConns    = 25
	connMaxLifetime = time.Hour
)

// ErrMissingDatabaseURL is returned when DATABASE_URL is empty.
var ErrMissingDatabaseURL = errors.New("DATABASE_URL is not set")

// OpenPostgres connects to cfg.Url. Driver errors are translated to
// gorm's sentinels; SQL is echoed only when env is development.
func OpenPostgres(cfg *config.DB, env string) (*gorm.DB, error) {
	if cfg == nil || cfg.Url == "" {
		return nil, ErrMissingDatabaseURL
	}

	level := logger.Silent
	if env == "development" {
		level = logger.Info
	}
	db, err := gorm.Open(postgres.Open(cfg.Url), &gorm.Config{
		Logger:                 logger.Default.LogMode(level),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, err
	}

	pool, err := db.DB()
	if err != nil {
		return nil, err
	}
	pool.SetMaxOpenConns(maxOpenConns)
	pool.SetMaxIdleConns(maxIdleConns)
	pool.SetConnMaxLifetime(connMaxLifetime)
	return db, nil
}
