package db

import (
	"context"
	"fmt"
	"log"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/natpasukit/jenkins/internal/config"
)

type Store struct {
	DB *gorm.DB
}

// NewStore opens the record database: postgres when POSTGRES_DSN is set,
// a local sqlite file when SQLITE_PATH is set, and no-db mode otherwise.
// In no-db mode the repositories report persistence as unavailable.
func NewStore(cfg config.Config) (*Store, error) {
	switch {
	case cfg.PostgresDSN != "":
		gdb, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{TranslateError: true})
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return &Store{DB: gdb}, nil
	case cfg.SQLitePath != "":
		gdb, err := gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{TranslateError: true})
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return &Store{DB: gdb}, nil
	default:
		log.Printf("POSTGRES_DSN and SQLITE_PATH not set; starting in no-db mode.")
		return &Store{DB: nil}, nil
	}
}

func (s *Store) AutoMigrate() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.AutoMigrate(&RecordModel{}, &FingerprintModel{})
}

// Ping reports database readiness. No-db mode is always ready.
func (s *Store) Ping(ctx context.Context) error {
	if s.DB == nil {
		return nil
	}
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
