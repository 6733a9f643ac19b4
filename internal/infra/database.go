package infra

import (
	"fmt"

	"cafemanagement/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the embedded SQLite file and ensures the schema exists.
// The engine does not support concurrent connections, so the pool is pinned
// to a single handle held for the process lifetime; SQLite serializes disk
// access underneath it. A schema failure here is fatal for the caller —
// there is no partial-schema recovery path.
func NewDatabase(path string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true, // surface gorm.ErrDuplicatedKey on UNIQUE violations
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := ensureSchema(db); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return db, nil
}

// ensureSchema idempotently creates the five tables and their constraints.
// Running it twice produces no duplicate tables and no error.
func ensureSchema(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Order{},
		&model.OrderDetail{},
		&model.SalesReport{},
	)
}
