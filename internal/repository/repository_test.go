package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cafemanagement/internal/model"
)

// newTestDB opens an in-memory database with the same settings the production
// handle uses: single connection, translated driver errors.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Order{},
		&model.OrderDetail{},
		&model.SalesReport{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, email string) *model.User {
	t.Helper()
	u := &model.User{
		Username:       username,
		PasswordHash:   "$2a$12$irrelevant",
		Name:           "Test " + username,
		Email:          &email,
		Role:           model.RoleEmployee,
		ApprovalStatus: model.ApprovalPending,
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return u
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64) *model.Product {
	t.Helper()
	p := &model.Product{
		Name:        name,
		Price:       decimal.NewFromFloat(price),
		Category:    "bebidas",
		IsAvailable: true,
	}
	require.NoError(t, NewProductRepository(db).Create(context.Background(), p))
	return p
}
