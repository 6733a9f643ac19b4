package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a sellable menu item.
// Name uniqueness is enforced eagerly with a unique index; the dedupe
// command exists only to repair databases created before that constraint.
type Product struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;not null"`
	Description *string
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Category    string          `gorm:"index;not null"`
	ImageURL    *string
	IsAvailable bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
