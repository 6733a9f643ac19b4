package model

import (
	"github.com/shopspring/decimal"
)

// OrderDetail is a line item owned by exactly one Order.
// Price is a point-in-time snapshot of the product price at order time,
// never a live reference to Product.Price.
type OrderDetail struct {
	ID      uint `gorm:"primaryKey"`
	OrderID uint `gorm:"index;not null"`
	// ProductID is a weak reference; a dangling value is tolerated and
	// rendered with placeholder display fields at read time.
	ProductID *uint `gorm:"index"`
	Quantity  int   `gorm:"not null"`
	Size      *string
	MilkType  *string
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	// Display fields populated via join at read time; never persisted.
	ProductName  string `gorm:"-"`
	ProductImage string `gorm:"-"`
}
