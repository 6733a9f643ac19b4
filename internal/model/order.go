package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a customer transaction. TotalAmount is recomputed from the line
// items inside the creation transaction, so it is authoritative at creation
// time; later product price changes never touch it.
type Order struct {
	ID uint `gorm:"primaryKey"`
	// OrderNumber is the client-visible sequence, distinct from ID.
	OrderNumber string `gorm:"uniqueIndex;not null"`
	// UserID is a weak reference: the owning user may be deleted without
	// cascading into historical orders.
	UserID        *uint `gorm:"index"`
	TableNumber   *int
	Status        OrderStatus `gorm:"type:varchar(20);not null;default:'Solicitado';index"`
	Notes         *string
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentMethod *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Items []OrderDetail `gorm:"foreignKey:OrderID"`
}

// Total sums price × quantity over the items. Missing prices count as zero,
// so the result is defined even for partially populated orders.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
