package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesReport persists the header of a generated sales report: the period,
// the aggregate, and who requested it. Rendering is out of scope here.
type SalesReport struct {
	ID          uint            `gorm:"primaryKey"`
	StartDate   time.Time       `gorm:"not null"`
	EndDate     time.Time       `gorm:"not null"`
	TotalSales  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	OrderCount  int             `gorm:"not null"`
	GeneratedBy *uint           `gorm:"index"`
	CreatedAt   time.Time
}
