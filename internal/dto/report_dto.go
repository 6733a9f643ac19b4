package dto

import (
	"github.com/shopspring/decimal"

	"cafemanagement/internal/repository"
)

type SalesReportRequest struct {
	StartDate string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string   `json:"end_date" validate:"required,datetime=2006-01-02"`
	Statuses  []string `json:"statuses" validate:"omitempty"`
}

type SalesReportResponse struct {
	ID         uint            `json:"id,omitempty"`
	StartDate  string          `json:"start_date"`
	EndDate    string          `json:"end_date"`
	TotalSales decimal.Decimal `json:"total_sales"`
	OrderCount int64           `json:"order_count"`
}

type TopProductsResponse struct {
	Products []repository.TopProduct `json:"products"`
}
