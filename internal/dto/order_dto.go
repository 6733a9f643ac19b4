package dto

import "github.com/shopspring/decimal"

type OrderItemRequest struct {
	ProductID uint    `json:"product_id" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,min=1"`
	Size      *string `json:"size"`
	MilkType  *string `json:"milk_type"`
}

type CreateOrderRequest struct {
	TableNumber   *int               `json:"table_number" validate:"omitempty,min=1"`
	Notes         *string            `json:"notes"`
	PaymentMethod *string            `json:"payment_method"`
	Items         []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type OrderItemResponse struct {
	ID           uint            `json:"id"`
	ProductID    *uint           `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductImage string          `json:"product_image"`
	Quantity     int             `json:"quantity"`
	Size         *string         `json:"size"`
	MilkType     *string         `json:"milk_type"`
	Price        decimal.Decimal `json:"price"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

type OrderResponse struct {
	ID            uint                `json:"id"`
	OrderNumber   string              `json:"order_number"`
	UserID        *uint               `json:"user_id"`
	TableNumber   *int                `json:"table_number"`
	Status        string              `json:"status"`
	Notes         *string             `json:"notes"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	PaymentMethod *string             `json:"payment_method"`
	CreatedAt     string              `json:"created_at"`
	Items         []OrderItemResponse `json:"items,omitempty"`
}
