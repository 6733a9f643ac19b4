package dto

import "github.com/shopspring/decimal"

type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,max=100"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"required,gt=0"`
	Category    string          `json:"category" validate:"required"`
	ImageURL    *string         `json:"image_url"`
	IsAvailable *bool           `json:"is_available"`
}

type UpdateProductRequest struct {
	Name        string           `json:"name" validate:"omitempty,max=100"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price" validate:"omitempty,gt=0"`
	Category    string           `json:"category" validate:"omitempty"`
	ImageURL    *string          `json:"image_url"`
	IsAvailable *bool            `json:"is_available"`
}

type ProductResponse struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImageURL    *string         `json:"image_url"`
	IsAvailable bool            `json:"is_available"`
}
