package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU         string `json:"sku" validate:"required,min=1,max=100"`
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description"`
}

// CreatePresentationRequest entrada para agregar una presentación a un producto.
type CreatePresentationRequest struct {
	Name   string          `json:"name" validate:"required"`
	Factor int             `json:"factor" validate:"min=1"`
	Price  decimal.Decimal `json:"price"`
}

// SetProductActiveRequest activa o desactiva un producto.
type SetProductActiveRequest struct {
	Active bool `json:"active"`
}

// PresentationResponse salida de una presentación.
type PresentationResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Factor    int             `json:"factor"`
	Price     decimal.Decimal `json:"price"`
	Active    bool            `json:"active"`
}

// ProductResponse salida de un producto con sus presentaciones y stock disponible.
type ProductResponse struct {
	ID             string                 `json:"id"`
	SKU            string                 `json:"sku"`
	Name           string                 `json:"name"`
	Description    string                 `json:"description"`
	Active         bool                   `json:"active"`
	AvailableStock int                    `json:"available_stock"`
	Presentations  []PresentationResponse `json:"presentations"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}
