package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest datos de una venta nueva; sin cliente se usa Consumidor Final.
type CreateSaleRequest struct {
	CashierID    string `json:"cashier_id"`
	CustomerName string `json:"customer_name"`
	CustomerNIT  string `json:"customer_nit"`
	Notes        string `json:"notes"`
}

// AddSaleItemRequest línea a agregar; quantity en presentaciones.
type AddSaleItemRequest struct {
	ProductID      string `json:"product_id" validate:"required"`
	PresentationID string `json:"presentation_id" validate:"required"`
	Quantity       int    `json:"quantity" validate:"min=1"`
}

// UpdateSaleItemRequest nueva cantidad de una línea.
type UpdateSaleItemRequest struct {
	Quantity int `json:"quantity" validate:"min=1"`
}

// SaleResponse cabecera de venta.
type SaleResponse struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	CashierID    string          `json:"cashier_id"`
	CustomerName string          `json:"customer_name"`
	CustomerNIT  string          `json:"customer_nit"`
	Status       string          `json:"status"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	CompletedAt  *time.Time      `json:"completed_at,omitempty"`
	AnnulledAt   *time.Time      `json:"annulled_at,omitempty"`
}

// SaleItemResponse línea de venta.
type SaleItemResponse struct {
	ID               string          `json:"id"`
	SaleID           string          `json:"sale_id"`
	ProductID        string          `json:"product_id"`
	PresentationID   string          `json:"presentation_id"`
	ProductName      string          `json:"product_name"`
	PresentationName string          `json:"presentation_name"`
	Factor           int             `json:"factor"`
	Quantity         int             `json:"quantity"`
	BaseUnits        int             `json:"base_units"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Total            decimal.Decimal `json:"total"`
}

// SaleDetailResponse venta con items y estado fiscal.
type SaleDetailResponse struct {
	Sale         SaleResponse       `json:"sale"`
	Items        []SaleItemResponse `json:"items"`
	ItemsCount   int                `json:"items_count"`
	TotalUnits   int                `json:"total_units"`
	FiscalStatus string             `json:"fiscal_status,omitempty"`
	FiscalUUID   string             `json:"fiscal_uuid,omitempty"`
}
