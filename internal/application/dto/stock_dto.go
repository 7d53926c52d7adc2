package dto

import "time"

// AddStockRequest entrada de mercadería. ExpirationDate en formato YYYY-MM-DD (opcional).
type AddStockRequest struct {
	ProductID      string `json:"product_id" validate:"required"`
	BatchNumber    string `json:"batch_number" validate:"required"`
	ExpirationDate string `json:"expiration_date"`
	Quantity       int    `json:"quantity" validate:"min=1"`
	Location       string `json:"location"`
}

// AdjustStockRequest corrección manual; quantity positiva suma, negativa resta.
type AdjustStockRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	BatchID   string `json:"batch_id" validate:"required"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason" validate:"required"`
}

// BatchResponse salida de un lote.
type BatchResponse struct {
	ID                string     `json:"id"`
	ProductID         string     `json:"product_id"`
	BatchNumber       string     `json:"batch_number"`
	ExpirationDate    *time.Time `json:"expiration_date,omitempty"`
	QuantityInitial   int        `json:"quantity_initial"`
	QuantityAvailable int        `json:"quantity_available"`
	Location          string     `json:"location,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// StockMovementResponse salida de un movimiento de stock.
type StockMovementResponse struct {
	ID                string    `json:"id"`
	ProductID         string    `json:"product_id"`
	BatchID           string    `json:"batch_id"`
	Type              string    `json:"type"`
	Quantity          int       `json:"quantity"`
	SignedQuantity    int       `json:"signed_quantity"`
	ReferenceType     string    `json:"reference_type"`
	ReferenceID       string    `json:"reference_id"`
	RevertsMovementID string    `json:"reverts_movement_id,omitempty"`
	UserID            string    `json:"user_id"`
	Notes             string    `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// StockAvailabilityResponse disponible de un producto y, si se pidió, si alcanza.
type StockAvailabilityResponse struct {
	ProductID  string `json:"product_id"`
	Available  int    `json:"available"`
	Required   int    `json:"required,omitempty"`
	Sufficient *bool  `json:"sufficient,omitempty"`
}
