package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. El stock se maneja por lotes (StockBatch).
type Product struct {
	ID          string
	SKU         string
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Presentation forma de venta de un producto (unidad, caja, fardo).
// Factor es la cantidad de unidades base que contiene una presentación (>= 1).
type Presentation struct {
	ID        string
	ProductID string
	Name      string
	Factor    int
	Price     decimal.Decimal // precio de venta por presentación, 2 decimales
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BaseUnits convierte una cantidad en presentaciones a unidades base.
func (p Presentation) BaseUnits(quantity int) int {
	return quantity * p.Factor
}
