package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusPending   = "pending"
	SaleStatusCompleted = "completed"
	SaleStatusAnnulled  = "annulled"
)

// Comprador por defecto (consumidor final).
const (
	DefaultCustomerName = "Consumidor Final"
	DefaultCustomerNIT  = "CF"
)

// DefaultTaxRate tasa de impuesto por defecto (IVA 12%).
var DefaultTaxRate = decimal.RequireFromString("0.12")

// Sale cabecera de venta. Subtotal, Tax y Total se derivan de los items mientras está pendiente.
type Sale struct {
	ID           string
	UserID       string
	CashierID    string
	CustomerName string
	CustomerNIT  string
	Status       string
	Subtotal     decimal.Decimal
	Tax          decimal.Decimal
	Total        decimal.Decimal
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CompletedAt  *time.Time
	AnnulledAt   *time.Time
}

// IsPending indica si la venta admite cambios en sus items.
func (s Sale) IsPending() bool { return s.Status == SaleStatusPending }

// SaleItem línea de venta. Quantity está en presentaciones; UnitPrice es la foto del precio
// de la presentación al momento de agregarla.
type SaleItem struct {
	ID               string
	SaleID           string
	ProductID        string
	PresentationID   string
	ProductName      string
	PresentationName string
	Factor           int
	Quantity         int
	UnitPrice        decimal.Decimal
	Total            decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// BaseUnits cantidad del item en unidades base.
func (i SaleItem) BaseUnits() int { return i.Quantity * i.Factor }

// LineTotal total de línea: cantidad * precio unitario, 2 decimales.
func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// RecalculateTotals subtotal = suma de items; tax = subtotal * taxRate; total = subtotal + tax.
func RecalculateTotals(items []*SaleItem, taxRate decimal.Decimal) (subtotal, tax, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Total)
	}
	subtotal = subtotal.Round(2)
	tax = subtotal.Mul(taxRate).Round(2)
	total = subtotal.Add(tax)
	return subtotal, tax, total
}

// SaleFilter filtros para listar ventas.
type SaleFilter struct {
	Status string
	UserID string
	From   *time.Time
	To     *time.Time
}
