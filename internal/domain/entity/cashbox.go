package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de caja.
const (
	CashMovementIncome   = "income"
	CashMovementExpense  = "expense"
	CashMovementReversal = "reversal"
)

// CashBox sesión de caja. A lo sumo una caja con ClosedAt == nil en todo el sistema.
type CashBox struct {
	ID            string
	OpenedBy      string
	ClosedBy      string
	OpeningAmount decimal.Decimal
	ClosingAmount *decimal.Decimal
	Notes         string
	OpenedAt      time.Time
	ClosedAt      *time.Time
}

// IsOpen indica si la caja sigue abierta.
func (b CashBox) IsOpen() bool { return b.ClosedAt == nil }

// CashMovement movimiento inmutable de caja. SaleID vacío si no proviene de una venta.
type CashMovement struct {
	ID          string
	CashBoxID   string
	Type        string
	Amount      decimal.Decimal
	Description string
	UserID      string
	SaleID      string
	CreatedAt   time.Time
}

// CashTotals sumas por tipo de movimiento de una caja.
type CashTotals struct {
	Income   decimal.Decimal
	Expense  decimal.Decimal
	Reversal decimal.Decimal
	Count    int
}

// Add acumula un movimiento.
func (t *CashTotals) Add(m CashMovement) {
	switch m.Type {
	case CashMovementIncome:
		t.Income = t.Income.Add(m.Amount)
	case CashMovementExpense:
		t.Expense = t.Expense.Add(m.Amount)
	case CashMovementReversal:
		t.Reversal = t.Reversal.Add(m.Amount)
	}
	t.Count++
}

// ExpectedClosing apertura + ingresos - egresos - reversiones.
func (t CashTotals) ExpectedClosing(opening decimal.Decimal) decimal.Decimal {
	return opening.Add(t.Income).Sub(t.Expense).Sub(t.Reversal).Round(2)
}

// Net movimiento neto sin la apertura.
func (t CashTotals) Net() decimal.Decimal {
	return t.Income.Sub(t.Expense).Sub(t.Reversal).Round(2)
}

// CashMovementFilter filtros para movimientos de caja. HasSale: nil = todos.
type CashMovementFilter struct {
	Type    string
	UserID  string
	HasSale *bool
}

// CashBoxFilter filtros para listar cajas. Status: "open", "closed" o vacío.
type CashBoxFilter struct {
	Status   string
	OpenedBy string
	From     *time.Time
	To       *time.Time
}
