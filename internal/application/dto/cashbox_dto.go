package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpenCashBoxRequest apertura de caja.
type OpenCashBoxRequest struct {
	OpeningAmount decimal.Decimal `json:"opening_amount"`
	Notes         string          `json:"notes"`
}

// CloseCashBoxRequest cierre de caja; sin closing_amount se usa el esperado.
type CloseCashBoxRequest struct {
	ClosingAmount *decimal.Decimal `json:"closing_amount"`
	Notes         string           `json:"notes"`
}

// CashMovementRequest ingreso o egreso manual.
type CashMovementRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" validate:"required"`
	SaleID      string          `json:"sale_id"`
}

// CashBoxResponse sesión de caja.
type CashBoxResponse struct {
	ID            string           `json:"id"`
	OpenedBy      string           `json:"opened_by"`
	ClosedBy      string           `json:"closed_by,omitempty"`
	OpeningAmount decimal.Decimal  `json:"opening_amount"`
	ClosingAmount *decimal.Decimal `json:"closing_amount,omitempty"`
	Notes         string           `json:"notes,omitempty"`
	IsOpen        bool             `json:"is_open"`
	OpenedAt      time.Time        `json:"opened_at"`
	ClosedAt      *time.Time       `json:"closed_at,omitempty"`
}

// CashMovementResponse movimiento de caja.
type CashMovementResponse struct {
	ID          string          `json:"id"`
	CashBoxID   string          `json:"cash_box_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	UserID      string          `json:"user_id"`
	SaleID      string          `json:"sale_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CashBoxSummaryResponse resumen de una caja.
type CashBoxSummaryResponse struct {
	CashBox         CashBoxResponse  `json:"cash_box"`
	OpeningAmount   decimal.Decimal  `json:"opening_amount"`
	TotalIncome     decimal.Decimal  `json:"total_income"`
	TotalExpense    decimal.Decimal  `json:"total_expense"`
	TotalReversal   decimal.Decimal  `json:"total_reversal"`
	ExpectedClosing decimal.Decimal  `json:"expected_closing"`
	ClosingAmount   *decimal.Decimal `json:"closing_amount,omitempty"`
	Difference      *decimal.Decimal `json:"difference,omitempty"`
	NetMovement     decimal.Decimal  `json:"net_movement"`
	MovementsCount  int              `json:"movements_count"`
}

// CloseCashBoxResponse caja cerrada con esperado y diferencia.
type CloseCashBoxResponse struct {
	CashBox    CashBoxResponse `json:"cash_box"`
	Expected   decimal.Decimal `json:"expected"`
	Difference decimal.Decimal `json:"difference"`
}
