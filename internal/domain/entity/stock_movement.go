package entity

import "time"

// Tipos de movimiento de stock. Quantity siempre es positiva; el signo lo da el tipo.
const (
	MovementTypeIn         = "in"
	MovementTypeOut        = "out"
	MovementTypeReversal   = "reversal"
	MovementTypeAdjustment = "adjustment"
)

// Tipos de referencia de movimientos.
const (
	ReferenceSale         = "sale"
	ReferenceStockEntry   = "stock_entry"
	ReferenceAdjustment   = "adjustment"
	ReferenceAnnulment    = "annulment"
	ReferenceCancellation = "cancellation"
)

// StockMovement registro inmutable de auditoría de stock.
// En ajustes, Increase indica si la cantidad se sumó o se restó.
// En reversiones, RevertsMovementID apunta al movimiento out original.
type StockMovement struct {
	ID                string
	ProductID         string
	BatchID           string
	Type              string
	Quantity          int
	Increase          bool
	ReferenceType     string
	ReferenceID       string
	RevertsMovementID string
	UserID            string
	Notes             string
	CreatedAt         time.Time
}

// SignedQuantity cantidad con el signo que aplica sobre el disponible del lote.
func (m StockMovement) SignedQuantity() int {
	switch m.Type {
	case MovementTypeIn, MovementTypeReversal:
		return m.Quantity
	case MovementTypeOut:
		return -m.Quantity
	case MovementTypeAdjustment:
		if m.Increase {
			return m.Quantity
		}
		return -m.Quantity
	}
	return 0
}

// MovementFilter filtros para listar movimientos.
type MovementFilter struct {
	ProductID     string
	BatchID       string
	Type          string
	ReferenceType string
	ReferenceID   string
}
