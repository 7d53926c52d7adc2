package cashbox

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Ventas-api/internal/application/ports"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Ledger libro de caja. Invariante: a lo sumo una caja abierta en todo el sistema.
// La caja abierta se busca en cada llamada, nunca se guarda entre transacciones.
type Ledger struct {
	txRunner ports.TxRunner
	clock    ports.Clock
}

// NewLedger construye el libro de caja.
func NewLedger(txRunner ports.TxRunner, clock ports.Clock) *Ledger {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &Ledger{txRunner: txRunner, clock: clock}
}

// MovementInput datos de un ingreso, egreso o reversión.
type MovementInput struct {
	CashBoxID   string
	Amount      decimal.Decimal
	Description string
	UserID      string
	SaleID      string
}

// CloseResult caja cerrada con el esperado y la diferencia (positiva = sobrante, negativa = faltante).
type CloseResult struct {
	CashBox    *entity.CashBox
	Expected   decimal.Decimal
	Difference decimal.Decimal
}

// Summary resumen de una caja.
type Summary struct {
	CashBox         *entity.CashBox
	OpeningAmount   decimal.Decimal
	TotalIncome     decimal.Decimal
	TotalExpense    decimal.Decimal
	TotalReversal   decimal.Decimal
	ExpectedClosing decimal.Decimal
	ClosingAmount   *decimal.Decimal
	Difference      *decimal.Decimal
	NetMovement     decimal.Decimal
	MovementsCount  int
}

// Stats totales de las cajas abiertas en un rango.
type Stats struct {
	CashBoxes     int
	TotalIncome   decimal.Decimal
	TotalExpense  decimal.Decimal
	TotalReversal decimal.Decimal
	NetMovement   decimal.Decimal
}

// OpenCashBox abre una caja. Falla con ErrCashBoxAlreadyOpen si ya hay una abierta.
func (l *Ledger) OpenCashBox(ctx context.Context, userID string, openingAmount decimal.Decimal, notes string) (*entity.CashBox, error) {
	if openingAmount.IsNegative() {
		return nil, domain.NewError(domain.ErrInvalidInput, "el monto de apertura no puede ser negativo")
	}
	box := &entity.CashBox{
		ID:            uuid.New().String(),
		OpenedBy:      userID,
		OpeningAmount: openingAmount.Round(2),
		Notes:         notes,
	}
	err := l.txRunner.Run(ctx, func(r ports.Repos) error {
		open, err := r.CashBoxes.FindOpen(ctx, true)
		if err != nil {
			return err
		}
		if open != nil {
			return domain.Errorf(domain.ErrCashBoxAlreadyOpen, "Ya existe una caja abierta (#%s)", open.ID)
		}
		box.OpenedAt = l.clock.Now()
		return r.CashBoxes.Create(ctx, box)
	})
	if err != nil {
		return nil, err
	}
	return box, nil
}

// FindOpenBox caja abierta actual o nil.
func (l *Ledger) FindOpenBox(ctx context.Context) (*entity.CashBox, error) {
	var box *entity.CashBox
	err := l.txRunner.Run(ctx, func(r ports.Repos) error {
		var err error
		box, err = r.CashBoxes.FindOpen(ctx, false)
		return err
	})
	return box, err
}

// RequireOpenBoxInTx caja abierta bloqueada para la transacción; ErrCashBoxNotOpen si no hay.
func (l *Ledger) RequireOpenBoxInTx(ctx context.Context, r ports.Repos) (*entity.CashBox, error) {
	box, err := r.CashBoxes.FindOpen(ctx, true)
	if err != nil {
		return nil, err
	}
	if box == nil {
		return nil, domain.ErrCashBoxNotOpen
	}
	return box, nil
}

// CloseCashBox cierra la caja. Sin closingAmount se usa el esperado.
func (l *Ledger) CloseCashBox(ctx context.Context, boxID, userID string, closingAmount *decimal.Decimal, notes string) (*CloseResult, error) {
	if closingAmount != nil && closingAmount.IsNegative() {
		return nil, domain.NewError(domain.ErrInvalidInput, "el monto de cierre no puede ser negativo")
	}
	var res *CloseResult
	err := l.txRunner.Run(ctx, func(r ports.Repos) error {
		box, err := r.CashBoxes.GetForUpdate(ctx, boxID)
		if err != nil {
			return err
		}
		if box == nil {
			return domain.ErrNotFound
		}
		if !box.IsOpen() {
			return domain.ErrCashBoxAlreadyClosed
		}
		totals, err := r.CashBoxes.Totals(ctx, box.ID)
		if err != nil {
			return err
		}
		expected := totals.ExpectedClosing(box.OpeningAmount)
		closing := expected
		if closingAmount != nil {
			closing = closingAmount.Round(2)
		}
		now := l.clock.Now()
		box.ClosedBy = userID
		box.ClosingAmount = &closing
		box.ClosedAt = &now
		if strings.TrimSpace(notes) != "" {
			box.Notes = notes
		}
		if err := r.CashBoxes.Close(ctx, box); err != nil {
			return err
		}
		res = &CloseResult{CashBox: box, Expected: expected, Difference: closing.Sub(expected)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// CalculateExpectedClosing apertura + ingresos - egresos - reversiones.
func (l *Ledger) CalculateExpectedClosing(ctx context.Context, boxID string) (decimal.Decimal, error) {
	var expected decimal.Decimal
	err := l.txRunner.Run(ctx, func(r ports.Repos) error {
		box, err := r.CashBoxes.GetByID(ctx, boxID)
		if err != nil {
			return err
		}
		if box == nil {
			return domain.ErrNotFound
		}
		totals, err := r.CashBoxes.Totals(ctx, boxID)
		if err != nil {
			return err
		}
		expected = totals.ExpectedClosing(box.OpeningAmount)
		return nil
	})
	return expected, err
}

// RegisterIncome registra un ingreso.
func (l *Ledger) RegisterIncome(ctx context.Context, in MovementInput) (*entity.CashMovement, error) {
	return l.register(ctx, entity.CashMovementIncome, in)
}

// RegisterExpense registra un egreso.
func (l *Ledger) RegisterExpense(ctx context.Context, in MovementInput) (*entity.CashMovement, error) {
	return l.register(ctx, entity.CashMovementExpense, in)
}

// RegisterReversal registra una reversión ligada a la venta de origen.
func (l *Ledger) RegisterReversal(ctx context.Context, in MovementInput) (*entity.CashMovement, error) {
	return l.register(ctx, entity.CashMovementReversal, in)
}

func (l *Ledger) register(ctx context.Context, movementType string, in MovementInput) (*entity.CashMovement, error) {
	var mov *entity.CashMovement
	err := l.txRunner.Run(ctx, func(r ports.Repos) error {
		var err error
		mov, err = l.RegisterInTx(ctx, r, movementType, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// RegisterInTx registra un movimiento del tipo dado dentro de la transacción del caller.
// La caja se relee y bloquea en cada llamada.
func (l *Ledger) RegisterInTx(ctx context.Context, r ports.Repos, movementType string, in MovementInput) (*entity.CashMovement, error) {
	switch movementType {
	case entity.CashMovementIncome, entity.CashMovementExpense:
	case entity.CashMovementReversal:
		if in.SaleID == "" {
			return nil, domain.NewError(domain.ErrInvalidInput, "la reversión requiere la venta de origen")
		}
	default:
		return nil, domain.Errorf(domain.ErrInvalidInput, "tipo de movimiento de caja inválido: %s", movementType)
	}
	amount := in.Amount.Round(2)
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	box, err := r.CashBoxes.GetForUpdate(ctx, in.CashBoxID)
	if err != nil {
		return nil, err
	}
	if box == nil {
		return nil, domain.ErrNotFound
	}
	if !box.IsOpen() {
		return nil, domain.ErrCashBoxAlreadyClosed
	}
	mov := &entity.CashMovement{
		ID:          uuid.New().String(),
		CashBoxID:   box.ID,
		Type:        movementType,
		Amount:      amount,
		Description: in.Description,
		UserID:      in.UserID,
		SaleID:      in.SaleID,
		CreatedAt:   l.clock.Now(),
	}
	if err := r.CashBoxes.CreateMovement(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// Summary totales por tipo, esperado y diferencia (solo si está cerrada).
func (l *Ledger) Summary(ctx context.Context, boxID string) (*Summary, error) {
	var s *Summary
	err := l.txRunner.Run(ctx, func(r ports.Repos) error {
		box, err := r.CashBoxes.GetByID(ctx, boxID)
		if err != nil {
			return err
		}
		if box == nil {
			return domain.ErrNotFound
		}
		totals, err := r.CashBoxes.Totals(ctx, boxID)
		if err != nil {
			return err
		}
		expected := totals.ExpectedClosing(box.OpeningAmount)
		s = &Summary{
			CashBox:         box,
			OpeningAmount:   box.OpeningAmount,
			TotalIncome:     totals.Income,
			TotalExpense:    totals.Expense,
			TotalReversal:   totals.Reversal,
			ExpectedClosing: expected,
			ClosingAmount:   box.ClosingAmount,
			NetMovement:     totals.Net(),
			MovementsCount:  totals.Count,
		}
		if box.ClosingAmount != nil {
			diff := box.ClosingAmount.Sub(expected)
			s.Difference = &diff
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Movements movimientos de una caja con filtros.
func (l *Ledger) Movements(ctx context.Context, boxID string, f entity.CashMovementFilter) ([]*entity.CashMovement, error) {
	var out []*entity.CashMovement
	err := l.txRunner.Run(ctx, func(r ports.Repos) error {
		box, err := r.CashBoxes.GetByID(ctx, boxID)
		if err != nil {
			return err
		}
		if box == nil {
			return domain.ErrNotFound
		}
		out, err = r.CashBoxes.ListMovements(ctx, boxID, f)
		return err
	})
	return out, err
}

// List cajas con filtros, la más reciente primero.
func (l *Ledger) List(ctx context.Context, f entity.CashBoxFilter) ([]*entity.CashBox, error) {
	var out []*entity.CashBox
	err := l.txRunner.Run(ctx, func(r ports.Repos) error {
		var err error
		out, err = r.CashBoxes.List(ctx, f)
		return err
	})
	return out, err
}

// Stats totales de cajas abiertas entre from y to.
func (l *Ledger) Stats(ctx context.Context, from, to time.Time) (*Stats, error) {
	if to.Before(from) {
		return nil, domain.NewError(domain.ErrInvalidInput, "rango de fechas inválido")
	}
	var s *Stats
	err := l.txRunner.Run(ctx, func(r ports.Repos) error {
		totals, boxes, err := r.CashBoxes.TotalsBetween(ctx, from, to)
		if err != nil {
			return err
		}
		s = &Stats{
			CashBoxes:     boxes,
			TotalIncome:   totals.Income,
			TotalExpense:  totals.Expense,
			TotalReversal: totals.Reversal,
			NetMovement:   totals.Net(),
		}
		return nil
	})
	return s, err
}
