package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.CashBoxRepository = (*CashBoxRepo)(nil)

// CashBoxRepo cajas y movimientos de caja sobre PostgreSQL.
type CashBoxRepo struct {
	q Querier
}

// NewCashBoxRepository construye el adaptador de caja. Pasar pool o tx (Querier).
func NewCashBoxRepository(q Querier) *CashBoxRepo {
	return &CashBoxRepo{q: q}
}

const cashBoxColumns = `id, opened_by, closed_by, opening_amount, closing_amount, notes, opened_at, closed_at`

func scanCashBox(s scanner) (*entity.CashBox, error) {
	var b entity.CashBox
	if err := s.Scan(&b.ID, &b.OpenedBy, &b.ClosedBy, &b.OpeningAmount, &b.ClosingAmount, &b.Notes,
		&b.OpenedAt, &b.ClosedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create abre una caja. El índice único parcial sobre cajas abiertas resuelve aperturas concurrentes.
func (r *CashBoxRepo) Create(ctx context.Context, b *entity.CashBox) error {
	query := `
		INSERT INTO cash_boxes (id, opened_by, closed_by, opening_amount, closing_amount, notes, opened_at, closed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, b.ID, b.OpenedBy, b.ClosedBy, b.OpeningAmount, b.ClosingAmount, b.Notes,
		b.OpenedAt, b.ClosedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewError(domain.ErrCashBoxAlreadyOpen, "Ya existe una caja abierta")
		}
		return fmt.Errorf("insert cash box: %w", err)
	}
	return nil
}

func (r *CashBoxRepo) getOne(ctx context.Context, query string, args ...any) (*entity.CashBox, error) {
	b, err := scanCashBox(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cash box: %w", err)
	}
	return b, nil
}

// GetByID obtiene una caja por ID.
func (r *CashBoxRepo) GetByID(ctx context.Context, id string) (*entity.CashBox, error) {
	return r.getOne(ctx, `SELECT `+cashBoxColumns+` FROM cash_boxes WHERE id = $1`, id)
}

// GetForUpdate obtiene la caja y bloquea la fila.
func (r *CashBoxRepo) GetForUpdate(ctx context.Context, id string) (*entity.CashBox, error) {
	return r.getOne(ctx, `SELECT `+cashBoxColumns+` FROM cash_boxes WHERE id = $1 FOR UPDATE`, id)
}

// FindOpen caja abierta más reciente.
func (r *CashBoxRepo) FindOpen(ctx context.Context, lock bool) (*entity.CashBox, error) {
	return r.getOne(ctx, `SELECT `+cashBoxColumns+` FROM cash_boxes WHERE closed_at IS NULL
		ORDER BY opened_at DESC LIMIT 1`+forUpdate(lock))
}

// Close persiste el cierre de la caja.
func (r *CashBoxRepo) Close(ctx context.Context, b *entity.CashBox) error {
	cmd, err := r.q.Exec(ctx, `UPDATE cash_boxes SET closed_by = $2, closing_amount = $3, notes = $4, closed_at = $5
		WHERE id = $1`, b.ID, b.ClosedBy, b.ClosingAmount, b.Notes, b.ClosedAt)
	if err != nil {
		return fmt.Errorf("close cash box: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List cajas con filtros, la más reciente primero.
func (r *CashBoxRepo) List(ctx context.Context, f entity.CashBoxFilter) ([]*entity.CashBox, error) {
	var w whereBuilder
	switch f.Status {
	case "open":
		w.conds = append(w.conds, "closed_at IS NULL")
	case "closed":
		w.conds = append(w.conds, "closed_at IS NOT NULL")
	}
	if f.OpenedBy != "" {
		w.add("opened_by = ?", f.OpenedBy)
	}
	if f.From != nil {
		w.add("opened_at >= ?", *f.From)
	}
	if f.To != nil {
		w.add("opened_at <= ?", *f.To)
	}
	rows, err := r.q.Query(ctx, `SELECT `+cashBoxColumns+` FROM cash_boxes`+w.sql()+` ORDER BY opened_at DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list cash boxes: %w", err)
	}
	list, err := collectRows(rows, scanCashBox)
	if err != nil {
		return nil, fmt.Errorf("scan cash box: %w", err)
	}
	return list, nil
}

const cashMovementColumns = `id, cash_box_id, type, amount, description, user_id, sale_id, created_at`

func scanCashMovement(s scanner) (*entity.CashMovement, error) {
	var m entity.CashMovement
	var saleID *string
	if err := s.Scan(&m.ID, &m.CashBoxID, &m.Type, &m.Amount, &m.Description, &m.UserID, &saleID, &m.CreatedAt); err != nil {
		return nil, err
	}
	m.SaleID = deref(saleID)
	return &m, nil
}

// CreateMovement inserta un movimiento de caja.
func (r *CashBoxRepo) CreateMovement(ctx context.Context, m *entity.CashMovement) error {
	query := `
		INSERT INTO cash_movements (id, cash_box_id, type, amount, description, user_id, sale_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, m.ID, m.CashBoxID, m.Type, m.Amount, m.Description, m.UserID,
		nullable(m.SaleID), m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert cash movement: %w", err)
	}
	return nil
}

// ListMovements movimientos de una caja en orden cronológico.
func (r *CashBoxRepo) ListMovements(ctx context.Context, cashBoxID string, f entity.CashMovementFilter) ([]*entity.CashMovement, error) {
	var w whereBuilder
	w.add("cash_box_id = ?", cashBoxID)
	if f.Type != "" {
		w.add("type = ?", f.Type)
	}
	if f.UserID != "" {
		w.add("user_id = ?", f.UserID)
	}
	if f.HasSale != nil {
		if *f.HasSale {
			w.conds = append(w.conds, "sale_id IS NOT NULL")
		} else {
			w.conds = append(w.conds, "sale_id IS NULL")
		}
	}
	rows, err := r.q.Query(ctx, `SELECT `+cashMovementColumns+` FROM cash_movements`+w.sql()+
		` ORDER BY created_at, id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list cash movements: %w", err)
	}
	list, err := collectRows(rows, scanCashMovement)
	if err != nil {
		return nil, fmt.Errorf("scan cash movement: %w", err)
	}
	return list, nil
}

const totalsSelect = `
	SELECT
		COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0),
		COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0),
		COALESCE(SUM(amount) FILTER (WHERE type = 'reversal'), 0),
		COUNT(*)
	FROM cash_movements`

// Totals sumas por tipo de los movimientos de la caja.
func (r *CashBoxRepo) Totals(ctx context.Context, cashBoxID string) (entity.CashTotals, error) {
	var t entity.CashTotals
	err := r.q.QueryRow(ctx, totalsSelect+` WHERE cash_box_id = $1`, cashBoxID).
		Scan(&t.Income, &t.Expense, &t.Reversal, &t.Count)
	if err != nil {
		return entity.CashTotals{}, fmt.Errorf("cash totals: %w", err)
	}
	return t, nil
}

// TotalsBetween sumas de los movimientos de las cajas abiertas en [from, to] y cantidad de cajas.
func (r *CashBoxRepo) TotalsBetween(ctx context.Context, from, to time.Time) (entity.CashTotals, int, error) {
	var boxes int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM cash_boxes WHERE opened_at BETWEEN $1 AND $2`, from, to).
		Scan(&boxes); err != nil {
		return entity.CashTotals{}, 0, fmt.Errorf("count cash boxes: %w", err)
	}
	var t entity.CashTotals
	err := r.q.QueryRow(ctx, totalsSelect+` WHERE cash_box_id IN (SELECT id FROM cash_boxes WHERE opened_at BETWEEN $1 AND $2)`,
		from, to).Scan(&t.Income, &t.Expense, &t.Reversal, &t.Count)
	if err != nil {
		return entity.CashTotals{}, 0, fmt.Errorf("cash totals: %w", err)
	}
	t.Income = t.Income.Round(2)
	t.Expense = t.Expense.Round(2)
	t.Reversal = t.Reversal.Round(2)
	return t, boxes, nil
}
