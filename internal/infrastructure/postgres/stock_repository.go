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

var _ repository.StockBatchRepository = (*StockBatchRepo)(nil)

// StockBatchRepo implementación de StockBatchRepository sobre PostgreSQL (usable con pool o tx).
type StockBatchRepo struct {
	q Querier
}

// NewStockBatchRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewStockBatchRepository(q Querier) *StockBatchRepo {
	return &StockBatchRepo{q: q}
}

const batchColumns = `id, product_id, batch_number, expiration_date, quantity_initial, quantity_available,
	location, created_at, updated_at`

func scanBatch(s scanner) (*entity.StockBatch, error) {
	var b entity.StockBatch
	if err := s.Scan(&b.ID, &b.ProductID, &b.BatchNumber, &b.ExpirationDate, &b.QuantityInitial,
		&b.QuantityAvailable, &b.Location, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserta un lote nuevo.
func (r *StockBatchRepo) Create(ctx context.Context, b *entity.StockBatch) error {
	query := `
		INSERT INTO stock_batches (id, product_id, batch_number, expiration_date, quantity_initial, quantity_available,
			location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query, b.ID, b.ProductID, b.BatchNumber, b.ExpirationDate, b.QuantityInitial,
		b.QuantityAvailable, b.Location, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Errorf(domain.ErrConflict, "el lote %s ya existe", b.BatchNumber)
		}
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

func (r *StockBatchRepo) getOne(ctx context.Context, query string, args ...any) (*entity.StockBatch, error) {
	b, err := scanBatch(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return b, nil
}

// GetByID obtiene un lote por ID.
func (r *StockBatchRepo) GetByID(ctx context.Context, id string) (*entity.StockBatch, error) {
	return r.getOne(ctx, `SELECT `+batchColumns+` FROM stock_batches WHERE id = $1`, id)
}

// GetForUpdate obtiene el lote y bloquea la fila (SELECT FOR UPDATE).
func (r *StockBatchRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockBatch, error) {
	return r.getOne(ctx, `SELECT `+batchColumns+` FROM stock_batches WHERE id = $1 FOR UPDATE`, id)
}

// GetByNumberForUpdate lote por producto y número, bloqueado.
func (r *StockBatchRepo) GetByNumberForUpdate(ctx context.Context, productID, batchNumber string) (*entity.StockBatch, error) {
	return r.getOne(ctx, `SELECT `+batchColumns+` FROM stock_batches
		WHERE product_id = $1 AND batch_number = $2 FOR UPDATE`, productID, batchNumber)
}

// ListAvailableFIFO lotes con disponible > 0: vencimiento más próximo primero, sin vencimiento al final.
// Con forUpdate las filas quedan bloqueadas en el mismo orden, lo que evita interbloqueos entre ventas.
func (r *StockBatchRepo) ListAvailableFIFO(ctx context.Context, productID string, lock bool) ([]*entity.StockBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM stock_batches
		WHERE product_id = $1 AND quantity_available > 0
		ORDER BY expiration_date ASC NULLS LAST, created_at ASC, id` + forUpdate(lock)
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	list, err := collectRows(rows, scanBatch)
	if err != nil {
		return nil, fmt.Errorf("scan batch: %w", err)
	}
	return list, nil
}

// UpdateAvailable fija el disponible del lote.
func (r *StockBatchRepo) UpdateAvailable(ctx context.Context, id string, available int, updatedAt time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE stock_batches SET quantity_available = $2, updated_at = $3 WHERE id = $1`,
		id, available, updatedAt)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Increment suma quantity al disponible.
func (r *StockBatchRepo) Increment(ctx context.Context, id string, quantity int, updatedAt time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE stock_batches SET quantity_available = quantity_available + $2, updated_at = $3
		WHERE id = $1`, id, quantity, updatedAt)
	if err != nil {
		return fmt.Errorf("increment batch: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SumAvailable disponible total del producto.
func (r *StockBatchRepo) SumAvailable(ctx context.Context, productID string) (int, error) {
	var total int
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(quantity_available), 0) FROM stock_batches WHERE product_id = $1`,
		productID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum stock: %w", err)
	}
	return total, nil
}

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos; solo inserta y consulta.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador de movimientos. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, product_id, batch_id, type, quantity, increase, reference_type, reference_id,
	reverts_movement_id, user_id, notes, created_at`

func scanMovement(s scanner) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var reverts *string
	if err := s.Scan(&m.ID, &m.ProductID, &m.BatchID, &m.Type, &m.Quantity, &m.Increase, &m.ReferenceType,
		&m.ReferenceID, &reverts, &m.UserID, &m.Notes, &m.CreatedAt); err != nil {
		return nil, err
	}
	m.RevertsMovementID = deref(reverts)
	return &m, nil
}

// Create inserta un movimiento. Una segunda reversión del mismo movimiento viola el índice único.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, batch_id, type, quantity, increase, reference_type, reference_id,
			reverts_movement_id, user_id, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query, m.ID, m.ProductID, m.BatchID, m.Type, m.Quantity, m.Increase, m.ReferenceType,
		m.ReferenceID, nullable(m.RevertsMovementID), m.UserID, m.Notes, m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyReverted
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

func (r *StockMovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	list, err := collectRows(rows, scanMovement)
	if err != nil {
		return nil, fmt.Errorf("scan movement: %w", err)
	}
	return list, nil
}

// ListByReference movimientos de un tipo con la referencia dada.
func (r *StockMovementRepo) ListByReference(ctx context.Context, referenceType, referenceID, movementType string) ([]*entity.StockMovement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM stock_movements
		WHERE reference_type = $1 AND reference_id = $2 AND type = $3
		ORDER BY created_at, id`, referenceType, referenceID, movementType)
}

// ListUnreverted salidas de la referencia que ninguna reversión apunta.
func (r *StockMovementRepo) ListUnreverted(ctx context.Context, referenceType, referenceID string) ([]*entity.StockMovement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM stock_movements m
		WHERE m.reference_type = $1 AND m.reference_id = $2 AND m.type = 'out'
		  AND NOT EXISTS (SELECT 1 FROM stock_movements rv WHERE rv.reverts_movement_id = m.id)
		ORDER BY m.created_at, m.id`, referenceType, referenceID)
}

// List movimientos con filtros opcionales, en orden cronológico.
func (r *StockMovementRepo) List(ctx context.Context, f entity.MovementFilter) ([]*entity.StockMovement, error) {
	var w whereBuilder
	if f.ProductID != "" {
		w.add("product_id = ?", f.ProductID)
	}
	if f.BatchID != "" {
		w.add("batch_id = ?", f.BatchID)
	}
	if f.Type != "" {
		w.add("type = ?", f.Type)
	}
	if f.ReferenceType != "" {
		w.add("reference_type = ?", f.ReferenceType)
	}
	if f.ReferenceID != "" {
		w.add("reference_id = ?", f.ReferenceID)
	}
	return r.list(ctx, `SELECT `+movementColumns+` FROM stock_movements`+w.sql()+` ORDER BY created_at, id`, w.args...)
}
