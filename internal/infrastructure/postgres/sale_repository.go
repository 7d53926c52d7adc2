package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, user_id, cashier_id, customer_name, customer_nit, status, subtotal, tax, total, notes,
	created_at, updated_at, completed_at, annulled_at`

func scanSale(s scanner) (*entity.Sale, error) {
	var v entity.Sale
	if err := s.Scan(&v.ID, &v.UserID, &v.CashierID, &v.CustomerName, &v.CustomerNIT, &v.Status, &v.Subtotal,
		&v.Tax, &v.Total, &v.Notes, &v.CreatedAt, &v.UpdatedAt, &v.CompletedAt, &v.AnnulledAt); err != nil {
		return nil, err
	}
	return &v, nil
}

// Create persiste la cabecera de la venta.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (id, user_id, cashier_id, customer_name, customer_nit, status, subtotal, tax, total, notes,
			created_at, updated_at, completed_at, annulled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query, s.ID, s.UserID, s.CashierID, s.CustomerName, s.CustomerNIT, s.Status,
		s.Subtotal, s.Tax, s.Total, s.Notes, s.CreatedAt, s.UpdatedAt, s.CompletedAt, s.AnnulledAt)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

func (r *SaleRepo) getOne(ctx context.Context, query, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return r.getOne(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id)
}

// GetForUpdate obtiene la venta y bloquea la fila.
func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.getOne(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1 FOR UPDATE`, id)
}

// Update persiste estado, totales y marcas de tiempo.
func (r *SaleRepo) Update(ctx context.Context, s *entity.Sale) error {
	query := `
		UPDATE sales SET customer_name = $2, customer_nit = $3, status = $4, subtotal = $5, tax = $6, total = $7,
			notes = $8, updated_at = $9, completed_at = $10, annulled_at = $11
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, s.ID, s.CustomerName, s.CustomerNIT, s.Status, s.Subtotal, s.Tax, s.Total,
		s.Notes, s.UpdatedAt, s.CompletedAt, s.AnnulledAt)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List ventas con filtros opcionales, en orden de creación.
func (r *SaleRepo) List(ctx context.Context, f entity.SaleFilter) ([]*entity.Sale, error) {
	var w whereBuilder
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.UserID != "" {
		w.add("user_id = ?", f.UserID)
	}
	if f.From != nil {
		w.add("created_at >= ?", *f.From)
	}
	if f.To != nil {
		w.add("created_at <= ?", *f.To)
	}
	rows, err := r.q.Query(ctx, `SELECT `+saleColumns+` FROM sales`+w.sql()+` ORDER BY created_at, id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	list, err := collectRows(rows, scanSale)
	if err != nil {
		return nil, fmt.Errorf("scan sale: %w", err)
	}
	return list, nil
}

const saleItemColumns = `id, sale_id, product_id, presentation_id, product_name, presentation_name, factor, quantity,
	unit_price, total, created_at, updated_at`

func scanSaleItem(s scanner) (*entity.SaleItem, error) {
	var it entity.SaleItem
	if err := s.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.PresentationID, &it.ProductName, &it.PresentationName,
		&it.Factor, &it.Quantity, &it.UnitPrice, &it.Total, &it.CreatedAt, &it.UpdatedAt); err != nil {
		return nil, err
	}
	return &it, nil
}

// AddItem inserta un item de la venta.
func (r *SaleRepo) AddItem(ctx context.Context, it *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, presentation_id, product_name, presentation_name, factor,
			quantity, unit_price, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query, it.ID, it.SaleID, it.ProductID, it.PresentationID, it.ProductName,
		it.PresentationName, it.Factor, it.Quantity, it.UnitPrice, it.Total, it.CreatedAt, it.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetItem obtiene un item por ID.
func (r *SaleRepo) GetItem(ctx context.Context, id string) (*entity.SaleItem, error) {
	it, err := scanSaleItem(r.q.QueryRow(ctx, `SELECT `+saleItemColumns+` FROM sale_items WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale item: %w", err)
	}
	return it, nil
}

// UpdateItem actualiza cantidad y total del item.
func (r *SaleRepo) UpdateItem(ctx context.Context, it *entity.SaleItem) error {
	cmd, err := r.q.Exec(ctx, `UPDATE sale_items SET quantity = $2, unit_price = $3, total = $4, updated_at = $5
		WHERE id = $1`, it.ID, it.Quantity, it.UnitPrice, it.Total, it.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update sale item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteItem elimina un item.
func (r *SaleRepo) DeleteItem(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM sale_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListItems items de la venta en orden de alta.
func (r *SaleRepo) ListItems(ctx context.Context, saleID string) ([]*entity.SaleItem, error) {
	rows, err := r.q.Query(ctx, `SELECT `+saleItemColumns+` FROM sale_items WHERE sale_id = $1 ORDER BY created_at, id`, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	list, err := collectRows(rows, scanSaleItem)
	if err != nil {
		return nil, fmt.Errorf("scan sale item: %w", err)
	}
	return list, nil
}
