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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, COALESCE(sku, ''), name, description, active, created_at, updated_at`

func scanProduct(s scanner) (*entity.Product, error) {
	var p entity.Product
	if err := s.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, name, description, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, p.ID, nullable(p.SKU), p.Name, p.Description, p.Active, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Errorf(domain.ErrConflict, "el SKU %s ya existe", p.SKU)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// List lista productos por fecha de creación; activeOnly filtra los inactivos.
func (r *ProductRepo) List(ctx context.Context, activeOnly bool) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	if activeOnly {
		query += ` WHERE active`
	}
	rows, err := r.q.Query(ctx, query+` ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	list, err := collectRows(rows, scanProduct)
	if err != nil {
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return list, nil
}

// SetActive activa o desactiva un producto.
func (r *ProductRepo) SetActive(ctx context.Context, id string, active bool) error {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const presentationColumns = `id, product_id, name, factor, price, active, created_at, updated_at`

func scanPresentation(s scanner) (*entity.Presentation, error) {
	var p entity.Presentation
	if err := s.Scan(&p.ID, &p.ProductID, &p.Name, &p.Factor, &p.Price, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePresentation persiste una presentación del producto.
func (r *ProductRepo) CreatePresentation(ctx context.Context, p *entity.Presentation) error {
	query := `
		INSERT INTO product_presentations (id, product_id, name, factor, price, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := r.q.Exec(ctx, query, p.ID, p.ProductID, p.Name, p.Factor, p.Price, p.Active, p.CreatedAt, p.UpdatedAt); err != nil {
		return fmt.Errorf("insert presentation: %w", err)
	}
	return nil
}

// GetPresentation obtiene una presentación por ID.
func (r *ProductRepo) GetPresentation(ctx context.Context, id string) (*entity.Presentation, error) {
	p, err := scanPresentation(r.q.QueryRow(ctx, `SELECT `+presentationColumns+` FROM product_presentations WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get presentation: %w", err)
	}
	return p, nil
}

// ListPresentations presentaciones de un producto, menor factor primero.
func (r *ProductRepo) ListPresentations(ctx context.Context, productID string) ([]*entity.Presentation, error) {
	rows, err := r.q.Query(ctx, `SELECT `+presentationColumns+` FROM product_presentations
		WHERE product_id = $1 ORDER BY factor, created_at`, productID)
	if err != nil {
		return nil, fmt.Errorf("list presentations: %w", err)
	}
	list, err := collectRows(rows, scanPresentation)
	if err != nil {
		return nil, fmt.Errorf("scan presentation: %w", err)
	}
	return list, nil
}
