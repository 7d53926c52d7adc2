package repository

import (
	"context"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia para productos y presentaciones.
// Los Get devuelven (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, activeOnly bool) ([]*entity.Product, error)
	SetActive(ctx context.Context, id string, active bool) error

	CreatePresentation(ctx context.Context, p *entity.Presentation) error
	GetPresentation(ctx context.Context, id string) (*entity.Presentation, error)
	ListPresentations(ctx context.Context, productID string) ([]*entity.Presentation, error)
}
