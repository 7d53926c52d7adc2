package repository

import (
	"context"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// SaleRepository puerto de persistencia para ventas e items.
type SaleRepository interface {
	Create(ctx context.Context, s *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Sale, error)
	// Update persiste estado, totales y marcas de tiempo.
	Update(ctx context.Context, s *entity.Sale) error
	List(ctx context.Context, f entity.SaleFilter) ([]*entity.Sale, error)

	AddItem(ctx context.Context, it *entity.SaleItem) error
	GetItem(ctx context.Context, id string) (*entity.SaleItem, error)
	UpdateItem(ctx context.Context, it *entity.SaleItem) error
	DeleteItem(ctx context.Context, id string) error
	ListItems(ctx context.Context, saleID string) ([]*entity.SaleItem, error)
}
