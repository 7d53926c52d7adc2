package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// CashBoxRepository puerto de persistencia para cajas y sus movimientos.
type CashBoxRepository interface {
	// Create debe devolver domain.ErrCashBoxAlreadyOpen si otra caja abierta ganó la carrera.
	Create(ctx context.Context, b *entity.CashBox) error
	GetByID(ctx context.Context, id string) (*entity.CashBox, error)
	GetForUpdate(ctx context.Context, id string) (*entity.CashBox, error)
	// FindOpen caja con closed_at nulo, la más reciente primero; (nil, nil) si no hay.
	FindOpen(ctx context.Context, forUpdate bool) (*entity.CashBox, error)
	Close(ctx context.Context, b *entity.CashBox) error
	List(ctx context.Context, f entity.CashBoxFilter) ([]*entity.CashBox, error)

	CreateMovement(ctx context.Context, m *entity.CashMovement) error
	ListMovements(ctx context.Context, cashBoxID string, f entity.CashMovementFilter) ([]*entity.CashMovement, error)
	Totals(ctx context.Context, cashBoxID string) (entity.CashTotals, error)
	// TotalsBetween sumas de movimientos de cajas abiertas en el rango.
	TotalsBetween(ctx context.Context, from, to time.Time) (entity.CashTotals, int, error)
}
