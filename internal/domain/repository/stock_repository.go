package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// StockBatchRepository puerto de persistencia para lotes.
// Los métodos ForUpdate bloquean las filas devueltas hasta el fin de la transacción.
type StockBatchRepository interface {
	Create(ctx context.Context, b *entity.StockBatch) error
	GetByID(ctx context.Context, id string) (*entity.StockBatch, error)
	GetForUpdate(ctx context.Context, id string) (*entity.StockBatch, error)
	GetByNumberForUpdate(ctx context.Context, productID, batchNumber string) (*entity.StockBatch, error)
	// ListAvailableFIFO lotes con disponible > 0 en orden FIFO por vencimiento.
	ListAvailableFIFO(ctx context.Context, productID string, forUpdate bool) ([]*entity.StockBatch, error)
	UpdateAvailable(ctx context.Context, id string, available int, updatedAt time.Time) error
	// Increment suma quantity al disponible (entrada sobre un lote existente).
	Increment(ctx context.Context, id string, quantity int, updatedAt time.Time) error
	SumAvailable(ctx context.Context, productID string) (int, error)
}

// StockMovementRepository puerto del libro de movimientos (solo inserción).
type StockMovementRepository interface {
	Create(ctx context.Context, m *entity.StockMovement) error
	// ListByReference movimientos del tipo indicado con esa referencia, en orden de creación.
	ListByReference(ctx context.Context, referenceType, referenceID, movementType string) ([]*entity.StockMovement, error)
	// ListUnreverted movimientos out de la referencia sin una reversión que los apunte.
	ListUnreverted(ctx context.Context, referenceType, referenceID string) ([]*entity.StockMovement, error)
	List(ctx context.Context, f entity.MovementFilter) ([]*entity.StockMovement, error)
}
