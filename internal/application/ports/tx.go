package ports

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción.
type Repos struct {
	Products        repository.ProductRepository
	Batches         repository.StockBatchRepository
	Movements       repository.StockMovementRepository
	Sales           repository.SaleRepository
	CashBoxes       repository.CashBoxRepository
	FiscalDocuments repository.FiscalDocumentRepository
	Annulments      repository.AnnulmentRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback si no.
// Todas las mutaciones multi-paso de los ledgers pasan por aquí.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}

// Clock fuente de tiempo inyectable.
type Clock interface {
	Now() time.Time
}

// SystemClock reloj real (UTC).
type SystemClock struct{}

// Now devuelve la hora actual en UTC.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// FixedClock reloj fijo que avanza Step en cada llamada (para tests).
type FixedClock struct {
	mu   sync.Mutex
	T    time.Time
	Step time.Duration
}

// Now devuelve T y lo avanza Step.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.T
	c.T = c.T.Add(c.Step)
	return t
}
