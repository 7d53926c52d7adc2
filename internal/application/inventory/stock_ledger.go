package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Ventas-api/internal/application/ports"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// StockLedger libro de stock por lotes: entradas, consumo FIFO por vencimiento,
// reversión por referencia y ajustes. Cada operación corre en una transacción;
// las variantes InTx reutilizan la transacción del caller (ventas, anulaciones).
type StockLedger struct {
	txRunner ports.TxRunner
	clock    ports.Clock
}

// NewStockLedger construye el libro de stock.
func NewStockLedger(txRunner ports.TxRunner, clock ports.Clock) *StockLedger {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &StockLedger{txRunner: txRunner, clock: clock}
}

// AddStockInput entrada de mercadería a un lote.
type AddStockInput struct {
	ProductID      string
	BatchNumber    string
	ExpirationDate *time.Time
	Quantity       int
	Location       string
	UserID         string
}

// Reference causa de un movimiento (tipo + id), p. ej. {"sale", saleID}.
type Reference struct {
	Type string
	ID   string
}

// Consumption detalle de lo consumido de un lote.
type Consumption struct {
	BatchID        string     `json:"batch_id"`
	BatchNumber    string     `json:"batch_number"`
	Quantity       int        `json:"quantity"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
}

// AddStock registra una entrada: suma al disponible del lote (producto, número) o lo crea
// con inicial = disponible = cantidad.
func (l *StockLedger) AddStock(ctx context.Context, in AddStockInput) (*entity.StockBatch, error) {
	var batch *entity.StockBatch
	err := l.txRunner.Run(ctx, func(r ports.Repos) error {
		var err error
		batch, err = l.AddStockInTx(ctx, r, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

// AddStockInTx igual que AddStock dentro de la transacción del caller.
func (l *StockLedger) AddStockInTx(ctx context.Context, r ports.Repos, in AddStockInput) (*entity.StockBatch, error) {
	in.BatchNumber = strings.TrimSpace(in.BatchNumber)
	if in.ProductID == "" || in.BatchNumber == "" {
		return nil, domain.NewError(domain.ErrInvalidInput, "producto y número de lote son obligatorios")
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	product, err := r.Products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !product.Active {
		return nil, domain.ErrInactiveProduct
	}

	now := l.clock.Now()
	batch, err := r.Batches.GetByNumberForUpdate(ctx, in.ProductID, in.BatchNumber)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		batch = &entity.StockBatch{
			ID:                uuid.New().String(),
			ProductID:         in.ProductID,
			BatchNumber:       in.BatchNumber,
			ExpirationDate:    in.ExpirationDate,
			QuantityInitial:   in.Quantity,
			QuantityAvailable: in.Quantity,
			Location:          in.Location,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := r.Batches.Create(ctx, batch); err != nil {
			return nil, err
		}
	} else {
		if err := r.Batches.Increment(ctx, batch.ID, in.Quantity, now); err != nil {
			return nil, err
		}
		batch.QuantityAvailable += in.Quantity
		batch.UpdatedAt = now
	}

	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		ProductID:     in.ProductID,
		BatchID:       batch.ID,
		Type:          entity.MovementTypeIn,
		Quantity:      in.Quantity,
		ReferenceType: entity.ReferenceStockEntry,
		ReferenceID:   batch.ID,
		UserID:        in.UserID,
		Notes:         "Entrada de stock - lote " + batch.BatchNumber,
		CreatedAt:     now,
	}
	if err := r.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	return batch, nil
}

// ConsumeFIFO descuenta quantity unidades base de los lotes del producto, del que vence
// primero al último (sin vencimiento al final, por antigüedad). Si la suma disponible no
// alcanza falla sin tocar ningún lote.
func (l *StockLedger) ConsumeFIFO(ctx context.Context, productID string, quantity int, ref Reference, userID string) ([]Consumption, error) {
	var out []Consumption
	err := l.txRunner.Run(ctx, func(r ports.Repos) error {
		var err error
		out, err = l.ConsumeFIFOInTx(ctx, r, productID, quantity, ref, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ConsumeFIFOInTx igual que ConsumeFIFO dentro de la transacción del caller.
// Los lotes quedan bloqueados (FOR UPDATE) hasta el fin de la transacción.
func (l *StockLedger) ConsumeFIFOInTx(ctx context.Context, r ports.Repos, productID string, quantity int, ref Reference, userID string) ([]Consumption, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	batches, err := r.Batches.ListAvailableFIFO(ctx, productID, true)
	if err != nil {
		return nil, err
	}
	available := 0
	for _, b := range batches {
		available += b.QuantityAvailable
	}
	if available < quantity {
		return nil, &domain.InsufficientStockError{ProductID: productID, Required: quantity, Available: available}
	}

	now := l.clock.Now()
	remaining := quantity
	consumed := make([]Consumption, 0, len(batches))
	for _, b := range batches {
		if remaining == 0 {
			break
		}
		take := min(remaining, b.QuantityAvailable)
		if err := r.Batches.UpdateAvailable(ctx, b.ID, b.QuantityAvailable-take, now); err != nil {
			return nil, err
		}
		mov := &entity.StockMovement{
			ID:            uuid.New().String(),
			ProductID:     productID,
			BatchID:       b.ID,
			Type:          entity.MovementTypeOut,
			Quantity:      take,
			ReferenceType: ref.Type,
			ReferenceID:   ref.ID,
			UserID:        userID,
			Notes:         fmt.Sprintf("Consumo FIFO - %s #%s", ref.Type, ref.ID),
			CreatedAt:     now,
		}
		if err := r.Movements.Create(ctx, mov); err != nil {
			return nil, err
		}
		consumed = append(consumed, Consumption{
			BatchID:        b.ID,
			BatchNumber:    b.BatchNumber,
			Quantity:       take,
			ExpirationDate: b.ExpirationDate,
		})
		remaining -= take
	}
	return consumed, nil
}

// RevertByReference devuelve a cada lote lo que consumieron los movimientos out de la
// referencia y registra una reversión por movimiento. Solo revierte movimientos que aún
// no tienen reversión: una segunda llamada falla con ErrAlreadyReverted.
// cause es el tipo de referencia de las reversiones (annulment, cancellation); vacío es annulment.
func (l *StockLedger) RevertByReference(ctx context.Context, ref Reference, cause, userID string) (int, error) {
	var n int
	err := l.txRunner.Run(ctx, func(r ports.Repos) error {
		var err error
		n, err = l.RevertByReferenceInTx(ctx, r, ref, cause, userID)
		return err
	})
	return n, err
}

// RevertByReferenceInTx igual que RevertByReference dentro de la transacción del caller.
func (l *StockLedger) RevertByReferenceInTx(ctx context.Context, r ports.Repos, ref Reference, cause, userID string) (int, error) {
	if cause == "" {
		cause = entity.ReferenceAnnulment
	}
	outs, err := r.Movements.ListUnreverted(ctx, ref.Type, ref.ID)
	if err != nil {
		return 0, err
	}
	if len(outs) == 0 {
		all, err := r.Movements.ListByReference(ctx, ref.Type, ref.ID, entity.MovementTypeOut)
		if err != nil {
			return 0, err
		}
		if len(all) > 0 {
			return 0, domain.ErrAlreadyReverted
		}
		return 0, domain.ErrNothingToRevert
	}

	now := l.clock.Now()
	for _, out := range outs {
		batch, err := r.Batches.GetForUpdate(ctx, out.BatchID)
		if err != nil {
			return 0, err
		}
		if batch == nil {
			return 0, domain.Errorf(domain.ErrInvariant, "lote %s del movimiento %s no existe", out.BatchID, out.ID)
		}
		if err := r.Batches.UpdateAvailable(ctx, batch.ID, batch.QuantityAvailable+out.Quantity, now); err != nil {
			return 0, err
		}
		rev := &entity.StockMovement{
			ID:                uuid.New().String(),
			ProductID:         out.ProductID,
			BatchID:           out.BatchID,
			Type:              entity.MovementTypeReversal,
			Quantity:          out.Quantity,
			ReferenceType:     cause,
			ReferenceID:       ref.ID,
			RevertsMovementID: out.ID,
			UserID:            userID,
			Notes:             fmt.Sprintf("Reversión de %s #%s", ref.Type, ref.ID),
			CreatedAt:         now,
		}
		if err := r.Movements.Create(ctx, rev); err != nil {
			return 0, err
		}
	}
	return len(outs), nil
}

// AdjustInput corrección manual de un lote. Quantity positiva suma, negativa resta.
type AdjustInput struct {
	ProductID string
	BatchID   string
	Quantity  int
	Reason    string
	UserID    string
}

// Adjust corrige el disponible de un lote y registra un movimiento adjustment con la cantidad
// en valor absoluto.
func (l *StockLedger) Adjust(ctx context.Context, in AdjustInput) (*entity.StockMovement, error) {
	if in.Quantity == 0 {
		return nil, domain.NewError(domain.ErrInvalidInput, "el ajuste no puede ser cero")
	}
	var mov *entity.StockMovement
	err := l.txRunner.Run(ctx, func(r ports.Repos) error {
		batch, err := r.Batches.GetForUpdate(ctx, in.BatchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		if batch.ProductID != in.ProductID {
			return domain.ErrBatchMismatch
		}
		abs := in.Quantity
		if abs < 0 {
			abs = -abs
			if batch.QuantityAvailable < abs {
				return &domain.InsufficientStockError{ProductID: in.ProductID, Required: abs, Available: batch.QuantityAvailable}
			}
		}
		now := l.clock.Now()
		if err := r.Batches.UpdateAvailable(ctx, batch.ID, batch.QuantityAvailable+in.Quantity, now); err != nil {
			return err
		}
		notes := strings.TrimSpace(in.Reason)
		if notes == "" {
			notes = "Ajuste manual"
		}
		mov = &entity.StockMovement{
			ID:            uuid.New().String(),
			ProductID:     in.ProductID,
			BatchID:       batch.ID,
			Type:          entity.MovementTypeAdjustment,
			Quantity:      abs,
			Increase:      in.Quantity > 0,
			ReferenceType: entity.ReferenceAdjustment,
			ReferenceID:   batch.ID,
			UserID:        in.UserID,
			Notes:         notes,
			CreatedAt:     now,
		}
		return r.Movements.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// AvailableStock suma del disponible de todos los lotes del producto.
func (l *StockLedger) AvailableStock(ctx context.Context, productID string) (int, error) {
	var total int
	err := l.txRunner.Run(ctx, func(r ports.Repos) error {
		var err error
		total, err = r.Batches.SumAvailable(ctx, productID)
		return err
	})
	return total, err
}

// HasSufficientStock indica si hay al menos quantity unidades base disponibles.
func (l *StockLedger) HasSufficientStock(ctx context.Context, productID string, quantity int) (bool, error) {
	total, err := l.AvailableStock(ctx, productID)
	if err != nil {
		return false, err
	}
	return total >= quantity, nil
}

// BatchesFIFO lotes con disponible en el orden en que se consumirían.
func (l *StockLedger) BatchesFIFO(ctx context.Context, productID string) ([]*entity.StockBatch, error) {
	var batches []*entity.StockBatch
	err := l.txRunner.Run(ctx, func(r ports.Repos) error {
		var err error
		batches, err = r.Batches.ListAvailableFIFO(ctx, productID, false)
		return err
	})
	return batches, err
}

// Movements consulta el libro de movimientos.
func (l *StockLedger) Movements(ctx context.Context, f entity.MovementFilter) ([]*entity.StockMovement, error) {
	var movs []*entity.StockMovement
	err := l.txRunner.Run(ctx, func(r ports.Repos) error {
		var err error
		movs, err = r.Movements.List(ctx, f)
		return err
	})
	return movs, err
}
