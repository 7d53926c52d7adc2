package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/inventory"
	"github.com/jhoicas/Ventas-api/internal/application/ports"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/memory"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*memory.Store, *inventory.StockLedger) {
	t.Helper()
	store := memory.NewStore()
	clock := &ports.FixedClock{T: t0, Step: time.Second}
	return store, inventory.NewStockLedger(store, clock)
}

func createProduct(t *testing.T, store *memory.Store, id string, active bool) {
	t.Helper()
	err := store.Run(context.Background(), func(r ports.Repos) error {
		return r.Products.Create(context.Background(), &entity.Product{
			ID: id, SKU: "SKU-" + id, Name: "Producto " + id, Active: active, CreatedAt: t0, UpdatedAt: t0,
		})
	})
	require.NoError(t, err)
}

func date(y int, m time.Month, d int) *time.Time {
	v := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &v
}

func TestAddStock_CreatesAndIncrementsBatch(t *testing.T) {
	ctx := context.Background()
	store, ledger := setup(t)
	createProduct(t, store, "p1", true)

	b, err := ledger.AddStock(ctx, inventory.AddStockInput{ProductID: "p1", BatchNumber: " L-1 ", Quantity: 10, ExpirationDate: date(2026, 6, 1)})
	require.NoError(t, err)
	assert.Equal(t, "L-1", b.BatchNumber)
	assert.Equal(t, 10, b.QuantityInitial)
	assert.Equal(t, 10, b.QuantityAvailable)

	b2, err := ledger.AddStock(ctx, inventory.AddStockInput{ProductID: "p1", BatchNumber: "L-1", Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, b.ID, b2.ID)
	assert.Equal(t, 15, b2.QuantityAvailable)

	total, err := ledger.AvailableStock(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 15, total)

	movs, err := ledger.Movements(ctx, entity.MovementFilter{ProductID: "p1", Type: entity.MovementTypeIn})
	require.NoError(t, err)
	assert.Len(t, movs, 2)
}

func TestAddStock_Validation(t *testing.T) {
	ctx := context.Background()
	store, ledger := setup(t)
	createProduct(t, store, "p1", true)
	createProduct(t, store, "off", false)

	tests := []struct {
		name string
		in   inventory.AddStockInput
		want error
	}{
		{"cantidad cero", inventory.AddStockInput{ProductID: "p1", BatchNumber: "L", Quantity: 0}, domain.ErrInvalidInput},
		{"sin lote", inventory.AddStockInput{ProductID: "p1", BatchNumber: "  ", Quantity: 1}, domain.ErrInvalidInput},
		{"producto inexistente", inventory.AddStockInput{ProductID: "nope", BatchNumber: "L", Quantity: 1}, domain.ErrNotFound},
		{"producto inactivo", inventory.AddStockInput{ProductID: "off", BatchNumber: "L", Quantity: 1}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ledger.AddStock(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestConsumeFIFO_EarliestExpirationFirst(t *testing.T) {
	ctx := context.Background()
	store, ledger := setup(t)
	createProduct(t, store, "p1", true)

	_, err := ledger.AddStock(ctx, inventory.AddStockInput{ProductID: "p1", BatchNumber: "SIN-FECHA", Quantity: 10})
	require.NoError(t, err)
	_, err = ledger.AddStock(ctx, inventory.AddStockInput{ProductID: "p1", BatchNumber: "TARDE", Quantity: 4, ExpirationDate: date(2026, 12, 1)})
	require.NoError(t, err)
	_, err = ledger.AddStock(ctx, inventory.AddStockInput{ProductID: "p1", BatchNumber: "PRONTO", Quantity: 3, ExpirationDate: date(2026, 4, 1)})
	require.NoError(t, err)

	got, err := ledger.ConsumeFIFO(ctx, "p1", 8, inventory.Reference{Type: entity.ReferenceSale, ID: "s1"}, "u1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "PRONTO", got[0].BatchNumber)
	assert.Equal(t, 3, got[0].Quantity)
	assert.Equal(t, "TARDE", got[1].BatchNumber)
	assert.Equal(t, 4, got[1].Quantity)
	assert.Equal(t, "SIN-FECHA", got[2].BatchNumber)
	assert.Equal(t, 1, got[2].Quantity)

	batches, err := ledger.BatchesFIFO(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, 9, batches[0].QuantityAvailable)
}

func TestConsumeFIFO_WithoutExpirationByCreation(t *testing.T) {
	ctx := context.Background()
	store, ledger := setup(t)
	createProduct(t, store, "p1", true)

	for _, n := range []string{"PRIMERO", "SEGUNDO", "TERCERO"} {
		_, err := ledger.AddStock(ctx, inventory.AddStockInput{ProductID: "p1", BatchNumber: n, Quantity: 2})
		require.NoError(t, err)
	}

	got, err := ledger.ConsumeFIFO(ctx, "p1", 3, inventory.Reference{Type: entity.ReferenceSale, ID: "s1"}, "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "PRIMERO", got[0].BatchNumber)
	assert.Equal(t, 2, got[0].Quantity)
	assert.Equal(t, "SEGUNDO", got[1].BatchNumber)
	assert.Equal(t, 1, got[1].Quantity)

	batches, err := ledger.BatchesFIFO(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, batches, 2)
	assert.Equal(t, "SEGUNDO", batches[0].BatchNumber)
	assert.Equal(t, 1, batches[0].QuantityAvailable)
	assert.Equal(t, "TERCERO", batches[1].BatchNumber)
}

func TestMovementsReconcileWithAvailable(t *testing.T) {
	ctx := context.Background()
	store, ledger := setup(t)
	createProduct(t, store, "p1", true)

	a, err := ledger.AddStock(ctx, inventory.AddStockInput{ProductID: "p1", BatchNumber: "A", Quantity: 5, ExpirationDate: date(2026, 5, 1)})
	require.NoError(t, err)
	b, err := ledger.AddStock(ctx, inventory.AddStockInput{ProductID: "p1", BatchNumber: "B", Quantity: 4, ExpirationDate: date(2026, 8, 1)})
	require.NoError(t, err)
	_, err = ledger.AddStock(ctx, inventory.AddStockInput{ProductID: "p1", BatchNumber: "A", Quantity: 3})
	require.NoError(t, err)

	ref1 := inventory.Reference{Type: entity.ReferenceSale, ID: "s1"}
	_, err = ledger.ConsumeFIFO(ctx, "p1", 10, ref1, "u1")
	require.NoError(t, err)
	_, err = ledger.ConsumeFIFO(ctx, "p1", 1, inventory.Reference{Type: entity.ReferenceSale, ID: "s2"}, "u1")
	require.NoError(t, err)
	_, err = ledger.Adjust(ctx, inventory.AdjustInput{ProductID: "p1", BatchID: a.ID, Quantity: 2, Reason: "conteo"})
	require.NoError(t, err)
	_, err = ledger.Adjust(ctx, inventory.AdjustInput{ProductID: "p1", BatchID: b.ID, Quantity: -1, Reason: "merma"})
	require.NoError(t, err)
	_, err = ledger.RevertByReference(ctx, ref1, entity.ReferenceAnnulment, "u2")
	require.NoError(t, err)

	for _, id := range []string{a.ID, b.ID} {
		movs, err := ledger.Movements(ctx, entity.MovementFilter{BatchID: id})
		require.NoError(t, err)
		sum := 0
		for _, m := range movs {
			sum += m.SignedQuantity()
		}
		var batch *entity.StockBatch
		err = store.Run(ctx, func(r ports.Repos) error {
			var err error
			batch, err = r.Batches.GetByID(ctx, id)
			return err
		})
		require.NoError(t, err)
		require.NotNil(t, batch)
		assert.Equal(t, batch.QuantityAvailable, sum, "lote %s", batch.BatchNumber)
		assert.GreaterOrEqual(t, batch.QuantityAvailable, 0)
	}

	total, err := ledger.AvailableStock(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 5+4+3-1+2-1, total)
}

func TestConsumeFIFO_InsufficientLeavesBatchesUntouched(t *testing.T) {
	ctx := context.Background()
	store, ledger := setup(t)
	createProduct(t, store, "p1", true)
	_, err := ledger.AddStock(ctx, inventory.AddStockInput{ProductID: "p1", BatchNumber: "A", Quantity: 2})
	require.NoError(t, err)
	_, err = ledger.AddStock(ctx, inventory.AddStockInput{ProductID: "p1", BatchNumber: "B", Quantity: 3})
	require.NoError(t, err)

	_, err = ledger.ConsumeFIFO(ctx, "p1", 6, inventory.Reference{Type: entity.ReferenceSale, ID: "s1"}, "u1")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	var ise *domain.InsufficientStockError
	require.ErrorAs(t, err, &ise)
	assert.Equal(t, 6, ise.Required)
	assert.Equal(t, 5, ise.Available)

	total, err := ledger.AvailableStock(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, total)

	ok, err := ledger.HasSufficientStock(ctx, "p1", 5)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = ledger.HasSufficientStock(ctx, "p1", 6)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConsumeFIFO_NoStockMessage(t *testing.T) {
	store, ledger := setup(t)
	createProduct(t, store, "p1", true)
	_, err := ledger.ConsumeFIFO(context.Background(), "p1", 1, inventory.Reference{Type: entity.ReferenceSale, ID: "s1"}, "u1")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Sin existencias")
}

func TestRevertByReference_RestoresAndIsNotReentrant(t *testing.T) {
	ctx := context.Background()
	store, ledger := setup(t)
	createProduct(t, store, "p1", true)
	_, err := ledger.AddStock(ctx, inventory.AddStockInput{ProductID: "p1", BatchNumber: "A", Quantity: 2, ExpirationDate: date(2026, 5, 1)})
	require.NoError(t, err)
	_, err = ledger.AddStock(ctx, inventory.AddStockInput{ProductID: "p1", BatchNumber: "B", Quantity: 5, ExpirationDate: date(2026, 9, 1)})
	require.NoError(t, err)

	ref := inventory.Reference{Type: entity.ReferenceSale, ID: "s1"}
	_, err = ledger.ConsumeFIFO(ctx, "p1", 4, ref, "u1")
	require.NoError(t, err)

	n, err := ledger.RevertByReference(ctx, ref, entity.ReferenceAnnulment, "u2")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	total, err := ledger.AvailableStock(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 7, total)

	revs, err := ledger.Movements(ctx, entity.MovementFilter{Type: entity.MovementTypeReversal})
	require.NoError(t, err)
	require.Len(t, revs, 2)
	for _, m := range revs {
		assert.NotEmpty(t, m.RevertsMovementID)
		assert.Equal(t, entity.ReferenceAnnulment, m.ReferenceType)
	}

	_, err = ledger.RevertByReference(ctx, ref, entity.ReferenceAnnulment, "u2")
	assert.ErrorIs(t, err, domain.ErrAlreadyReverted)

	total, err = ledger.AvailableStock(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 7, total)
}

func TestRevertByReference_NothingToRevert(t *testing.T) {
	_, ledger := setup(t)
	_, err := ledger.RevertByReference(context.Background(), inventory.Reference{Type: entity.ReferenceSale, ID: "none"}, "", "u1")
	assert.ErrorIs(t, err, domain.ErrNothingToRevert)
}

func TestAdjust(t *testing.T) {
	ctx := context.Background()
	store, ledger := setup(t)
	createProduct(t, store, "p1", true)
	createProduct(t, store, "p2", true)
	b, err := ledger.AddStock(ctx, inventory.AddStockInput{ProductID: "p1", BatchNumber: "A", Quantity: 5})
	require.NoError(t, err)

	mov, err := ledger.Adjust(ctx, inventory.AdjustInput{ProductID: "p1", BatchID: b.ID, Quantity: -2, Reason: "merma"})
	require.NoError(t, err)
	assert.Equal(t, 2, mov.Quantity)
	assert.False(t, mov.Increase)
	assert.Equal(t, "merma", mov.Notes)

	mov, err = ledger.Adjust(ctx, inventory.AdjustInput{ProductID: "p1", BatchID: b.ID, Quantity: 4})
	require.NoError(t, err)
	assert.True(t, mov.Increase)
	assert.Equal(t, "Ajuste manual", mov.Notes)

	total, err := ledger.AvailableStock(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 7, total)

	_, err = ledger.Adjust(ctx, inventory.AdjustInput{ProductID: "p1", BatchID: b.ID, Quantity: -8})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	_, err = ledger.Adjust(ctx, inventory.AdjustInput{ProductID: "p2", BatchID: b.ID, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrBatchMismatch)
	_, err = ledger.Adjust(ctx, inventory.AdjustInput{ProductID: "p1", BatchID: "nope", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = ledger.Adjust(ctx, inventory.AdjustInput{ProductID: "p1", BatchID: b.ID, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
