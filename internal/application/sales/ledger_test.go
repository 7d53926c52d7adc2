package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/cashbox"
	"github.com/jhoicas/Ventas-api/internal/application/inventory"
	"github.com/jhoicas/Ventas-api/internal/application/ports"
	"github.com/jhoicas/Ventas-api/internal/application/sales"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/memory"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	store  *memory.Store
	stock  *inventory.StockLedger
	cash   *cashbox.Ledger
	ledger *sales.Ledger
}

func newFixture(t *testing.T, units int) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	clock := &ports.FixedClock{T: t0, Step: time.Second}
	f := &fixture{store: store, stock: inventory.NewStockLedger(store, clock), cash: cashbox.NewLedger(store, clock)}
	f.ledger = sales.NewLedger(store, f.stock, f.cash, clock, entity.DefaultTaxRate)

	err := store.Run(ctx, func(r ports.Repos) error {
		if err := r.Products.Create(ctx, &entity.Product{ID: "p1", SKU: "COCA-350", Name: "Coca Cola 350ml", Active: true, CreatedAt: t0, UpdatedAt: t0}); err != nil {
			return err
		}
		if err := r.Products.Create(ctx, &entity.Product{ID: "p2", SKU: "AGUA", Name: "Agua", Active: true, CreatedAt: t0, UpdatedAt: t0}); err != nil {
			return err
		}
		for _, p := range []*entity.Presentation{
			{ID: "unit", ProductID: "p1", Name: "Unidad", Factor: 1, Price: decimal.RequireFromString("5.00"), Active: true},
			{ID: "box", ProductID: "p1", Name: "Caja x12", Factor: 12, Price: decimal.RequireFromString("55.00"), Active: true},
			{ID: "agua", ProductID: "p2", Name: "Unidad", Factor: 1, Price: decimal.RequireFromString("3.00"), Active: true},
		} {
			if err := r.Products.CreatePresentation(ctx, p); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
	if units > 0 {
		_, err = f.stock.AddStock(ctx, inventory.AddStockInput{ProductID: "p1", BatchNumber: "L-001", Quantity: units})
		require.NoError(t, err)
	}
	return f
}

func (f *fixture) openBox(t *testing.T) *entity.CashBox {
	t.Helper()
	box, err := f.cash.OpenCashBox(context.Background(), "u1", decimal.NewFromInt(100), "")
	require.NoError(t, err)
	return box
}

func TestCreateSale_Defaults(t *testing.T) {
	f := newFixture(t, 0)
	sale, err := f.ledger.CreateSale(context.Background(), sales.CreateSaleInput{UserID: "u1", CustomerNIT: " cf "})
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusPending, sale.Status)
	assert.Equal(t, entity.DefaultCustomerName, sale.CustomerName)
	assert.Equal(t, "CF", sale.CustomerNIT)
	assert.Equal(t, "u1", sale.CashierID)
	assert.True(t, sale.Total.IsZero())

	_, err = f.ledger.CreateSale(context.Background(), sales.CreateSaleInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestItems_TotalsFollowItems(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 30)
	sale, err := f.ledger.CreateSale(ctx, sales.CreateSaleInput{UserID: "u1"})
	require.NoError(t, err)

	item, err := f.ledger.AddItem(ctx, sale.ID, sales.AddItemInput{ProductID: "p1", PresentationID: "unit", Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, "15.00", item.Total.StringFixed(2))
	boxItem, err := f.ledger.AddItem(ctx, sale.ID, sales.AddItemInput{ProductID: "p1", PresentationID: "box", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 12, boxItem.BaseUnits())

	s, err := f.ledger.Summary(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, "70.00", s.Sale.Subtotal.StringFixed(2))
	assert.Equal(t, "8.40", s.Sale.Tax.StringFixed(2))
	assert.Equal(t, "78.40", s.Sale.Total.StringFixed(2))
	assert.Equal(t, 2, s.ItemsCount)
	assert.Equal(t, 4, s.TotalUnits)

	_, err = f.ledger.UpdateItemQuantity(ctx, item.ID, 5)
	require.NoError(t, err)
	after, err := f.ledger.RemoveItem(ctx, boxItem.ID)
	require.NoError(t, err)
	assert.Equal(t, "25.00", after.Subtotal.StringFixed(2))
	assert.Equal(t, "28.00", after.Total.StringFixed(2))

	// Agregar no consume stock.
	available, err := f.stock.AvailableStock(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 30, available)
}

func TestAddItem_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 5)
	sale, err := f.ledger.CreateSale(ctx, sales.CreateSaleInput{UserID: "u1"})
	require.NoError(t, err)

	tests := []struct {
		name string
		in   sales.AddItemInput
		want error
	}{
		{"cantidad cero", sales.AddItemInput{ProductID: "p1", PresentationID: "unit", Quantity: 0}, domain.ErrInvalidInput},
		{"presentación ajena", sales.AddItemInput{ProductID: "p1", PresentationID: "agua", Quantity: 1}, domain.ErrInvalidInput},
		{"caja sin stock suficiente", sales.AddItemInput{ProductID: "p1", PresentationID: "box", Quantity: 1}, domain.ErrInsufficientStock},
		{"producto inexistente", sales.AddItemInput{ProductID: "nope", PresentationID: "unit", Quantity: 1}, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.ledger.AddItem(ctx, sale.ID, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestConfirmSale_ConsumesStockAndRegistersIncome(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 10)
	box := f.openBox(t)
	sale, err := f.ledger.CreateSale(ctx, sales.CreateSaleInput{UserID: "u1"})
	require.NoError(t, err)
	_, err = f.ledger.AddItem(ctx, sale.ID, sales.AddItemInput{ProductID: "p1", PresentationID: "unit", Quantity: 3})
	require.NoError(t, err)

	done, err := f.ledger.ConfirmSale(ctx, sale.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)

	available, err := f.stock.AvailableStock(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 7, available)

	movs, err := f.cash.Movements(ctx, box.ID, entity.CashMovementFilter{})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.CashMovementIncome, movs[0].Type)
	assert.Equal(t, "16.80", movs[0].Amount.StringFixed(2))
	assert.Equal(t, sale.ID, movs[0].SaleID)

	_, err = f.ledger.AddItem(ctx, sale.ID, sales.AddItemInput{ProductID: "p1", PresentationID: "unit", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrSaleNotPending)
	_, err = f.ledger.ConfirmSale(ctx, sale.ID, "u1")
	assert.ErrorIs(t, err, domain.ErrSaleNotPending)
}

func TestConfirmSale_AllOrNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 10)
	_, err := f.stock.AddStock(ctx, inventory.AddStockInput{ProductID: "p2", BatchNumber: "A-1", Quantity: 2})
	require.NoError(t, err)
	box := f.openBox(t)

	sale, err := f.ledger.CreateSale(ctx, sales.CreateSaleInput{UserID: "u1"})
	require.NoError(t, err)
	_, err = f.ledger.AddItem(ctx, sale.ID, sales.AddItemInput{ProductID: "p1", PresentationID: "unit", Quantity: 4})
	require.NoError(t, err)
	_, err = f.ledger.AddItem(ctx, sale.ID, sales.AddItemInput{ProductID: "p2", PresentationID: "agua", Quantity: 2})
	require.NoError(t, err)

	// Otra salida deja a p2 sin stock entre el alta del item y la confirmación.
	_, err = f.stock.ConsumeFIFO(ctx, "p2", 2, inventory.Reference{Type: entity.ReferenceAdjustment, ID: "x"}, "u9")
	require.NoError(t, err)

	_, err = f.ledger.ConfirmSale(ctx, sale.ID, "u1")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	available, err := f.stock.AvailableStock(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 10, available)
	got, err := f.ledger.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusPending, got.Status)
	movs, err := f.cash.Movements(ctx, box.ID, entity.CashMovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestConfirmSale_Preconditions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 10)
	sale, err := f.ledger.CreateSale(ctx, sales.CreateSaleInput{UserID: "u1"})
	require.NoError(t, err)

	f.openBox(t)
	_, err = f.ledger.ConfirmSale(ctx, sale.ID, "u1")
	assert.ErrorIs(t, err, domain.ErrEmptySale)

	other := newFixture(t, 10)
	s2, err := other.ledger.CreateSale(ctx, sales.CreateSaleInput{UserID: "u1"})
	require.NoError(t, err)
	_, err = other.ledger.AddItem(ctx, s2.ID, sales.AddItemInput{ProductID: "p1", PresentationID: "unit", Quantity: 1})
	require.NoError(t, err)
	_, err = other.ledger.ConfirmSale(ctx, s2.ID, "u1")
	assert.ErrorIs(t, err, domain.ErrCashBoxClosed)

	_, err = f.ledger.ConfirmSale(ctx, "nope", "u1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancelSale(t *testing.T) {
	ctx := context.Background()

	t.Run("pendiente", func(t *testing.T) {
		f := newFixture(t, 10)
		sale, err := f.ledger.CreateSale(ctx, sales.CreateSaleInput{UserID: "u1"})
		require.NoError(t, err)
		got, err := f.ledger.CancelSale(ctx, sale.ID, "u1")
		require.NoError(t, err)
		assert.Equal(t, entity.SaleStatusAnnulled, got.Status)

		_, err = f.ledger.CancelSale(ctx, sale.ID, "u1")
		assert.ErrorIs(t, err, domain.ErrAlreadyAnnulled)
	})

	t.Run("completada sin factura revierte stock y caja", func(t *testing.T) {
		f := newFixture(t, 10)
		box := f.openBox(t)
		sale, err := f.ledger.CreateSale(ctx, sales.CreateSaleInput{UserID: "u1"})
		require.NoError(t, err)
		_, err = f.ledger.AddItem(ctx, sale.ID, sales.AddItemInput{ProductID: "p1", PresentationID: "unit", Quantity: 2})
		require.NoError(t, err)
		_, err = f.ledger.ConfirmSale(ctx, sale.ID, "u1")
		require.NoError(t, err)

		_, err = f.ledger.CancelSale(ctx, sale.ID, "u2")
		require.NoError(t, err)

		available, err := f.stock.AvailableStock(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, 10, available)
		revs, err := f.stock.Movements(ctx, entity.MovementFilter{Type: entity.MovementTypeReversal})
		require.NoError(t, err)
		require.NotEmpty(t, revs)
		for _, m := range revs {
			assert.Equal(t, entity.ReferenceCancellation, m.ReferenceType)
			assert.Equal(t, sale.ID, m.ReferenceID)
		}
		expected, err := f.cash.CalculateExpectedClosing(ctx, box.ID)
		require.NoError(t, err)
		assert.Equal(t, "100.00", expected.StringFixed(2))
	})
}

func TestPendingAndList(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 10)
	_, err := f.ledger.CreateSale(ctx, sales.CreateSaleInput{UserID: "u1"})
	require.NoError(t, err)
	_, err = f.ledger.CreateSale(ctx, sales.CreateSaleInput{UserID: "u2"})
	require.NoError(t, err)

	mine, err := f.ledger.Pending(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	all, err := f.ledger.Pending(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	listed, err := f.ledger.List(ctx, entity.SaleFilter{Status: entity.SaleStatusCompleted})
	require.NoError(t, err)
	assert.Empty(t, listed)
}
