package postgres_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/billing"
	"github.com/jhoicas/Ventas-api/internal/application/cashbox"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/inventory"
	"github.com/jhoicas/Ventas-api/internal/application/ports"
	"github.com/jhoicas/Ventas-api/internal/application/sales"
	"github.com/jhoicas/Ventas-api/internal/application/usecase"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/fel"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Ventas-api/pkg/config"
)

// setupTestDB usa una base dedicada (TEST_DATABASE_URL); sin ella los tests se omiten.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load("../../../.env")

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL no definido: se omite el test de integración")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dbURL})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = postgres.ApplyMigrations(ctx, pool, "../../../migrations")
	require.NoError(t, err)
	require.NoError(t, postgres.TruncateAll(ctx, pool))
	return pool
}

type env struct {
	tx       *postgres.TxRunner
	products *usecase.ProductUseCase
	stock    *inventory.StockLedger
	cash     *cashbox.Ledger
	sales    *sales.Ledger
	fiscal   *billing.FiscalLedger
	saga     *billing.AnnulmentSaga
}

func newEnv(pool *pgxpool.Pool) *env {
	clock := ports.SystemClock{}
	e := &env{tx: postgres.NewTxRunner(pool)}
	e.products = usecase.NewProductUseCase(e.tx, clock)
	e.stock = inventory.NewStockLedger(e.tx, clock)
	e.cash = cashbox.NewLedger(e.tx, clock)
	e.sales = sales.NewLedger(e.tx, e.stock, e.cash, clock, entity.DefaultTaxRate)
	e.fiscal = billing.NewFiscalLedger(e.tx, fel.NewSimulatedCertifier(nil, nil, clock), nil, clock,
		billing.FiscalConfig{Seller: billing.Seller{NIT: "12345679", Name: "Tienda Demo S.A."}}, nil)
	e.saga = billing.NewAnnulmentSaga(e.tx, e.stock, e.fiscal, e.sales, e.cash, clock, nil)
	return e
}

func (e *env) product(t *testing.T, units int) (productID, presentationID string) {
	t.Helper()
	ctx := context.Background()
	p, err := e.products.Create(ctx, dto.CreateProductRequest{SKU: "COCA-350", Name: "Coca Cola 350ml"})
	require.NoError(t, err)
	pres, err := e.products.AddPresentation(ctx, p.ID, dto.CreatePresentationRequest{Name: "Unidad", Factor: 1, Price: decimal.RequireFromString("5.00")})
	require.NoError(t, err)
	exp := time.Now().AddDate(1, 0, 0).Truncate(24 * time.Hour)
	_, err = e.stock.AddStock(ctx, inventory.AddStockInput{ProductID: p.ID, BatchNumber: "L-001", Quantity: units, ExpirationDate: &exp})
	require.NoError(t, err)
	return p.ID, pres.ID
}

func TestIntegration_SaleInvoiceAnnulment(t *testing.T) {
	pool := setupTestDB(t)
	e := newEnv(pool)
	ctx := context.Background()
	productID, presID := e.product(t, 10)

	box, err := e.cash.OpenCashBox(ctx, "u1", decimal.NewFromInt(100), "")
	require.NoError(t, err)

	sale, err := e.sales.CreateSale(ctx, sales.CreateSaleInput{UserID: "u1"})
	require.NoError(t, err)
	_, err = e.sales.AddItem(ctx, sale.ID, sales.AddItemInput{ProductID: productID, PresentationID: presID, Quantity: 3})
	require.NoError(t, err)
	sale, err = e.sales.ConfirmSale(ctx, sale.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, "16.80", sale.Total.StringFixed(2))

	available, err := e.stock.AvailableStock(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 7, available)

	doc, err := e.fiscal.RegisterFiscalDocument(ctx, sale.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.FiscalStatusAuthorized, doc.Status)

	res, err := e.saga.AnnulSale(ctx, sale.ID, "mgr", "error de cobro")
	require.NoError(t, err)
	assert.Equal(t, entity.AnnulmentStatusApproved, res.Annulment.Status)

	available, err = e.stock.AvailableStock(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 10, available)

	expected, err := e.cash.CalculateExpectedClosing(ctx, box.ID)
	require.NoError(t, err)
	assert.Equal(t, "100.00", expected.StringFixed(2))

	_, err = e.stock.RevertByReference(ctx, inventory.Reference{Type: entity.ReferenceSale, ID: sale.ID}, entity.ReferenceAnnulment, "mgr")
	assert.ErrorIs(t, err, domain.ErrAlreadyReverted)
}

func TestIntegration_ConcurrentOpenCashBox(t *testing.T) {
	pool := setupTestDB(t)
	e := newEnv(pool)
	ctx := context.Background()

	const n = 5
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		opened int
		errs   []error
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.cash.OpenCashBox(ctx, "u1", decimal.NewFromInt(10), "")
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				opened++
				return
			}
			errs = append(errs, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, opened)
	for _, err := range errs {
		assert.True(t, errors.Is(err, domain.ErrCashBoxAlreadyOpen), err.Error())
	}
}

func TestIntegration_ConcurrentConsumeNeverOversells(t *testing.T) {
	pool := setupTestDB(t)
	e := newEnv(pool)
	ctx := context.Background()
	productID, _ := e.product(t, 10)

	const n = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		sold int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ref := inventory.Reference{Type: entity.ReferenceSale, ID: "concurrent-" + string(rune('a'+i))}
			if _, err := e.stock.ConsumeFIFO(ctx, productID, 3, ref, "u1"); err == nil {
				mu.Lock()
				sold += 3
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, domain.ErrInsufficientStock)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 9, sold)
	available, err := e.stock.AvailableStock(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 1, available)
}
