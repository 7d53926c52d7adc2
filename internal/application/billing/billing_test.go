package billing_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/billing"
	"github.com/jhoicas/Ventas-api/internal/application/cashbox"
	"github.com/jhoicas/Ventas-api/internal/application/inventory"
	"github.com/jhoicas/Ventas-api/internal/application/ports"
	"github.com/jhoicas/Ventas-api/internal/application/sales"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/memory"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type fakeCertifier struct {
	calls atomic.Int32
	err   error
	last  billing.InvoicePayload
}

func (c *fakeCertifier) Sign(_ context.Context, p billing.InvoicePayload) (*billing.CertifiedDocument, error) {
	n := c.calls.Add(1)
	c.last = p
	if c.err != nil {
		return nil, c.err
	}
	return &billing.CertifiedDocument{
		UUID:           "UUID-" + p.SaleID,
		Serie:          "A1B2C3D4",
		Number:         decimal.NewFromInt(int64(n)).String(),
		SignedDocument: "<dte/>",
	}, nil
}

type fakePDF struct{ err error }

func (g fakePDF) GenerateFiscalPDF(_ context.Context, _ *entity.FiscalDocument, _ billing.InvoicePayload) ([]byte, error) {
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

type fixture struct {
	store  *memory.Store
	stock  *inventory.StockLedger
	cash   *cashbox.Ledger
	sales  *sales.Ledger
	fiscal *billing.FiscalLedger
	saga   *billing.AnnulmentSaga
	cert   *fakeCertifier
	box    *entity.CashBox
}

func newFixture(t *testing.T, pdf billing.FiscalPDFGenerator, pdfDir string) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	clock := &ports.FixedClock{T: t0, Step: time.Second}
	f := &fixture{store: store, cert: &fakeCertifier{}}
	f.stock = inventory.NewStockLedger(store, clock)
	f.cash = cashbox.NewLedger(store, clock)
	f.sales = sales.NewLedger(store, f.stock, f.cash, clock, entity.DefaultTaxRate)
	f.fiscal = billing.NewFiscalLedger(store, f.cert, pdf, clock, billing.FiscalConfig{
		Seller: billing.Seller{NIT: "12345679", Name: "Tienda Demo S.A."},
		PDFDir: pdfDir,
	}, nil)
	f.saga = billing.NewAnnulmentSaga(store, f.stock, f.fiscal, f.sales, f.cash, clock, nil)

	err := store.Run(ctx, func(r ports.Repos) error {
		if err := r.Products.Create(ctx, &entity.Product{ID: "p1", SKU: "COCA-350", Name: "Coca Cola 350ml", Active: true}); err != nil {
			return err
		}
		return r.Products.CreatePresentation(ctx, &entity.Presentation{
			ID: "unit", ProductID: "p1", Name: "Unidad", Factor: 1, Price: decimal.RequireFromString("5.00"), Active: true,
		})
	})
	require.NoError(t, err)
	_, err = f.stock.AddStock(ctx, inventory.AddStockInput{ProductID: "p1", BatchNumber: "L-001", Quantity: 10})
	require.NoError(t, err)
	f.box, err = f.cash.OpenCashBox(ctx, "u1", decimal.NewFromInt(100), "")
	require.NoError(t, err)
	return f
}

// completedSale venta confirmada de qty unidades a 5.00 + IVA.
func (f *fixture) completedSale(t *testing.T, qty int, nit string) *entity.Sale {
	t.Helper()
	ctx := context.Background()
	sale, err := f.sales.CreateSale(ctx, sales.CreateSaleInput{UserID: "u1", CustomerNIT: nit, CustomerName: "Cliente"})
	require.NoError(t, err)
	_, err = f.sales.AddItem(ctx, sale.ID, sales.AddItemInput{ProductID: "p1", PresentationID: "unit", Quantity: qty})
	require.NoError(t, err)
	sale, err = f.sales.ConfirmSale(ctx, sale.ID, "u1")
	require.NoError(t, err)
	return sale
}

func TestRegisterFiscalDocument(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, "")
	sale := f.completedSale(t, 3, "")

	doc, err := f.fiscal.RegisterFiscalDocument(ctx, sale.ID, map[string]string{"orden": "42"})
	require.NoError(t, err)
	assert.Equal(t, entity.FiscalStatusAuthorized, doc.Status)
	assert.Equal(t, "UUID-"+sale.ID, doc.UUID)
	assert.Equal(t, "FACT", doc.DocumentType)
	assert.Equal(t, "42", doc.AdditionalData["orden"])
	require.NotNil(t, doc.CertifiedAt)

	p := f.cert.last
	assert.Equal(t, "CF", p.Buyer.NIT)
	assert.Equal(t, entity.DefaultCustomerName, p.Buyer.Name)
	assert.Equal(t, "GTQ", p.Currency)
	require.Len(t, p.Lines, 1)
	assert.Equal(t, "Coca Cola 350ml - Unidad", p.Lines[0].Description)
	assert.Equal(t, "1.80", p.Lines[0].TaxAmount.StringFixed(2))
	assert.Equal(t, "16.80", p.Total.StringFixed(2))

	_, err = f.fiscal.RegisterFiscalDocument(ctx, sale.ID, nil)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, int32(1), f.cert.calls.Load())

	s, err := f.sales.Summary(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.FiscalStatusAuthorized, s.FiscalStatus)
	assert.Equal(t, doc.UUID, s.FiscalUUID)
}

func TestRegisterFiscalDocument_BuyerNIT(t *testing.T) {
	f := newFixture(t, nil, "")
	sale := f.completedSale(t, 1, "1234567-9")
	_, err := f.fiscal.RegisterFiscalDocument(context.Background(), sale.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "12345679", f.cert.last.Buyer.NIT)
	assert.Equal(t, "Cliente", f.cert.last.Buyer.Name)
}

func TestRegisterFiscalDocument_Preconditions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, "")

	pending, err := f.sales.CreateSale(ctx, sales.CreateSaleInput{UserID: "u1"})
	require.NoError(t, err)
	_, err = f.fiscal.RegisterFiscalDocument(ctx, pending.ID, nil)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.fiscal.RegisterFiscalDocument(ctx, "nope", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	bad := f.completedSale(t, 1, "1234567-0")
	_, err = f.fiscal.RegisterFiscalDocument(ctx, bad.ID, nil)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "NIT del receptor")
	assert.Zero(t, f.cert.calls.Load())
}

func TestRegisterFiscalDocument_CertifierFailureCreatesNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, "")
	f.cert.err = errors.New("timeout del certificador")
	sale := f.completedSale(t, 1, "")

	_, err := f.fiscal.RegisterFiscalDocument(ctx, sale.ID, nil)
	require.ErrorIs(t, err, domain.ErrExternalService)

	doc, err := f.fiscal.GetBySale(ctx, sale.ID)
	require.NoError(t, err)
	assert.Nil(t, doc)

	f.cert.err = nil
	_, err = f.fiscal.RegisterFiscalDocument(ctx, sale.ID, nil)
	require.NoError(t, err)
}

func TestRegisterFiscalDocument_StoresPDF(t *testing.T) {
	dir := t.TempDir()
	f := newFixture(t, fakePDF{}, dir)
	sale := f.completedSale(t, 1, "")

	doc, err := f.fiscal.RegisterFiscalDocument(context.Background(), sale.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, doc.UUID+".pdf"), doc.PDFRef)
	data, err := os.ReadFile(doc.PDFRef)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(data))
}

func TestRegisterFiscalDocument_PDFFailureIsNotFatal(t *testing.T) {
	f := newFixture(t, fakePDF{err: errors.New("fuente no disponible")}, t.TempDir())
	sale := f.completedSale(t, 1, "")

	doc, err := f.fiscal.RegisterFiscalDocument(context.Background(), sale.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, doc.PDFRef)
	assert.Equal(t, entity.FiscalStatusAuthorized, doc.Status)
}

func TestPDF(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fakePDF{}, "")
	sale := f.completedSale(t, 1, "")
	doc, err := f.fiscal.RegisterFiscalDocument(ctx, sale.ID, nil)
	require.NoError(t, err)

	data, name, err := f.fiscal.PDF(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "A1B2C3D4-"+doc.Number+".pdf", name)
	assert.NotEmpty(t, data)

	noPDF := newFixture(t, nil, "")
	_, _, err = noPDF.fiscal.PDF(ctx, doc.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMarkAsRejectedAndAnnulled(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, "")
	doc, err := f.fiscal.RegisterFiscalDocument(ctx, f.completedSale(t, 1, "").ID, nil)
	require.NoError(t, err)

	annulled, err := f.fiscal.MarkAsAnnulled(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.FiscalStatusAnnulled, annulled.Status)
	require.NotNil(t, annulled.AnnulledAt)

	_, err = f.fiscal.MarkAsAnnulled(ctx, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)
	_, err = f.fiscal.MarkAsRejected(ctx, doc.ID, "x")
	assert.ErrorIs(t, err, domain.ErrDocumentAlreadyAnnulled)

	other, err := f.fiscal.RegisterFiscalDocument(ctx, f.completedSale(t, 1, "").ID, nil)
	require.NoError(t, err)
	rejected, err := f.fiscal.MarkAsRejected(ctx, other.ID, "NIT inválido en SAT")
	require.NoError(t, err)
	assert.Equal(t, "NIT inválido en SAT", rejected.RejectionReason)
	_, err = f.fiscal.MarkAsRejected(ctx, other.ID, "otra vez")
	assert.ErrorIs(t, err, domain.ErrDocumentAlreadyRejected)

	list, err := f.fiscal.List(ctx, entity.FiscalDocumentFilter{Status: entity.FiscalStatusRejected})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, other.ID, list[0].ID)
}

func TestFiscalStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, "")
	for i := 0; i < 3; i++ {
		_, err := f.fiscal.RegisterFiscalDocument(ctx, f.completedSale(t, 1, "").ID, nil)
		require.NoError(t, err)
	}
	docs, err := f.fiscal.List(ctx, entity.FiscalDocumentFilter{})
	require.NoError(t, err)
	require.Len(t, docs, 3)
	_, err = f.fiscal.MarkAsAnnulled(ctx, docs[0].ID)
	require.NoError(t, err)
	_, err = f.fiscal.MarkAsRejected(ctx, docs[1].ID, "NIT inválido en SAT")
	require.NoError(t, err)

	st, err := f.fiscal.Stats(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Total)
	assert.Equal(t, 1, st.Authorized)
	assert.Equal(t, 1, st.Annulled)
	assert.Equal(t, 1, st.Rejected)
	assert.Equal(t, "33.33", st.SuccessRate.StringFixed(2))

	later := t0.Add(24 * time.Hour)
	st, err = f.fiscal.Stats(ctx, &later, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Total)
	assert.True(t, st.SuccessRate.IsZero())

	_, err = f.fiscal.Stats(ctx, &later, &t0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCancelSale_RefusesInvoicedSale(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, "")
	sale := f.completedSale(t, 1, "")
	_, err := f.fiscal.RegisterFiscalDocument(ctx, sale.ID, nil)
	require.NoError(t, err)

	_, err = f.sales.CancelSale(ctx, sale.ID, "u1")
	assert.ErrorIs(t, err, domain.ErrCannotCancelInvoiced)
}
