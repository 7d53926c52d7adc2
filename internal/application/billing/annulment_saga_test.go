package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/inventory"
	"github.com/jhoicas/Ventas-api/internal/application/sales"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

func (f *fixture) invoicedSale(t *testing.T, qty int) (*entity.Sale, *entity.FiscalDocument) {
	t.Helper()
	sale := f.completedSale(t, qty, "")
	doc, err := f.fiscal.RegisterFiscalDocument(context.Background(), sale.ID, nil)
	require.NoError(t, err)
	return sale, doc
}

func TestAnnulSale_CompensatesEverything(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, "")
	sale, doc := f.invoicedSale(t, 3)

	ok, msg := f.saga.CanAnnulSale(ctx, sale.ID)
	assert.True(t, ok, msg)

	res, err := f.saga.AnnulSale(ctx, sale.ID, "mgr", "  error en el cobro  ")
	require.NoError(t, err)
	assert.Equal(t, entity.AnnulmentStatusApproved, res.Annulment.Status)
	assert.Equal(t, "error en el cobro", res.Annulment.Reason)
	require.NotNil(t, res.Annulment.ProcessedAt)
	assert.Equal(t, 1, res.RevertedBatches)
	require.NotNil(t, res.CashReversal)
	assert.Equal(t, "16.80", res.CashReversal.Amount.StringFixed(2))

	available, err := f.stock.AvailableStock(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 10, available)
	revs, err := f.stock.Movements(ctx, entity.MovementFilter{Type: entity.MovementTypeReversal})
	require.NoError(t, err)
	require.Len(t, revs, 1)
	assert.Equal(t, entity.ReferenceAnnulment, revs[0].ReferenceType)

	got, err := f.sales.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusAnnulled, got.Status)

	details, err := f.fiscal.GetDetails(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.FiscalStatusAnnulled, details.Document.Status)
	require.NotNil(t, details.Annulment)
	assert.Equal(t, res.Annulment.ID, details.Annulment.ID)

	expected, err := f.cash.CalculateExpectedClosing(ctx, f.box.ID)
	require.NoError(t, err)
	assert.Equal(t, "100.00", expected.StringFixed(2))

	ann, err := f.saga.GetDetails(ctx, res.Annulment.ID)
	require.NoError(t, err)
	assert.Equal(t, sale.ID, ann.Sale.ID)
	assert.Equal(t, doc.ID, ann.FiscalDocument.ID)
}

func TestAnnulSale_SecondAttemptFails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, "")
	sale, _ := f.invoicedSale(t, 1)

	_, err := f.saga.AnnulSale(ctx, sale.ID, "mgr", "duplicada")
	require.NoError(t, err)

	_, err = f.saga.AnnulSale(ctx, sale.ID, "mgr", "otra vez")
	assert.ErrorIs(t, err, domain.ErrAlreadyAnnulled)

	ok, msg := f.saga.CanAnnulSale(ctx, sale.ID)
	assert.False(t, ok)
	assert.Equal(t, domain.ErrAlreadyAnnulled.Error(), msg)

	available, err := f.stock.AvailableStock(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 10, available)
}

func TestAnnulSale_Preconditions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, "")

	pending, err := f.sales.CreateSale(ctx, sales.CreateSaleInput{UserID: "u1"})
	require.NoError(t, err)
	_, err = f.saga.AnnulSale(ctx, pending.ID, "mgr", "x")
	assert.ErrorIs(t, err, domain.ErrMustBeCompletedFirst)

	noDoc := f.completedSale(t, 1, "")
	_, err = f.saga.AnnulSale(ctx, noDoc.ID, "mgr", "x")
	assert.ErrorIs(t, err, domain.ErrNoFiscalDocument)

	sale, _ := f.invoicedSale(t, 1)
	_, err = f.saga.AnnulSale(ctx, sale.ID, "mgr", "   ")
	assert.ErrorIs(t, err, domain.ErrReasonRequired)

	_, err = f.saga.AnnulSale(ctx, "nope", "mgr", "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	ok, msg := f.saga.CanAnnulSale(ctx, "nope")
	assert.False(t, ok)
	assert.NotEmpty(t, msg)

	list, err := f.saga.List(ctx, entity.AnnulmentFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAnnulSale_FailureMarksRejectedAndKeepsState(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, "")
	sale, doc := f.invoicedSale(t, 2)

	// El stock ya fue devuelto por fuera: la reversión del paso compensatorio falla.
	_, err := f.stock.RevertByReference(ctx, inventory.Reference{Type: entity.ReferenceSale, ID: sale.ID}, entity.ReferenceAnnulment, "u1")
	require.NoError(t, err)

	_, err = f.saga.AnnulSale(ctx, sale.ID, "mgr", "cliente devolvió")
	require.ErrorIs(t, err, domain.ErrAlreadyReverted)

	rejected, err := f.saga.List(ctx, entity.AnnulmentFilter{Status: entity.AnnulmentStatusRejected})
	require.NoError(t, err)
	require.Len(t, rejected, 1)
	assert.NotEmpty(t, rejected[0].ErrorMessage)
	require.NotNil(t, rejected[0].ProcessedAt)

	got, err := f.sales.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCompleted, got.Status)
	details, err := f.fiscal.GetDetails(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.FiscalStatusAuthorized, details.Document.Status)

	// Un documento con anulación (aunque rechazada) no admite otra.
	_, err = f.saga.AnnulSale(ctx, sale.ID, "mgr", "reintento")
	assert.ErrorIs(t, err, domain.ErrAlreadyHasAnnulment)

	st, err := f.saga.Stats(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Total)
	assert.Equal(t, 1, st.Rejected)
	assert.True(t, st.ApprovalRate.IsZero())
}

func TestAnnulmentStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, "")
	a, _ := f.invoicedSale(t, 1)
	b, _ := f.invoicedSale(t, 1)
	c, _ := f.invoicedSale(t, 1)
	for _, s := range []*entity.Sale{a, b} {
		_, err := f.saga.AnnulSale(ctx, s.ID, "mgr", "prueba")
		require.NoError(t, err)
	}
	_, err := f.stock.RevertByReference(ctx, inventory.Reference{Type: entity.ReferenceSale, ID: c.ID}, entity.ReferenceAnnulment, "u1")
	require.NoError(t, err)
	_, err = f.saga.AnnulSale(ctx, c.ID, "mgr", "prueba")
	require.Error(t, err)

	st, err := f.saga.Stats(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Total)
	assert.Equal(t, 2, st.Approved)
	assert.Equal(t, 1, st.Rejected)
	assert.Equal(t, "66.67", st.ApprovalRate.StringFixed(2))

	pending, err := f.saga.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestAnnulments_DateRange(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, "")
	sale, _ := f.invoicedSale(t, 1)
	_, err := f.saga.AnnulSale(ctx, sale.ID, "mgr", "prueba")
	require.NoError(t, err)

	from := t0
	to := t0.Add(time.Hour)
	st, err := f.saga.Stats(ctx, &from, &to)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Total)
	assert.Equal(t, "100.00", st.ApprovalRate.StringFixed(2))
	list, err := f.saga.List(ctx, entity.AnnulmentFilter{From: &from, To: &to})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	later := t0.Add(24 * time.Hour)
	st, err = f.saga.Stats(ctx, &later, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Total)
	assert.True(t, st.ApprovalRate.IsZero())
	list, err = f.saga.List(ctx, entity.AnnulmentFilter{From: &later})
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = f.saga.Stats(ctx, &to, &from)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
