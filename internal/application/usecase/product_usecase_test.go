package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/ports"
	"github.com/jhoicas/Ventas-api/internal/application/usecase"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/memory"
)

func newProductUC() *usecase.ProductUseCase {
	clock := &ports.FixedClock{T: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), Step: time.Second}
	return usecase.NewProductUseCase(memory.NewStore(), clock)
}

func TestProductUseCase_CreateAndPresentations(t *testing.T) {
	ctx := context.Background()
	uc := newProductUC()

	p, err := uc.Create(ctx, dto.CreateProductRequest{SKU: " COCA-350 ", Name: "Coca Cola 350ml"})
	require.NoError(t, err)
	assert.Equal(t, "COCA-350", p.SKU)
	assert.True(t, p.Active)

	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "COCA-350", Name: "Otra"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	pres, err := uc.AddPresentation(ctx, p.ID, dto.CreatePresentationRequest{Name: "Caja x12", Factor: 12, Price: decimal.RequireFromString("55.004")})
	require.NoError(t, err)
	assert.Equal(t, 12, pres.Factor)
	assert.Equal(t, "55.00", pres.Price.StringFixed(2))

	_, err = uc.AddPresentation(ctx, p.ID, dto.CreatePresentationRequest{Name: "Cero", Factor: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.AddPresentation(ctx, p.ID, dto.CreatePresentationRequest{Name: "Negativo", Factor: 1, Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.AddPresentation(ctx, "nope", dto.CreatePresentationRequest{Name: "U", Factor: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.Presentations(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	_, err = uc.Presentations(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := uc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.Presentations, 1)
	assert.Zero(t, got.AvailableStock)

	missing, err := uc.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProductUseCase_SearchAndActive(t *testing.T) {
	ctx := context.Background()
	uc := newProductUC()
	coca, err := uc.Create(ctx, dto.CreateProductRequest{SKU: "BEB-001", Name: "Coca Cola 350ml"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "ABA-001", Name: "Frijol negro"})
	require.NoError(t, err)

	found, err := uc.Search(ctx, "COLA")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, coca.ID, found[0].ID)

	found, err = uc.Search(ctx, "aba-")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	require.NoError(t, uc.SetActive(ctx, coca.ID, false))
	found, err = uc.Search(ctx, "cola")
	require.NoError(t, err)
	assert.Empty(t, found)

	active, err := uc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, active, 1)
	all, err := uc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	assert.ErrorIs(t, uc.SetActive(ctx, "nope", true), domain.ErrNotFound)
}
