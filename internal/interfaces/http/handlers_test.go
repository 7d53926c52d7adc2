package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/auth"
	"github.com/jhoicas/Ventas-api/internal/application/billing"
	"github.com/jhoicas/Ventas-api/internal/application/cashbox"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/inventory"
	"github.com/jhoicas/Ventas-api/internal/application/ports"
	"github.com/jhoicas/Ventas-api/internal/application/sales"
	"github.com/jhoicas/Ventas-api/internal/application/usecase"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/fel"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/memory"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Ventas-api/internal/interfaces/http"
)

type testServer struct {
	app    *fiber.App
	authUC *auth.AuthUseCase
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.NewStore()
	clock := &ports.FixedClock{T: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), Step: time.Second}

	stock := inventory.NewStockLedger(store, clock)
	cash := cashbox.NewLedger(store, clock)
	saleLedger := sales.NewLedger(store, stock, cash, clock, entity.DefaultTaxRate)
	fiscal := billing.NewFiscalLedger(store,
		fel.NewSimulatedCertifier(nil, nil, clock),
		pdf.NewMarotoPDFGenerator(),
		clock,
		billing.FiscalConfig{Seller: billing.Seller{NIT: "12345679", Name: "Tienda Demo S.A."}},
		nil,
	)
	saga := billing.NewAnnulmentSaga(store, stock, fiscal, saleLedger, cash, clock, nil)
	perms := auth.NewRolePermissions()
	authUC := auth.NewAuthUseCase(store.Users(), perms, clock, auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:        authUC,
		Permissions:   perms,
		ProductUC:     usecase.NewProductUseCase(store, clock),
		StockLedger:   stock,
		SaleLedger:    saleLedger,
		CashLedger:    cash,
		FiscalLedger:  fiscal,
		AnnulmentSaga: saga,
		JWTSecret:     testJWTSecret,
	})
	return &testServer{app: app, authUC: authUC}
}

func (s *testServer) do(t *testing.T, method, path, role string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.Equalf(t, want, resp.StatusCode, "cuerpo: %s", b)
	}
}

// seedProduct crea un producto con presentación Unidad (x1, Q5.00) y 10 unidades en stock.
func (s *testServer) seedProduct(t *testing.T) (productID, presentationID string) {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/products", "admin", dto.CreateProductRequest{SKU: "COCA-350", Name: "Coca Cola 350ml"})
	expectStatus(t, resp, http.StatusCreated)
	product := decode[dto.ProductResponse](t, resp)

	resp = s.do(t, http.MethodPost, "/api/products/"+product.ID+"/presentations", "admin",
		dto.CreatePresentationRequest{Name: "Unidad", Factor: 1, Price: decimal.RequireFromString("5.00")})
	expectStatus(t, resp, http.StatusCreated)
	pres := decode[dto.PresentationResponse](t, resp)

	resp = s.do(t, http.MethodPost, "/api/stock/add", "warehouse",
		dto.AddStockRequest{ProductID: product.ID, BatchNumber: "L-001", Quantity: 10, ExpirationDate: "2027-01-31"})
	expectStatus(t, resp, http.StatusCreated)
	batch := decode[dto.BatchResponse](t, resp)
	assert.Equal(t, 10, batch.QuantityAvailable)

	return product.ID, pres.ID
}

func (s *testServer) available(t *testing.T, productID string) int {
	t.Helper()
	resp := s.do(t, http.MethodGet, "/api/stock/available/"+productID, "cashier", nil)
	expectStatus(t, resp, http.StatusOK)
	return decode[dto.StockAvailabilityResponse](t, resp).Available
}

func TestFlujoVentaFacturaYAnulacion(t *testing.T) {
	s := newTestServer(t)
	productID, presID := s.seedProduct(t)

	resp := s.do(t, http.MethodPost, "/api/cash-box/open", "cashier", dto.OpenCashBoxRequest{OpeningAmount: decimal.NewFromInt(100)})
	expectStatus(t, resp, http.StatusCreated)
	resp.Body.Close()

	resp = s.do(t, http.MethodPost, "/api/sales", "cashier", nil)
	expectStatus(t, resp, http.StatusCreated)
	sale := decode[dto.SaleResponse](t, resp)
	assert.Equal(t, entity.SaleStatusPending, sale.Status)
	assert.Equal(t, entity.DefaultCustomerNIT, sale.CustomerNIT)

	resp = s.do(t, http.MethodPost, "/api/sales/"+sale.ID+"/items", "cashier",
		dto.AddSaleItemRequest{ProductID: productID, PresentationID: presID, Quantity: 3})
	expectStatus(t, resp, http.StatusCreated)
	resp.Body.Close()

	resp = s.do(t, http.MethodPost, "/api/sales/"+sale.ID+"/confirm", "cashier", nil)
	expectStatus(t, resp, http.StatusOK)
	sale = decode[dto.SaleResponse](t, resp)
	assert.Equal(t, entity.SaleStatusCompleted, sale.Status)
	assert.True(t, decimal.RequireFromString("16.80").Equal(sale.Total), "total %s", sale.Total)
	assert.Equal(t, 7, s.available(t, productID))

	resp = s.do(t, http.MethodPost, "/api/fiscal/sales/"+sale.ID+"/register", "cashier", nil)
	expectStatus(t, resp, http.StatusCreated)
	doc := decode[dto.FiscalDocumentResponse](t, resp)
	assert.Equal(t, entity.FiscalStatusAuthorized, doc.Status)
	assert.NotEmpty(t, doc.UUID)

	resp = s.do(t, http.MethodGet, "/api/sales/"+sale.ID, "cashier", nil)
	expectStatus(t, resp, http.StatusOK)
	detail := decode[dto.SaleDetailResponse](t, resp)
	assert.Equal(t, entity.FiscalStatusAuthorized, detail.FiscalStatus)
	assert.Equal(t, 1, detail.ItemsCount)

	// el cajero no puede anular
	resp = s.do(t, http.MethodPost, "/api/fiscal/sales/"+sale.ID+"/annul", "cashier", dto.AnnulSaleRequest{Reason: "error"})
	expectStatus(t, resp, http.StatusForbidden)
	resp.Body.Close()

	resp = s.do(t, http.MethodGet, "/api/fiscal/sales/"+sale.ID+"/can-annul", "manager", nil)
	expectStatus(t, resp, http.StatusOK)
	assert.True(t, decode[dto.CanAnnulResponse](t, resp).CanAnnul)

	resp = s.do(t, http.MethodPost, "/api/fiscal/sales/"+sale.ID+"/annul", "manager", dto.AnnulSaleRequest{Reason: "Cliente devolvió el producto"})
	expectStatus(t, resp, http.StatusOK)
	res := decode[dto.AnnulmentResultResponse](t, resp)
	assert.Equal(t, entity.AnnulmentStatusApproved, res.Annulment.Status)
	assert.Equal(t, entity.SaleStatusAnnulled, res.Sale.Status)
	assert.Equal(t, entity.FiscalStatusAnnulled, res.FiscalDocument.Status)
	require.NotNil(t, res.CashReversal)
	assert.True(t, sale.Total.Equal(res.CashReversal.Amount))
	assert.Equal(t, 10, s.available(t, productID))

	resp = s.do(t, http.MethodPost, "/api/fiscal/sales/"+sale.ID+"/annul", "manager", dto.AnnulSaleRequest{Reason: "otra vez"})
	expectStatus(t, resp, http.StatusConflict)
	resp.Body.Close()

	resp = s.do(t, http.MethodGet, "/api/cash-box/summary", "cashier", nil)
	expectStatus(t, resp, http.StatusOK)
	summary := decode[dto.CashBoxSummaryResponse](t, resp)
	assert.True(t, decimal.NewFromInt(100).Equal(summary.ExpectedClosing), "esperado %s", summary.ExpectedClosing)
	assert.Equal(t, 2, summary.MovementsCount)

	resp = s.do(t, http.MethodGet, "/api/fiscal/documents/"+doc.ID+"/pdf", "manager", nil)
	expectStatus(t, resp, http.StatusOK)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	resp.Body.Close()

	resp = s.do(t, http.MethodGet, "/api/fiscal/documents/stats?from=2026-03-01&to=2026-03-01", "manager", nil)
	expectStatus(t, resp, http.StatusOK)
	docStats := decode[dto.FiscalStatsResponse](t, resp)
	assert.Equal(t, 1, docStats.Total)
	assert.Equal(t, 1, docStats.Annulled)
	assert.True(t, docStats.SuccessRate.IsZero())

	resp = s.do(t, http.MethodGet, "/api/fiscal/annulments/stats?from=2026-03-01", "manager", nil)
	expectStatus(t, resp, http.StatusOK)
	annStats := decode[dto.AnnulmentStatsResponse](t, resp)
	assert.Equal(t, 1, annStats.Approved)
	assert.Equal(t, "100.00", annStats.ApprovalRate.StringFixed(2))

	resp = s.do(t, http.MethodGet, "/api/fiscal/annulments?from=2026-03-02", "manager", nil)
	expectStatus(t, resp, http.StatusOK)
	assert.Empty(t, decode[[]dto.AnnulmentResponse](t, resp))

	resp = s.do(t, http.MethodGet, "/api/fiscal/documents/stats?from=01-03-2026", "manager", nil)
	expectStatus(t, resp, http.StatusBadRequest)
	resp.Body.Close()

	// el cajero no tiene acceso a reportes
	resp = s.do(t, http.MethodGet, "/api/fiscal/documents/stats", "cashier", nil)
	expectStatus(t, resp, http.StatusForbidden)
	resp.Body.Close()
}

func TestVenta_StockInsuficienteRetorna422(t *testing.T) {
	s := newTestServer(t)
	productID, presID := s.seedProduct(t)

	resp := s.do(t, http.MethodPost, "/api/sales", "cashier", dto.CreateSaleRequest{CustomerName: "Ana", CustomerNIT: "12345679"})
	expectStatus(t, resp, http.StatusCreated)
	sale := decode[dto.SaleResponse](t, resp)

	resp = s.do(t, http.MethodPost, "/api/sales/"+sale.ID+"/items", "cashier",
		dto.AddSaleItemRequest{ProductID: productID, PresentationID: presID, Quantity: 11})
	expectStatus(t, resp, http.StatusUnprocessableEntity)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
}

func TestVenta_ConfirmarSinCajaRetorna409(t *testing.T) {
	s := newTestServer(t)
	productID, presID := s.seedProduct(t)

	resp := s.do(t, http.MethodPost, "/api/sales", "cashier", nil)
	sale := decode[dto.SaleResponse](t, resp)
	resp = s.do(t, http.MethodPost, "/api/sales/"+sale.ID+"/items", "cashier",
		dto.AddSaleItemRequest{ProductID: productID, PresentationID: presID, Quantity: 1})
	expectStatus(t, resp, http.StatusCreated)
	resp.Body.Close()

	resp = s.do(t, http.MethodPost, "/api/sales/"+sale.ID+"/confirm", "cashier", nil)
	expectStatus(t, resp, http.StatusConflict)
	assert.Equal(t, "CASH_BOX_CLOSED", decode[dto.ErrorResponse](t, resp).Code)
	assert.Equal(t, 10, s.available(t, productID))
}

func TestBodegaNoPuedeVender(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPost, "/api/sales", "warehouse", nil)
	expectStatus(t, resp, http.StatusForbidden)
	resp.Body.Close()
}

func TestCaja_AbrirDosVecesRetorna409(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPost, "/api/cash-box/open", "cashier", dto.OpenCashBoxRequest{OpeningAmount: decimal.NewFromInt(50)})
	expectStatus(t, resp, http.StatusCreated)
	resp.Body.Close()

	resp = s.do(t, http.MethodPost, "/api/cash-box/open", "manager", dto.OpenCashBoxRequest{OpeningAmount: decimal.NewFromInt(50)})
	expectStatus(t, resp, http.StatusConflict)
	assert.Equal(t, "CASH_BOX_ALREADY_OPEN", decode[dto.ErrorResponse](t, resp).Code)
}

func TestCaja_EgresoYCierre(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPost, "/api/cash-box/open", "manager", dto.OpenCashBoxRequest{OpeningAmount: decimal.NewFromInt(200)})
	expectStatus(t, resp, http.StatusCreated)
	resp.Body.Close()

	resp = s.do(t, http.MethodPost, "/api/cash-box/expense", "manager",
		dto.CashMovementRequest{Amount: decimal.RequireFromString("25.50"), Description: "Compra de bolsas"})
	expectStatus(t, resp, http.StatusCreated)
	resp.Body.Close()

	resp = s.do(t, http.MethodPost, "/api/cash-box/expense", "manager",
		dto.CashMovementRequest{Amount: decimal.Zero, Description: "inválido"})
	expectStatus(t, resp, http.StatusBadRequest)
	resp.Body.Close()

	resp = s.do(t, http.MethodPost, "/api/cash-box/expense", "manager",
		dto.CashMovementRequest{Amount: decimal.RequireFromString("0.004"), Description: "redondea a cero"})
	expectStatus(t, resp, http.StatusBadRequest)
	resp.Body.Close()

	closing := decimal.NewFromInt(170)
	resp = s.do(t, http.MethodPost, "/api/cash-box/close", "manager", dto.CloseCashBoxRequest{ClosingAmount: &closing})
	expectStatus(t, resp, http.StatusOK)
	res := decode[dto.CloseCashBoxResponse](t, resp)
	assert.True(t, decimal.RequireFromString("174.50").Equal(res.Expected))
	assert.True(t, decimal.RequireFromString("-4.50").Equal(res.Difference))
	assert.False(t, res.CashBox.IsOpen)

	resp = s.do(t, http.MethodGet, "/api/cash-box", "cashier", nil)
	expectStatus(t, resp, http.StatusConflict)
	resp.Body.Close()
}

func TestVentaInexistenteRetorna404(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/api/sales/no-existe", "cashier", nil)
	expectStatus(t, resp, http.StatusNotFound)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)
}

func TestFacturarVentaPendienteRetorna409(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPost, "/api/sales", "cashier", nil)
	sale := decode[dto.SaleResponse](t, resp)

	resp = s.do(t, http.MethodPost, "/api/fiscal/sales/"+sale.ID+"/register", "cashier", nil)
	expectStatus(t, resp, http.StatusConflict)
	resp.Body.Close()
}

func TestLoginYMe(t *testing.T) {
	s := newTestServer(t)
	_, err := s.authUC.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "Cajero@Demo.gt", Password: "secreto123", Name: "Cajero", Role: entity.RoleCashier,
	})
	require.NoError(t, err)

	resp := s.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "cajero@demo.gt", Password: "malpass1"})
	expectStatus(t, resp, http.StatusUnauthorized)
	resp.Body.Close()

	resp = s.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "cajero@demo.gt", Password: "secreto123"})
	expectStatus(t, resp, http.StatusOK)
	login := decode[dto.LoginResponse](t, resp)
	require.NotEmpty(t, login.Token)
	assert.Equal(t, entity.RoleCashier, login.User.Role)
	assert.Contains(t, login.User.Capabilities, auth.CapSell)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	resp, err = s.app.Test(req, -1)
	require.NoError(t, err)
	expectStatus(t, resp, http.StatusOK)
	me := decode[dto.UserResponse](t, resp)
	assert.Equal(t, "cajero@demo.gt", me.Email)
}

func TestListadoPaginado(t *testing.T) {
	s := newTestServer(t)
	for i := 0; i < 3; i++ {
		resp := s.do(t, http.MethodPost, "/api/sales", "cashier", nil)
		expectStatus(t, resp, http.StatusCreated)
		resp.Body.Close()
	}

	resp := s.do(t, http.MethodGet, "/api/sales?limit=2&offset=1", "manager", nil)
	expectStatus(t, resp, http.StatusOK)
	assert.Equal(t, "3", resp.Header.Get("X-Total-Count"))
	assert.Len(t, decode[[]dto.SaleResponse](t, resp), 2)

	resp = s.do(t, http.MethodGet, "/api/sales?offset=5", "manager", nil)
	expectStatus(t, resp, http.StatusOK)
	assert.Empty(t, decode[[]dto.SaleResponse](t, resp))

	for _, q := range []string{"limit=500", "limit=-1", "offset=-2", "limit=abc"} {
		resp = s.do(t, http.MethodGet, "/api/sales?"+q, "manager", nil)
		expectStatus(t, resp, http.StatusBadRequest)
		resp.Body.Close()
	}
}
