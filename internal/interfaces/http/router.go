package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Ventas-api/internal/application/auth"
	"github.com/jhoicas/Ventas-api/internal/application/billing"
	"github.com/jhoicas/Ventas-api/internal/application/cashbox"
	"github.com/jhoicas/Ventas-api/internal/application/inventory"
	"github.com/jhoicas/Ventas-api/internal/application/sales"
	"github.com/jhoicas/Ventas-api/internal/application/usecase"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	Permissions   auth.PermissionChecker
	ProductUC     *usecase.ProductUseCase
	StockLedger   *inventory.StockLedger
	SaleLedger    *sales.Ledger
	CashLedger    *cashbox.Ledger
	FiscalLedger  *billing.FiscalLedger
	AnnulmentSaga *billing.AnnulmentSaga
	JWTSecret     string
	Log           *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	can := func(capability string) fiber.Handler {
		return RequireCapability(deps.Permissions, capability)
	}

	api := app.Group("/api")

	// Auth: login público, el resto con token
	authHandler := NewAuthHandler(deps.AuthUC, log)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", AuthMiddleware(deps.JWTSecret), authHandler.Logout)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), RequireRole("admin"), authHandler.Register)

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, log)
	products.Get("/search", can(auth.CapViewProducts), productHandler.Search)
	products.Get("/presentations/:id", can(auth.CapViewProducts), productHandler.Presentations)
	products.Get("/", can(auth.CapViewProducts), productHandler.List)
	products.Post("/", can(auth.CapManageProducts), productHandler.Create)
	products.Get("/:id", can(auth.CapViewProducts), productHandler.GetByID)
	products.Post("/:id/presentations", can(auth.CapManageProducts), productHandler.AddPresentation)
	products.Put("/:id/active", can(auth.CapManageProducts), productHandler.SetActive)

	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockLedger, log)
	stock.Post("/add", can(auth.CapManageStock), stockHandler.Add)
	stock.Post("/adjust", can(auth.CapAdjustStock), stockHandler.Adjust)
	stock.Get("/available/:productId", can(auth.CapViewStock), stockHandler.Available)
	stock.Get("/check/:productId", can(auth.CapViewStock), stockHandler.Check)
	stock.Get("/batches/:productId", can(auth.CapViewStock), stockHandler.Batches)
	stock.Get("/movements", can(auth.CapViewStock), stockHandler.Movements)

	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleLedger, log)
	salesGroup.Post("/", can(auth.CapSell), saleHandler.Create)
	salesGroup.Get("/", can(auth.CapViewSales), saleHandler.List)
	salesGroup.Get("/pending", can(auth.CapViewSales), saleHandler.Pending)
	salesGroup.Put("/items/:itemId", can(auth.CapSell), saleHandler.UpdateItem)
	salesGroup.Delete("/items/:itemId", can(auth.CapSell), saleHandler.RemoveItem)
	salesGroup.Get("/:id", can(auth.CapViewSales), saleHandler.Get)
	salesGroup.Post("/:id/items", can(auth.CapSell), saleHandler.AddItem)
	salesGroup.Post("/:id/confirm", can(auth.CapSell), saleHandler.Confirm)
	salesGroup.Post("/:id/cancel", can(auth.CapCancelSale), saleHandler.Cancel)

	cash := protected.Group("/cash-box")
	cashHandler := NewCashBoxHandler(deps.CashLedger, log)
	cash.Get("/", can(auth.CapViewCashBox), cashHandler.Current)
	cash.Get("/summary", can(auth.CapViewCashBox), cashHandler.Summary)
	cash.Get("/movements", can(auth.CapViewCashBox), cashHandler.Movements)
	cash.Get("/history", can(auth.CapViewCashBox), cashHandler.History)
	cash.Get("/stats", can(auth.CapViewReports), cashHandler.Stats)
	cash.Post("/open", can(auth.CapOpenCashBox), cashHandler.Open)
	cash.Post("/close", can(auth.CapCloseCashBox), cashHandler.Close)
	cash.Post("/income", can(auth.CapManageCashMovements), cashHandler.Income)
	cash.Post("/expense", can(auth.CapRegisterExpense), cashHandler.Expense)

	fiscal := protected.Group("/fiscal")
	fiscalHandler := NewFiscalHandler(deps.FiscalLedger, deps.AnnulmentSaga, log)
	fiscal.Get("/documents", can(auth.CapViewFiscalDocuments), fiscalHandler.ListDocuments)
	fiscal.Get("/documents/stats", can(auth.CapViewReports), fiscalHandler.DocumentStats)
	fiscal.Get("/documents/:id", can(auth.CapViewFiscalDocuments), fiscalHandler.GetDocument)
	fiscal.Get("/documents/:id/pdf", can(auth.CapViewFiscalDocuments), fiscalHandler.DocumentPDF)
	fiscal.Get("/sales/:id/invoice-data", can(auth.CapGenerateInvoice), fiscalHandler.InvoiceData)
	fiscal.Post("/sales/:id/register", can(auth.CapGenerateInvoice), fiscalHandler.Register)
	fiscal.Post("/sales/:id/annul", can(auth.CapAnnulSale), fiscalHandler.Annul)
	fiscal.Get("/sales/:id/can-annul", can(auth.CapViewFiscalDocuments), fiscalHandler.CanAnnul)
	fiscal.Get("/annulments", can(auth.CapViewFiscalDocuments), fiscalHandler.ListAnnulments)
	fiscal.Get("/annulments/pending", can(auth.CapApproveAnnulment), fiscalHandler.PendingAnnulments)
	fiscal.Get("/annulments/stats", can(auth.CapViewReports), fiscalHandler.AnnulmentStats)
	fiscal.Get("/annulments/:id", can(auth.CapViewFiscalDocuments), fiscalHandler.GetAnnulment)
}
