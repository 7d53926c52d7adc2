// @title                       Ventas API
// @version                     1.0
// @description                 Back-office de punto de venta: inventario por lotes, ventas, caja y factura electrónica FEL.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"crypto/tls"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/docs"
	"github.com/jhoicas/Ventas-api/internal/application/auth"
	"github.com/jhoicas/Ventas-api/internal/application/billing"
	"github.com/jhoicas/Ventas-api/internal/application/cashbox"
	"github.com/jhoicas/Ventas-api/internal/application/demo"
	"github.com/jhoicas/Ventas-api/internal/application/inventory"
	"github.com/jhoicas/Ventas-api/internal/application/ports"
	"github.com/jhoicas/Ventas-api/internal/application/sales"
	"github.com/jhoicas/Ventas-api/internal/application/usecase"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	infrafel "github.com/jhoicas/Ventas-api/internal/infrastructure/fel"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Ventas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Ventas-api/internal/interfaces/http"
	"github.com/jhoicas/Ventas-api/pkg/config"
	pkgfel "github.com/jhoicas/Ventas-api/pkg/fel"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Str("fel", cfg.FEL.Mode).
		Msg("iniciando aplicación")

	ctx := context.Background()
	clock := ports.SystemClock{}

	var (
		txRunner ports.TxRunner
		userRepo repository.UserRepository
	)
	switch cfg.Store.Driver {
	case "memory":
		store := memory.NewStore()
		txRunner, userRepo = store, store.Users()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		txRunner, userRepo = postgres.NewTxRunner(pool), postgres.NewUserRepository(pool)
	}

	taxRate, err := decimal.NewFromString(cfg.FEL.TaxRate)
	if err != nil {
		log.Fatal().Err(err).Str("tax_rate", cfg.FEL.TaxRate).Msg("FEL_TAX_RATE inválido")
	}

	// Certificado opcional: sin él el DTE viaja sin firma.
	var cert *tls.Certificate
	if cfg.FEL.CertPath != "" {
		cert, err = infrafel.LoadCertificate(cfg.FEL.CertPath, cfg.FEL.CertKeyPath, cfg.FEL.CertPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("cargar certificado de firma FEL")
		}
	}
	signer := infrafel.NewXMLDSigSigner()
	timeout := time.Duration(cfg.FEL.TimeoutSeconds) * time.Second

	var certifier billing.Certifier
	switch cfg.FEL.Mode {
	case "http":
		certifier = infrafel.NewHTTPCertifier(infrafel.HTTPConfig{
			URL:       cfg.FEL.APIURL,
			APIKey:    cfg.FEL.APIKey,
			APISecret: cfg.FEL.APISecret,
			Timeout:   timeout,
		}, signer, cert)
	default:
		certifier = infrafel.NewSimulatedCertifier(signer, cert, clock)
	}

	stockLedger := inventory.NewStockLedger(txRunner, clock)
	cashLedger := cashbox.NewLedger(txRunner, clock)
	saleLedger := sales.NewLedger(txRunner, stockLedger, cashLedger, clock, taxRate)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	fiscalLedger := billing.NewFiscalLedger(txRunner, certifier, pdfGenerator, clock, billing.FiscalConfig{
		Seller: billing.Seller{
			NIT:          pkgfel.NormalizeNIT(cfg.FEL.Seller.NIT),
			Name:         cfg.FEL.Seller.Name,
			TradeName:    cfg.FEL.Seller.TradeName,
			Address:      cfg.FEL.Seller.Address,
			PostalCode:   cfg.FEL.Seller.PostalCode,
			Department:   cfg.FEL.Seller.Department,
			Municipality: cfg.FEL.Seller.Municipality,
			Country:      cfg.FEL.Seller.Country,
			Email:        cfg.FEL.Seller.Email,
		},
		Currency:       cfg.FEL.Currency,
		CertifyTimeout: timeout,
		PDFDir:         cfg.FEL.PDFDir,
	}, log)
	saga := billing.NewAnnulmentSaga(txRunner, stockLedger, fiscalLedger, saleLedger, cashLedger, clock, log)

	perms := auth.NewRolePermissions()
	authUC := auth.NewAuthUseCase(userRepo, perms, clock, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(txRunner, clock)

	// En memoria y desarrollo se precarga el catálogo de demostración.
	if cfg.Store.Driver == "memory" && cfg.App.Env == "development" {
		loader := &demo.Loader{Products: productUC, Stock: stockLedger, Auth: authUC, Log: log}
		if _, err := loader.Load(ctx, demo.DefaultCatalog, os.Getenv("SEED_PASSWORD")); err != nil {
			log.Error().Err(err).Msg("carga de datos de demostración")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    docs.SwaggerInfo.Title,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		Permissions:   perms,
		ProductUC:     productUC,
		StockLedger:   stockLedger,
		SaleLedger:    saleLedger,
		CashLedger:    cashLedger,
		FiscalLedger:  fiscalLedger,
		AnnulmentSaga: saga,
		JWTSecret:     cfg.JWT.Secret,
		Log:           log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
