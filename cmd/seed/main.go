// seed carga el catálogo de demostración (productos, presentaciones y lotes) y un usuario por rol.
//
// Uso:
//
//	go run ./cmd/seed [-catalog productos.csv] [-latin1] [-password secreto123]
//
// Sin -catalog se usa el catálogo incorporado. Con -latin1 el CSV se lee como ISO-8859-1.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"

	"github.com/jhoicas/Ventas-api/internal/application/auth"
	"github.com/jhoicas/Ventas-api/internal/application/demo"
	"github.com/jhoicas/Ventas-api/internal/application/inventory"
	"github.com/jhoicas/Ventas-api/internal/application/ports"
	"github.com/jhoicas/Ventas-api/internal/application/usecase"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Ventas-api/pkg/config"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

func main() {
	catalogPath := flag.String("catalog", "", "CSV separado por ';' con el catálogo")
	latin1 := flag.Bool("latin1", false, "el CSV está codificado en ISO-8859-1")
	password := flag.String("password", os.Getenv("SEED_PASSWORD"), "password de los usuarios demo (vacío = no se crean)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	catalog := demo.DefaultCatalog
	if *catalogPath != "" {
		f, err := os.Open(*catalogPath)
		if err != nil {
			log.Fatal().Err(err).Msg("abrir catálogo")
		}
		catalog, err = demo.ParseCatalogCSV(f, *latin1)
		f.Close()
		if err != nil {
			log.Fatal().Err(err).Str("archivo", *catalogPath).Msg("leer catálogo")
		}
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	clock := ports.SystemClock{}
	txRunner := postgres.NewTxRunner(pool)
	loader := &demo.Loader{
		Products: usecase.NewProductUseCase(txRunner, clock),
		Stock:    inventory.NewStockLedger(txRunner, clock),
		Auth: auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.NewRolePermissions(), clock, auth.JWTConfig{
			Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer,
		}),
		Now: clock.Now,
		Log: log,
	}
	if _, err := loader.Load(ctx, catalog, *password); err != nil {
		log.Error().Err(err).Msg("seed incompleto")
		pool.Close()
		os.Exit(1)
	}
}
