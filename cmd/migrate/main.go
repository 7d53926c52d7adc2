// migrate aplica los scripts de migrations/ sobre la base configurada.
//
// Uso: go run ./cmd/migrate [directorio]
package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/jhoicas/Ventas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Ventas-api/pkg/config"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	dir := "migrations"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.ApplyMigrations(ctx, pool, dir)
	for _, f := range applied {
		log.Info().Str("archivo", f).Msg("migración aplicada")
	}
	if err != nil {
		log.Error().Err(err).Msg("migraciones")
		pool.Close()
		os.Exit(1)
	}
	log.Info().Int("total", len(applied)).Msg("migraciones completas")
}
