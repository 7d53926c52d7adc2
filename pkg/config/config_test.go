package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "simulate", cfg.FEL.Mode)
	assert.Equal(t, "0.12", cfg.FEL.TaxRate)
	assert.Equal(t, "GTQ", cfg.FEL.Currency)
	assert.Equal(t, 30, cfg.FEL.TimeoutSeconds)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 10, cfg.DB.MaxConns)
	assert.Equal(t, 1, cfg.DB.MinConns)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("FEL_MODE", "http")
	t.Setenv("FEL_API_URL", "https://certificador.example/api")
	t.Setenv("FEL_SELLER_NIT", "1234567-9")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DB_MAX_CONNS", "4")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "http", cfg.FEL.Mode)
	assert.Equal(t, "1234567-9", cfg.FEL.Seller.NIT)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, 4, cfg.DB.MaxConns)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{Store: StoreConfig{Driver: "memory"}, FEL: FELConfig{Mode: "simulate", TimeoutSeconds: 10}}
	}
	require.NoError(t, base().Validate())

	c := base()
	c.Store.Driver = "sqlite"
	assert.ErrorContains(t, c.Validate(), "STORE_DRIVER")

	c = base()
	c.FEL.Mode = "http"
	assert.ErrorContains(t, c.Validate(), "FEL_API_URL")

	c = base()
	c.FEL.Mode = "otro"
	assert.ErrorContains(t, c.Validate(), "FEL_MODE")

	c = base()
	c.FEL.TimeoutSeconds = 0
	assert.ErrorContains(t, c.Validate(), "FEL_TIMEOUT_SECONDS")

	c = base()
	c.Store.Driver = "postgres"
	c.DB = DBConfig{MaxConns: 2, MinConns: 3}
	assert.ErrorContains(t, c.Validate(), "DB_MAX_CONNS")
	c.DB.MinConns = 1
	assert.NoError(t, c.Validate())
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "pos", Password: "p@ss:w/rd", DBName: "ventas", SSLMode: "disable"}
	assert.Equal(t, "postgres://pos:p%40ss%3Aw%2Frd@db:5432/ventas?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgresql://x@y/z"
	assert.Equal(t, "postgresql://x@y/z", c.ConnectionString())
}
