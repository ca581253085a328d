package config_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/BuenSabor-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.Pricing.DeliveryFee.Equal(decimal.NewFromInt(200)))
	assert.True(t, cfg.Pricing.TakeAwayDiscountPct.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, 10, cfg.Pricing.DeliveryMinutes)
	assert.Equal(t, 1, cfg.Pricing.Cooks)
	assert.Equal(t, "America/Argentina/Mendoza", cfg.App.Timezone)
	assert.Equal(t, "https://api.mercadopago.com", cfg.MercadoPago.BaseURL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PRICING_DELIVERY_FEE", "350.50")
	t.Setenv("PRICING_COOKS", "3")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "350.5", cfg.Pricing.DeliveryFee.String())
	assert.Equal(t, 3, cfg.Pricing.Cooks)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Setenv("PRICING_DELIVERY_FEE", "doscientos")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapesPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "buen_sabor", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/buen_sabor?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://other"
	assert.Equal(t, "postgres://other", c.ConnectionString())
}
