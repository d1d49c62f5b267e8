package config_test

import (
	"testing"

	"github.com/amirasaad/retailbank/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "retailbank.json", cfg.Store.Path)
	assert.Equal(t, 0.02, cfg.Products.Savings.InterestRate)
	assert.Equal(t, 6, cfg.Products.Savings.WithdrawalLimit)
	assert.Equal(t, float64(500), cfg.Products.Checking.OverdraftLimit)
	assert.Equal(t, float64(35), cfg.Products.Checking.OverdraftFee)
	assert.Equal(t, 60, cfg.Products.Loan.TermMonths)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_FILE", "/tmp/other.json")
	t.Setenv("PRODUCT_SAVINGS_WITHDRAWAL_LIMIT", "3")
	t.Setenv("APP_ENV", "production")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "/tmp/other.json", cfg.Store.Path)
	assert.Equal(t, 3, cfg.Products.Savings.WithdrawalLimit)
}
