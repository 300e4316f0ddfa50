package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/im-n1/rug/internal/config"
)

func TestReadApplicationConfigDefaults(t *testing.T) {
	cfg, err := config.ReadApplicationConfig(zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.HTTPConfig.Timeout)
	assert.Equal(t, "https://www.tipranks.com/api", cfg.TipranksConfig.BaseAPI)
	assert.Equal(t, "https://market.tipranks.com/api", cfg.TipranksConfig.MarketAPI)
	assert.Equal(t, "https://query1.finance.yahoo.com", cfg.YahooConfig.BaseAPI)
	assert.Equal(t, "https://api.stocktwits.com", cfg.StocktwitsConfig.APIHost)
	assert.Equal(t, "/api/2", cfg.StocktwitsConfig.APIRoot)
	assert.False(t, cfg.CacheConfig.Enabled)
	assert.Equal(t, time.Minute, cfg.CacheConfig.TTL)
}

func TestReadApplicationConfigEnvOverrides(t *testing.T) {
	t.Setenv("RUG_HTTP_TIMEOUT", "3s")
	t.Setenv("RUG_YAHOO_BASE_API", "https://example.com")
	t.Setenv("RUG_CACHE_ENABLED", "true")

	cfg, err := config.ReadApplicationConfig(zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, cfg.HTTPConfig.Timeout)
	assert.Equal(t, "https://example.com", cfg.YahooConfig.BaseAPI)
	assert.True(t, cfg.CacheConfig.Enabled)
}

func TestReadApplicationConfigRejectsInvalidURL(t *testing.T) {
	t.Setenv("RUG_TIPRANKS_BASE_API", "not a url")

	_, err := config.ReadApplicationConfig(zap.NewNop())
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := config.ApplicationConfig{
		HTTPConfig: config.HTTPConfig{Timeout: 10 * time.Second},
		TipranksConfig: config.TipranksConfig{
			BaseAPI:   "https://www.tipranks.com/api",
			MarketAPI: "https://market.tipranks.com/api",
		},
		YahooConfig: config.YahooConfig{BaseAPI: "https://query1.finance.yahoo.com"},
		StocktwitsConfig: config.StocktwitsConfig{
			APIHost:   "https://api.stocktwits.com",
			QLHost:    "https://ql.stocktwits.com",
			RoomsHost: "https://roomapi.stocktwits.com",
		},
	}
	assert.NoError(t, cfg.Validate())

	cfg.YahooConfig.BaseAPI = ""
	assert.Error(t, cfg.Validate())
}
