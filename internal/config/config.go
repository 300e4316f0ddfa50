package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// bindEnv binds an environment variable with an optional default value
func bindEnv(configKey, envKey string, defaultValue ...interface{}) {
	if len(defaultValue) > 0 {
		viper.SetDefault(configKey, defaultValue[0])
	}
	viper.BindEnv(configKey, envKey)
}

type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout" validate:"required"`
}

type TipranksConfig struct {
	BaseAPI   string `mapstructure:"base_api" validate:"required,url"`
	MarketAPI string `mapstructure:"market_api" validate:"required,url"`
}

type YahooConfig struct {
	BaseAPI string `mapstructure:"base_api" validate:"required,url"`
}

type StocktwitsConfig struct {
	APIHost        string `mapstructure:"api_host" validate:"required,url"`
	APIRoot        string `mapstructure:"api_root"`
	QLHost         string `mapstructure:"ql_host" validate:"required,url"`
	RoomsHost      string `mapstructure:"rooms_host" validate:"required,url"`
	ConsumerKey    string `mapstructure:"consumer_key"`
	ConsumerSecret string `mapstructure:"consumer_secret"`
	RedirectURI    string `mapstructure:"redirect_uri"`
	AccessToken    string `mapstructure:"access_token"`
}

type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	RedisAddr string        `mapstructure:"redis_addr"`
	TTL       time.Duration `mapstructure:"ttl"`
}

type ApplicationConfig struct {
	Debug            bool             `mapstructure:"debug"`
	HTTPConfig       HTTPConfig       `mapstructure:"http"`
	TipranksConfig   TipranksConfig   `mapstructure:"tipranks"`
	YahooConfig      YahooConfig      `mapstructure:"yahoo"`
	StocktwitsConfig StocktwitsConfig `mapstructure:"stocktwits"`
	CacheConfig      CacheConfig      `mapstructure:"cache"`
}

func ReadApplicationConfig(logger *zap.Logger) (cfg ApplicationConfig, err error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("error reading config file: %v", err)
		}
		// No config file is fine, defaults and env vars apply.
	} else {
		logger.Info(
			"using config",
			zap.String("file", viper.ConfigFileUsed()),
		)
	}
	viper.AutomaticEnv()

	// HTTP
	bindEnv("http.timeout", "RUG_HTTP_TIMEOUT", "10s")

	// TipRanks
	bindEnv("tipranks.base_api", "RUG_TIPRANKS_BASE_API", "https://www.tipranks.com/api")
	bindEnv("tipranks.market_api", "RUG_TIPRANKS_MARKET_API", "https://market.tipranks.com/api")

	// Yahoo
	bindEnv("yahoo.base_api", "RUG_YAHOO_BASE_API", "https://query1.finance.yahoo.com")

	// StockTwits
	bindEnv("stocktwits.api_host", "RUG_STOCKTWITS_API_HOST", "https://api.stocktwits.com")
	bindEnv("stocktwits.api_root", "RUG_STOCKTWITS_API_ROOT", "/api/2")
	bindEnv("stocktwits.ql_host", "RUG_STOCKTWITS_QL_HOST", "https://ql.stocktwits.com")
	bindEnv("stocktwits.rooms_host", "RUG_STOCKTWITS_ROOMS_HOST", "https://roomapi.stocktwits.com")
	bindEnv("stocktwits.consumer_key", "RUG_STOCKTWITS_CONSUMER_KEY")
	bindEnv("stocktwits.consumer_secret", "RUG_STOCKTWITS_CONSUMER_SECRET")
	bindEnv("stocktwits.redirect_uri", "RUG_STOCKTWITS_REDIRECT_URI")
	bindEnv("stocktwits.access_token", "RUG_STOCKTWITS_ACCESS_TOKEN")

	// Cache
	bindEnv("cache.enabled", "RUG_CACHE_ENABLED", false)
	bindEnv("cache.redis_addr", "RUG_CACHE_REDIS_ADDR")
	bindEnv("cache.ttl", "RUG_CACHE_TTL", "60s")

	// Debug
	bindEnv("debug", "RUG_DEBUG", false)

	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("error unmarshalling config: %s", err.Error())
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, err
}

func (cfg *ApplicationConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
