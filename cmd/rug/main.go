package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/im-n1/rug/cache"
	"github.com/im-n1/rug/internal/config"
	"github.com/im-n1/rug/internal/httpclient"
	"github.com/im-n1/rug/internal/logging"
	"github.com/im-n1/rug/stocktwits"
	"github.com/im-n1/rug/tipranks"
	"github.com/im-n1/rug/yahoo"
	"github.com/redis/go-redis/v9"
)

// app holds the wired clients shared by all subcommands. It is populated
// once in the root command's persistent pre-run.
type app struct {
	cfg        config.ApplicationConfig
	logger     *zap.Logger
	tipranks   *tipranks.Client
	yahoo      *yahoo.Client
	stocktwits *stocktwits.Client
}

func (a *app) setup(debug bool) error {
	// Values from a .env file fill the same RUG_* variables the
	// environment would.
	_ = godotenv.Load()

	logConfig := logging.NewLogConfig("[rug]", debug)
	logger, err := logConfig.NewLogging()
	if err != nil {
		return err
	}
	a.logger = logger
	zap.ReplaceGlobals(logger)

	cfg, err := config.ReadApplicationConfig(logger)
	if err != nil {
		logger.Error("Failed to load configuration", zap.Error(err))
		return err
	}
	a.cfg = cfg

	httpClient := httpclient.NewRestyClient(cfg.HTTPConfig.Timeout, logger)

	a.tipranks = tipranks.NewClient(httpClient, logger,
		tipranks.WithBaseAPI(cfg.TipranksConfig.BaseAPI),
		tipranks.WithMarketAPI(cfg.TipranksConfig.MarketAPI),
	)
	a.yahoo = yahoo.NewClient(httpClient, logger,
		yahoo.WithBaseAPI(cfg.YahooConfig.BaseAPI),
	)

	stOpts := []stocktwits.ClientOption{
		stocktwits.WithLogger(logger),
		stocktwits.WithAPIHost(cfg.StocktwitsConfig.APIHost),
		stocktwits.WithAPIRoot(cfg.StocktwitsConfig.APIRoot),
		stocktwits.WithQLHost(cfg.StocktwitsConfig.QLHost),
		stocktwits.WithRoomsHost(cfg.StocktwitsConfig.RoomsHost),
	}
	if cfg.StocktwitsConfig.AccessToken != "" {
		stOpts = append(stOpts, stocktwits.WithAuth(stocktwits.TokenAuth{
			AccessToken: cfg.StocktwitsConfig.AccessToken,
		}))
	}
	if cfg.CacheConfig.Enabled {
		var responseCache cache.Cache
		if cfg.CacheConfig.RedisAddr != "" {
			responseCache = cache.NewRedisCache(redis.NewClient(&redis.Options{
				Addr: cfg.CacheConfig.RedisAddr,
			}))
		} else {
			responseCache = cache.NewMemoryCache()
		}
		stOpts = append(stOpts, stocktwits.WithCache(responseCache, cfg.CacheConfig.TTL))
	}
	a.stocktwits = stocktwits.NewClient(httpClient, stOpts...)

	return nil
}

func main() {
	a := &app{}
	var debug bool

	root := &cobra.Command{
		Use:           "rug",
		Short:         "Financial data from TipRanks, Yahoo Finance and StockTwits",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(debug)
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newPriceCommand(a),
		newDividendsCommand(a),
		newHighLowCommand(a),
		newInfoCommand(a),
		newTrendingCommand(a),
		newSentimentCommand(a),
		newEarningsCommand(a),
		newStreamCommand(a),
		newLoginCommand(a),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
