package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/im-n1/rug/stocktwits"
)

func newPriceCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "price <symbol>",
		Short: "Current market price from Yahoo Finance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := a.yahoo.GetCurrentPrice(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s: %.2f (%+.2f%%), market %s\n",
				args[0],
				price.CurrentMarket.Value,
				price.CurrentMarket.Change.Percents,
				price.State,
			)
			return nil
		},
	}
}

func newDividendsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dividends <symbol>",
		Short: "Dividend history from TipRanks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dividends, err := a.tipranks.GetDividends(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, d := range dividends {
				fmt.Printf("%s  amount %s  yield %s%%  ex %s\n",
					d.PaymentDate.Format("2006-01-02"),
					d.Amount,
					d.Yield,
					d.ExDate.Format("2006-01-02"),
				)
			}
			return nil
		},
	}
}

func newHighLowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "highlow <symbol>",
		Short: "Per-year highs and lows from TipRanks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			years, err := a.tipranks.GetYearHighsAndLows(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, y := range years {
				fmt.Printf("%d  high %.2f  low %.2f\n", y.Year, y.High, y.Low)
			}
			return nil
		},
	}
}

func newInfoCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <symbol>",
		Short: "Basic company info from TipRanks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := a.tipranks.GetBasicInfo(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s (%s)\n", info.CompanyName, info.Market)
			fmt.Printf("market cap %d, P/E %.2f, EPS %.2f\n", info.MarketCap, info.PERatio, info.EPS)
			fmt.Printf("52w range %.2f - %.2f, YoY %+.2f%%\n", info.YearLow, info.YearHigh, info.YoYChange)
			for _, s := range info.SimilarStocks {
				fmt.Printf("similar: %s (%s)\n", s.Ticker, s.CompanyName)
			}
			return nil
		},
	}
}

func newTrendingCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "trending",
		Short: "Trending symbols on StockTwits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.stocktwits.TrendingSymbols(cmd.Context())
			if err != nil {
				return err
			}
			for _, item := range results.Items {
				if symbol, ok := item.(*stocktwits.Symbol); ok {
					fmt.Printf("%-8s %s\n", symbol.Symbol, symbol.Title)
				}
			}
			return nil
		},
	}
}

func newSentimentCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sentiment <symbol>",
		Short: "Message sentiment for a symbol on StockTwits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sentiment, err := a.stocktwits.SymbolSentiment(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s: %s\n", args[0], sentiment.Basic)
			return nil
		},
	}
}

func newEarningsCommand(a *app) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "earnings",
		Short: "Upcoming earnings reports from StockTwits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from := time.Now()
			to := from.AddDate(0, 0, days)
			items, err := a.stocktwits.EarningsCalendar(cmd.Context(), from, to)
			if err != nil {
				return err
			}
			for _, item := range items {
				fmt.Printf("%s  %-8s %s\n", item.Date, item.Symbol, item.When)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 7, "how many days ahead to cover")
	return cmd
}

func newLoginCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Obtain a StockTwits access token interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg.StocktwitsConfig
			if cfg.ConsumerKey == "" || cfg.ConsumerSecret == "" {
				return fmt.Errorf("consumer key and secret must be configured")
			}
			auth := stocktwits.NewWebAppAuth(
				cfg.ConsumerKey,
				cfg.ConsumerSecret,
				cfg.RedirectURI,
				[]string{"read", "watch_lists"},
			)
			if err := auth.Authorize(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				return err
			}
			fmt.Printf("\nAccess token: %s\n", auth.Token().AccessToken)
			fmt.Println("Store it as RUG_STOCKTWITS_ACCESS_TOKEN.")
			return nil
		},
	}
}

func newStreamCommand(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "stream <symbol>",
		Short: "Read recent messages from a symbol's stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cursor, err := stocktwits.NewCursor(a.stocktwits.StreamSymbol(args[0]))
			if err != nil {
				return err
			}
			items := cursor.Items(limit)
			for {
				item, err := items.Next(cmd.Context())
				if errors.Is(err, stocktwits.ErrExhausted) {
					return nil
				}
				if err != nil {
					return err
				}
				message, ok := item.(*stocktwits.Message)
				if !ok {
					continue
				}
				author := "?"
				if message.User != nil {
					author = message.User.Username
				}
				fmt.Printf("@%s: %s\n", author, message.Body)
			}
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 30, "how many messages to read")
	return cmd
}
