// Package tipranks wraps unofficial TipRanks endpoints. Unofficial means the
// endpoints are not documented and need no authorization; field names and
// nesting follow whatever the site's own frontend consumes.
package tipranks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/go-querystring/query"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultBaseAPI   = "https://www.tipranks.com/api"
	defaultMarketAPI = "https://market.tipranks.com/api"
)

type Client struct {
	httpClient *resty.Client
	logger     *zap.Logger
	baseAPI    string
	marketAPI  string
}

type Option func(*Client)

// WithBaseAPI overrides the chart-page/stock-data endpoint host.
func WithBaseAPI(baseAPI string) Option {
	return func(c *Client) {
		c.baseAPI = baseAPI
	}
}

// WithMarketAPI overrides the realtime-quotes endpoint host.
func WithMarketAPI(marketAPI string) Option {
	return func(c *Client) {
		c.marketAPI = marketAPI
	}
}

func NewClient(httpClient *resty.Client, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: httpClient,
		logger:     logger,
		baseAPI:    defaultBaseAPI,
		marketAPI:  defaultMarketAPI,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type tickerParams struct {
	Ticker string `url:"ticker"`
}

type nameParams struct {
	Name string `url:"name"`
}

type tickersParams struct {
	Tickers string `url:"tickers"`
}

func (c *Client) getJSON(ctx context.Context, url string, params any, result any) error {
	values, err := query.Values(params)
	if err != nil {
		return fmt.Errorf("failed to encode query parameters: %w", err)
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParamsFromValues(values).
		Get(url)

	if err != nil {
		c.logger.Error("failed to fetch TipRanks data", zap.String("url", url), zap.Error(err))
		return fmt.Errorf("failed to fetch %s: %w", url, err)
	}

	if resp.StatusCode() != 200 {
		c.logger.Warn("Non-200 response from API",
			zap.String("url", url),
			zap.Int("status_code", resp.StatusCode()),
			zap.String("response", string(resp.Body())),
		)
		return fmt.Errorf("API returned status %d for %s", resp.StatusCode(), url)
	}

	if err := json.Unmarshal(resp.Body(), result); err != nil {
		c.logger.Error("failed to unmarshal TipRanks data", zap.String("url", url), zap.Error(err))
		return err
	}

	return nil
}

func (c *Client) getChartPageData(ctx context.Context, symbol string) (chartPageData, error) {
	var data chartPageData
	url := fmt.Sprintf("%s/stocks/getChartPageData/", c.baseAPI)
	err := c.getJSON(ctx, url, tickerParams{Ticker: symbol}, &data)
	return data, err
}

// GetDividends fetches symbol dividends: yield, amount, sector average
// yield, payment/ex/receive dates and the growth-since marker.
func (c *Client) GetDividends(ctx context.Context, symbol string) ([]Dividend, error) {
	data, err := c.getChartPageData(ctx, symbol)
	if err != nil {
		return nil, err
	}

	dividends := make([]Dividend, 0, len(data.Dividends))
	for _, item := range data.Dividends {
		dividend := Dividend{
			Yield:              item.Yield,
			Amount:             item.Amount,
			SectorAverageYield: item.SectorYield,
			GrowthSince:        item.GrowthSinceDate,
		}
		if dividend.PaymentDate, err = time.Parse(chartPageDateLayout, item.PayDate); err != nil {
			return nil, fmt.Errorf("invalid payment date %q: %w", item.PayDate, err)
		}
		if dividend.ExDate, err = time.Parse(chartPageDateLayout, item.ExDate); err != nil {
			return nil, fmt.Errorf("invalid ex date %q: %w", item.ExDate, err)
		}
		if dividend.ReceiveDate, err = time.Parse(chartPageDateLayout, item.RecDate); err != nil {
			return nil, fmt.Errorf("invalid receive date %q: %w", item.RecDate, err)
		}
		dividends = append(dividends, dividend)
	}

	return dividends, nil
}

// GetYearHighsAndLows fetches highs and lows for each year, at most 7 years
// back.
func (c *Client) GetYearHighsAndLows(ctx context.Context, symbol string) ([]YearHighLow, error) {
	data, err := c.getChartPageData(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return data.HistoricalHighLow, nil
}

// GetBasicInfo downloads basic symbol info. The company data and the realtime
// quote figures live on two independent endpoints; both are fetched in
// parallel and joined before returning. If either fetch fails the whole call
// fails, no partial result is returned.
func (c *Client) GetBasicInfo(ctx context.Context, symbol string) (BasicInfo, error) {
	var (
		basics stockData
		quotes []realTimeQuote
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		url := fmt.Sprintf("%s/stocks/getData/", c.baseAPI)
		return c.getJSON(groupCtx, url, nameParams{Name: symbol}, &basics)
	})
	group.Go(func() error {
		url := fmt.Sprintf("%s/details/GetRealTimeQuotes/", c.marketAPI)
		return c.getJSON(groupCtx, url, tickersParams{Tickers: symbol}, &quotes)
	})
	if err := group.Wait(); err != nil {
		return BasicInfo{}, err
	}

	if len(quotes) == 0 {
		return BasicInfo{}, fmt.Errorf("no realtime quote returned for %s", symbol)
	}

	info := BasicInfo{
		CompanyName:  basics.CompanyName,
		Market:       basics.Market,
		Description:  basics.Description,
		MarketCap:    basics.MarketCap,
		HasDividends: basics.HasDividends,
		YoYChange:    basics.Momentum.Momentum * 100,
		YearLow:      quotes[0].YearLow,
		YearHigh:     quotes[0].YearHigh,
		PERatio:      quotes[0].PERatio,
		EPS:          quotes[0].EPS,
	}
	for _, stock := range basics.SimilarStocks {
		info.SimilarStocks = append(info.SimilarStocks, SimilarStock{
			Ticker:      stock.Ticker,
			CompanyName: stock.Name,
		})
	}

	return info, nil
}
