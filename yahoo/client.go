// Package yahoo wraps the unofficial Yahoo Finance quote endpoint.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/google/go-querystring/query"
	"go.uber.org/zap"
)

const defaultBaseAPI = "https://query1.finance.yahoo.com"

// MarketState tells which trading phase the market is currently in.
type MarketState string

const (
	MarketStatePre     MarketState = "pre-market"
	MarketStateOpen    MarketState = "open"
	MarketStatePost    MarketState = "post-market"
	MarketStateUnknown MarketState = ""
)

// Change is a price movement in both percents and absolute value.
type Change struct {
	Percents float64
	Value    float64
}

// MarketPrice is the price and its movement for one trading phase.
type MarketPrice struct {
	Change Change
	Value  float64
}

// CurrentPrice carries the current market price incl. pre/post market
// prices and changes, plus the current market state.
type CurrentPrice struct {
	State         MarketState
	PreMarket     MarketPrice
	CurrentMarket MarketPrice
	PostMarket    MarketPrice
}

// rawNumber unwraps Yahoo's {"raw": n, "fmt": "..."} number envelope.
// Absent fields decode to 0.
type rawNumber struct {
	Raw float64 `json:"raw"`
}

type quoteSummary struct {
	QuoteSummary struct {
		Result []struct {
			Price struct {
				MarketState                string    `json:"marketState"`
				PreMarketChangePercent     rawNumber `json:"preMarketChangePercent"`
				PreMarketChange            rawNumber `json:"preMarketChange"`
				PreMarketPrice             rawNumber `json:"preMarketPrice"`
				RegularMarketChangePercent rawNumber `json:"regularMarketChangePercent"`
				RegularMarketChange        rawNumber `json:"regularMarketChange"`
				RegularMarketPrice         rawNumber `json:"regularMarketPrice"`
				PostMarketChangePercent    rawNumber `json:"postMarketChangePercent"`
				PostMarketChange           rawNumber `json:"postMarketChange"`
				PostMarketPrice            rawNumber `json:"postMarketPrice"`
			} `json:"price"`
		} `json:"result"`
	} `json:"quoteSummary"`
}

type Client struct {
	httpClient *resty.Client
	logger     *zap.Logger
	baseAPI    string
}

type Option func(*Client)

func WithBaseAPI(baseAPI string) Option {
	return func(c *Client) {
		c.baseAPI = baseAPI
	}
}

func NewClient(httpClient *resty.Client, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: httpClient,
		logger:     logger,
		baseAPI:    defaultBaseAPI,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type quoteParams struct {
	Modules string `url:"modules"`
}

// GetCurrentPrice fetches the current market price incl. pre/post market
// prices, percent and value changes, and the current market state.
func (c *Client) GetCurrentPrice(ctx context.Context, symbol string) (CurrentPrice, error) {
	url := fmt.Sprintf("%s/v11/finance/quoteSummary/%s", c.baseAPI, symbol)

	values, err := query.Values(quoteParams{Modules: "price"})
	if err != nil {
		return CurrentPrice{}, fmt.Errorf("failed to encode query parameters: %w", err)
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParamsFromValues(values).
		Get(url)

	if err != nil {
		c.logger.Error("failed to fetch quote", zap.String("symbol", symbol), zap.Error(err))
		return CurrentPrice{}, fmt.Errorf("failed to fetch quote for %s: %w", symbol, err)
	}

	if resp.StatusCode() != 200 {
		c.logger.Warn("Non-200 response from API",
			zap.String("symbol", symbol),
			zap.Int("status_code", resp.StatusCode()),
			zap.String("response", string(resp.Body())),
		)
		return CurrentPrice{}, fmt.Errorf("API returned status %d for symbol %s", resp.StatusCode(), symbol)
	}

	var summary quoteSummary
	if err := json.Unmarshal(resp.Body(), &summary); err != nil {
		c.logger.Error("failed to unmarshal quote", zap.String("symbol", symbol), zap.Error(err))
		return CurrentPrice{}, err
	}

	if len(summary.QuoteSummary.Result) == 0 {
		return CurrentPrice{}, fmt.Errorf("no quote returned for symbol %s", symbol)
	}
	price := summary.QuoteSummary.Result[0].Price

	return CurrentPrice{
		State: parseMarketState(price.MarketState),
		PreMarket: MarketPrice{
			Change: Change{
				Percents: price.PreMarketChangePercent.Raw * 100,
				Value:    price.PreMarketChange.Raw,
			},
			Value: price.PreMarketPrice.Raw,
		},
		CurrentMarket: MarketPrice{
			Change: Change{
				Percents: price.RegularMarketChangePercent.Raw * 100,
				Value:    price.RegularMarketChange.Raw,
			},
			Value: price.RegularMarketPrice.Raw,
		},
		PostMarket: MarketPrice{
			Change: Change{
				Percents: price.PostMarketChangePercent.Raw * 100,
				Value:    price.PostMarketChange.Raw,
			},
			Value: price.PostMarketPrice.Raw,
		},
	}, nil
}

func parseMarketState(state string) MarketState {
	if state == "" {
		return MarketStateUnknown
	}
	state = strings.ToLower(state)
	switch {
	case strings.HasPrefix(state, "pre"):
		return MarketStatePre
	case strings.HasPrefix(state, "post"):
		return MarketStatePost
	default:
		return MarketStateOpen
	}
}
