package stocktwits

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"
)

// Undocumented endpoints. They need no authorization but are not covered by
// any stability promise, so their payloads are decoded defensively.
var (
	opSymbolSentiment = Operation{
		Name:   "symbols.sentiment",
		Method: http.MethodGet,
		Path:   "/symbols/{id}/sentiment.json",
		Kind:   KindSentiment,
	}
	opSymbolVolume = Operation{
		Name:   "symbols.volume",
		Method: http.MethodGet,
		Path:   "/symbols/{id}/volume.json",
		Kind:   KindJSON,
	}
	opEarningsCalendar = Operation{
		Name:          "discover.earnings_calendar",
		Method:        http.MethodGet,
		Path:          "/discover/earnings_calendar",
		Kind:          KindJSON,
		AllowedParams: []string{"date_from", "date_to"},
	}
	opHeatmap = Operation{
		Name:          "heatmap",
		Method:        http.MethodGet,
		Path:          "/heatmap.json",
		Kind:          KindJSON,
		AllowedParams: []string{"range"},
	}
	opIntraday = Operation{
		Name:   "intraday",
		Method: http.MethodGet,
		Path:   "/intraday/{id}.json",
		Host:   HostQL,
		Kind:   KindJSON,
	}
)

// SymbolSentiment returns the current message sentiment reading for a
// symbol.
func (c *Client) SymbolSentiment(ctx context.Context, symbol string) (*SentimentModel, error) {
	payload, err := c.call(ctx, opSymbolSentiment, map[string]string{"id": symbol}, nil)
	if err != nil {
		return nil, err
	}
	sentiment, ok := payload.Model.(*SentimentModel)
	if !ok {
		return nil, fmt.Errorf("stocktwits: unexpected model %T from %s", payload.Model, opSymbolSentiment.Name)
	}
	return sentiment, nil
}

// VolumeItem is one day of message volume for a symbol.
type VolumeItem struct {
	Date          string `json:"date"`
	MessageVolume int64  `json:"message_volume"`
}

// SymbolVolume returns recent daily message volumes for a symbol.
func (c *Client) SymbolVolume(ctx context.Context, symbol string) ([]VolumeItem, error) {
	payload, err := c.call(ctx, opSymbolVolume, map[string]string{"id": symbol}, nil)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Data []VolumeItem `json:"data"`
	}
	if err := json.Unmarshal(payload.Raw, &envelope); err != nil {
		return nil, fmt.Errorf("stocktwits: malformed volume payload: %w", err)
	}
	return envelope.Data, nil
}

// EarningsItem is one scheduled earnings report.
type EarningsItem struct {
	Date   string `json:"date"`
	Symbol string `json:"symbol"`
	Time   string `json:"time"`
	When   string `json:"when"`
}

const earningsDateLayout = "2006-01-02"

// EarningsCalendar returns the scheduled earnings reports between the two
// dates, inclusive, flattened in calendar order.
func (c *Client) EarningsCalendar(ctx context.Context, from, to time.Time) ([]EarningsItem, error) {
	payload, err := c.call(ctx, opEarningsCalendar, nil, map[string]string{
		"date_from": from.Format(earningsDateLayout),
		"date_to":   to.Format(earningsDateLayout),
	})
	if err != nil {
		return nil, err
	}

	// {"earnings": {"2026-08-31": {"stocks": [{"symbol": ..., "time": ...}]}}}
	var envelope struct {
		Earnings map[string]struct {
			Stocks []EarningsItem `json:"stocks"`
		} `json:"earnings"`
	}
	if err := json.Unmarshal(payload.Raw, &envelope); err != nil {
		return nil, fmt.Errorf("stocktwits: malformed earnings payload: %w", err)
	}

	dates := make([]string, 0, len(envelope.Earnings))
	for date := range envelope.Earnings {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	var items []EarningsItem
	for _, date := range dates {
		for _, stock := range envelope.Earnings[date].Stocks {
			stock.Date = date
			items = append(items, stock)
		}
	}
	return items, nil
}

// Heatmap windows accepted by the service.
const (
	HeatmapOneHour         = "one"
	HeatmapSixHours        = "six"
	HeatmapTwelveHours     = "twelve"
	HeatmapTwentyFourHours = "twentyfour"
)

// Heatmap returns the sector activity heatmap over the given window.
func (c *Client) Heatmap(ctx context.Context, window string) (map[string]any, error) {
	switch window {
	case HeatmapOneHour, HeatmapSixHours, HeatmapTwelveHours, HeatmapTwentyFourHours:
	default:
		return nil, fmt.Errorf("stocktwits: unsupported heatmap window %q", window)
	}
	payload, err := c.call(ctx, opHeatmap, nil, map[string]string{"range": window})
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(payload.Raw, &doc); err != nil {
		return nil, fmt.Errorf("stocktwits: malformed heatmap payload: %w", err)
	}
	return doc, nil
}

// IntradayTick is one intraday price reading.
type IntradayTick struct {
	Time   string  `json:"time"`
	Price  float64 `json:"price"`
	Volume int64   `json:"volume"`
}

// Intraday returns today's intraday price series for a symbol.
func (c *Client) Intraday(ctx context.Context, symbol string) ([]IntradayTick, error) {
	payload, err := c.call(ctx, opIntraday, map[string]string{"id": symbol}, nil)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Data []IntradayTick `json:"data"`
	}
	if err := json.Unmarshal(payload.Raw, &envelope); err != nil {
		return nil, fmt.Errorf("stocktwits: malformed intraday payload: %w", err)
	}
	return envelope.Data, nil
}
