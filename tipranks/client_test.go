package tipranks_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/im-n1/rug/internal/httpclient"
	"github.com/im-n1/rug/tipranks"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *tipranks.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return tipranks.NewClient(
		httpclient.NewRestyClient(0, nil),
		zap.NewNop(),
		tipranks.WithBaseAPI(server.URL),
		tipranks.WithMarketAPI(server.URL),
	)
}

func TestGetDividends(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stocks/getChartPageData/", r.URL.Path)
		assert.Equal(t, "AAPL", r.URL.Query().Get("ticker"))
		fmt.Fprint(w, `{"dividends":[{"yield":0.0052,"amount":0.25,"sectorYield":0.0123,"payDate":"2026-05-15T00:00:00","exDate":"2026-05-09T00:00:00","recDate":"2026-05-12T00:00:00","growthSinceDate":"2012"}]}`)
	})

	dividends, err := client.GetDividends(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, dividends, 1)

	d := dividends[0]
	assert.True(t, d.Amount.Equal(decimal.RequireFromString("0.25")))
	assert.True(t, d.Yield.Equal(decimal.RequireFromString("0.0052")))
	assert.True(t, d.SectorAverageYield.Equal(decimal.RequireFromString("0.0123")))
	assert.Equal(t, "2026-05-15", d.PaymentDate.Format("2006-01-02"))
	assert.Equal(t, "2026-05-09", d.ExDate.Format("2006-01-02"))
	assert.Equal(t, "2026-05-12", d.ReceiveDate.Format("2006-01-02"))
	assert.Equal(t, "2012", d.GrowthSince)
}

func TestGetDividendsRejectsMalformedDate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"dividends":[{"yield":0.01,"amount":0.2,"payDate":"not a date","exDate":"2026-05-09T00:00:00","recDate":"2026-05-12T00:00:00"}]}`)
	})

	_, err := client.GetDividends(context.Background(), "AAPL")
	assert.Error(t, err)
}

func TestGetYearHighsAndLows(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"historicalHighLow":[{"year":2026,"high":212.5,"low":164.1},{"year":2025,"high":199.6,"low":124.2}]}`)
	})

	years, err := client.GetYearHighsAndLows(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, years, 2)
	assert.Equal(t, 2026, years[0].Year)
	assert.Equal(t, 212.5, years[0].High)
	assert.Equal(t, 164.1, years[0].Low)
}

func TestGetBasicInfoJoinsBothEndpoints(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/stocks/getData/":
			assert.Equal(t, "AAPL", r.URL.Query().Get("name"))
			fmt.Fprint(w, `{"companyName":"Apple Inc.","market":"NASDAQ","description":"Designs smartphones.","marketCap":2800000000000,"hasDividends":true,"similarStocks":[{"ticker":"MSFT","name":"Microsoft"}],"momentum":{"momentum":0.134}}`)
		case "/details/GetRealTimeQuotes/":
			assert.Equal(t, "AAPL", r.URL.Query().Get("tickers"))
			fmt.Fprint(w, `[{"yLow":164.1,"yHigh":212.5,"pe":29.4,"eps":6.1}]`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	info, err := client.GetBasicInfo(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "Apple Inc.", info.CompanyName)
	assert.Equal(t, "NASDAQ", info.Market)
	assert.Equal(t, int64(2800000000000), info.MarketCap)
	assert.True(t, info.HasDividends)
	assert.InDelta(t, 13.4, info.YoYChange, 0.0001, "momentum comes back as a percentage")
	assert.Equal(t, 164.1, info.YearLow)
	assert.Equal(t, 212.5, info.YearHigh)
	assert.Equal(t, 29.4, info.PERatio)
	assert.Equal(t, 6.1, info.EPS)
	require.Len(t, info.SimilarStocks, 1)
	assert.Equal(t, "MSFT", info.SimilarStocks[0].Ticker)
	assert.Equal(t, "Microsoft", info.SimilarStocks[0].CompanyName)
}

func TestGetBasicInfoFailsAsAWhole(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/stocks/getData/":
			fmt.Fprint(w, `{"companyName":"Apple Inc."}`)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	_, err := client.GetBasicInfo(context.Background(), "AAPL")
	assert.Error(t, err, "no partial result when one of the two fetches fails")
}

func TestGetBasicInfoRequiresQuote(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/stocks/getData/":
			fmt.Fprint(w, `{"companyName":"Apple Inc."}`)
		default:
			fmt.Fprint(w, `[]`)
		}
	})

	_, err := client.GetBasicInfo(context.Background(), "AAPL")
	assert.Error(t, err)
}
