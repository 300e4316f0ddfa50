package yahoo_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/im-n1/rug/internal/httpclient"
	"github.com/im-n1/rug/yahoo"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *yahoo.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return yahoo.NewClient(
		httpclient.NewRestyClient(0, nil),
		zap.NewNop(),
		yahoo.WithBaseAPI(server.URL),
	)
}

func TestGetCurrentPrice(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v11/finance/quoteSummary/AAPL", r.URL.Path)
		assert.Equal(t, "price", r.URL.Query().Get("modules"))
		fmt.Fprint(w, `{"quoteSummary":{"result":[{"price":{
			"marketState":"POST",
			"preMarketChangePercent":{"raw":0.0021},
			"preMarketChange":{"raw":0.41},
			"preMarketPrice":{"raw":195.2},
			"regularMarketChangePercent":{"raw":-0.013},
			"regularMarketChange":{"raw":-2.6},
			"regularMarketPrice":{"raw":197.4},
			"postMarketChangePercent":{"raw":0.001},
			"postMarketChange":{"raw":0.2},
			"postMarketPrice":{"raw":197.6}
		}}]}}`)
	})

	price, err := client.GetCurrentPrice(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, yahoo.MarketStatePost, price.State)
	assert.Equal(t, 197.4, price.CurrentMarket.Value)
	assert.InDelta(t, -1.3, price.CurrentMarket.Change.Percents, 0.0001, "percent changes come back as percentages")
	assert.Equal(t, -2.6, price.CurrentMarket.Change.Value)
	assert.Equal(t, 195.2, price.PreMarket.Value)
	assert.Equal(t, 197.6, price.PostMarket.Value)
}

func TestGetCurrentPriceMarketStates(t *testing.T) {
	states := map[string]yahoo.MarketState{
		"PRE":     yahoo.MarketStatePre,
		"PREPRE":  yahoo.MarketStatePre,
		"REGULAR": yahoo.MarketStateOpen,
		"POST":    yahoo.MarketStatePost,
		"CLOSED":  yahoo.MarketStateOpen,
	}

	for raw, want := range states {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `{"quoteSummary":{"result":[{"price":{"marketState":%q}}]}}`, raw)
		})
		price, err := client.GetCurrentPrice(context.Background(), "AAPL")
		require.NoError(t, err)
		assert.Equal(t, want, price.State, "state %q", raw)
	}
}

func TestGetCurrentPriceNoResult(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"quoteSummary":{"result":[]}}`)
	})

	_, err := client.GetCurrentPrice(context.Background(), "NOPE")
	assert.Error(t, err)
}

func TestGetCurrentPriceNon200(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetCurrentPrice(context.Background(), "NOPE")
	assert.Error(t, err)
}
