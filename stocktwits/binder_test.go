package stocktwits_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/im-n1/rug/cache"
	"github.com/im-n1/rug/stocktwits"
)

func TestInvokeRejectsUnknownParamsBeforeNetwork(t *testing.T) {
	requests := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
	})

	_, err := client.Notifications().Invoke(context.Background(), map[string]string{
		"bogus": "1",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
	assert.Equal(t, 0, requests)
}

func TestInvokeExpandsPathPlaceholders(t *testing.T) {
	var path string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		fmt.Fprint(w, `{"messages":[{"id":1}]}`)
	})

	_, err := client.StreamSymbol("BRK.A").Invoke(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "/streams/symbol/BRK.A.json", path)
}

func TestInvokeWithoutAuthHandler(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}, stocktwits.WithAuth(nil))

	_, err := client.StreamFriends().Invoke(context.Background(), nil)
	assert.ErrorIs(t, err, stocktwits.ErrAuthRequired)
}

func TestInvokeSendsBearerToken(t *testing.T) {
	var authorization string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		authorization = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"messages":[{"id":1}]}`)
	})

	_, err := client.StreamFriends().Invoke(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", authorization)
}

func TestAPIErrorCarriesMessages(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"errors":[{"message":"Symbol not found"}]}`)
	})

	_, err := client.SymbolSentiment(context.Background(), "NOPE")
	require.Error(t, err)

	var apiErr *stocktwits.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, []string{"Symbol not found"}, apiErr.Messages)
}

func TestRateLimitErrorMatchesBothTypes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Limit", "200")
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Reset", "1356118800")
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"errors":[{"message":"Rate limit exceeded"}]}`)
	})

	_, err := client.TrendingSymbols(context.Background())
	require.Error(t, err)

	var rateErr *stocktwits.RateLimitError
	require.True(t, errors.As(err, &rateErr))
	assert.Equal(t, 200, rateErr.RateLimit.Limit)
	assert.Equal(t, 0, rateErr.RateLimit.Remaining)
	assert.Equal(t, time.Unix(1356118800, 0), rateErr.RateLimit.Reset)

	// Call sites inspecting only the generic error shape keep working.
	var apiErr *stocktwits.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
}

func TestVerifyAccountUnauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"errors":[{"message":"Authentication required"}]}`)
	})

	user, ok, err := client.VerifyAccount(context.Background())
	require.NoError(t, err, "an unauthorized response is not an error here")
	assert.False(t, ok)
	assert.Nil(t, user)
}

func TestVerifyAccountAuthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"user":{"id":7,"username":"carol"}}`)
	})

	user, ok, err := client.VerifyAccount(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	require.NotNil(t, user)
	assert.Equal(t, "carol", user.Username)
}

func TestCachedResponsesSkipNetwork(t *testing.T) {
	requests := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, `{"symbols":[{"id":1,"symbol":"AAPL","title":"Apple Inc."}]}`)
	}, stocktwits.WithCache(cache.NewMemoryCache(), time.Minute))

	ctx := context.Background()
	first, err := client.TrendingSymbols(ctx)
	require.NoError(t, err)
	second, err := client.TrendingSymbols(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, requests, "the second call must be served from cache")
	assert.Equal(t, first.Len(), second.Len())
}

func TestWatchlistParsing(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"watchlists":[{"id":3,"name":"tech","created_at":"2012-08-13T22:10:24Z","symbols":[{"id":1,"symbol":"AAPL"}]}]}`)
	})

	watchlists, err := client.Watchlists(context.Background())
	require.NoError(t, err)
	require.Len(t, watchlists, 1)
	assert.Equal(t, "tech", watchlists[0].Name)
	assert.Equal(t, 1, watchlists[0].Symbols.Len())
	assert.False(t, watchlists[0].CreatedAt.IsZero())
}

func TestStreamSymbolsValidatesCount(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := client.StreamSymbols(nil)
	assert.Error(t, err)

	_, err = client.StreamSymbols(make([]string, 11))
	assert.Error(t, err)

	_, err = client.StreamSymbols([]string{"AAPL", "MSFT"})
	assert.NoError(t, err)
}

func TestLiveStreamIsPlaceholder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	stream := stocktwits.NewLiveStream(client, nil)
	assert.ErrorIs(t, stream.Run(context.Background()), stocktwits.ErrStreamingUnsupported)
}

func TestEarningsCalendarFlattens(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2026-08-30", r.URL.Query().Get("date_from"))
		fmt.Fprint(w, `{"earnings":{"2026-09-01":{"stocks":[{"symbol":"AAPL","time":"16:30","when":"after_market"}]},"2026-08-31":{"stocks":[{"symbol":"MSFT","time":"08:00","when":"before_market"}]}}}`)
	})

	from := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	items, err := client.EarningsCalendar(context.Background(), from, from.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "MSFT", items[0].Symbol, "reports come back in calendar order")
	assert.Equal(t, "2026-08-31", items[0].Date)
	assert.Equal(t, "AAPL", items[1].Symbol)
}
