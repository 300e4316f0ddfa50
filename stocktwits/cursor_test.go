package stocktwits_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/im-n1/rug/internal/httpclient"
	"github.com/im-n1/rug/stocktwits"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...stocktwits.ClientOption) *stocktwits.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	opts = append([]stocktwits.ClientOption{
		stocktwits.WithAPIHost(server.URL),
		stocktwits.WithAPIRoot(""),
		stocktwits.WithQLHost(server.URL),
		stocktwits.WithAuth(stocktwits.TokenAuth{AccessToken: "test-token"}),
	}, opts...)
	return stocktwits.NewClient(httpclient.NewRestyClient(0, nil), opts...)
}

func TestNewCursorValidatesPaginationMode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := stocktwits.NewCursor(client.StreamSymbol("AAPL"))
	assert.NoError(t, err)

	oneShot := client.Bind(stocktwits.Operation{Name: "messages.show", Kind: stocktwits.KindMessage}, nil, nil)
	_, err = stocktwits.NewCursor(oneShot)
	assert.ErrorIs(t, err, stocktwits.ErrNoPagination)

	bogus := client.Bind(stocktwits.Operation{Name: "bogus", Pagination: stocktwits.PaginationMode(99)}, nil, nil)
	_, err = stocktwits.NewCursor(bogus)
	assert.ErrorIs(t, err, stocktwits.ErrInvalidPaginationMode)
}

func TestCursorIteratorStartsAtMinusOne(t *testing.T) {
	var cursors []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		cursors = append(cursors, r.URL.Query().Get("cursor"))
		fmt.Fprint(w, `{"results":[{"id":10},{"id":9}],"cursor":{"more":true,"since":10,"max":8}}`)
	})

	cursor, err := stocktwits.NewCursor(client.Notifications())
	require.NoError(t, err)

	page, err := cursor.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, page.Len())
	require.Len(t, cursors, 1)
	assert.Equal(t, "-1", cursors[0], "a fresh traversal starts from the sentinel cursor")

	_, err = cursor.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "8", cursors[1], "the next fetch uses the returned max cursor")
}

func TestCursorIteratorExhaustsWithoutNetworkCall(t *testing.T) {
	requests := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, `{"results":[{"id":10}],"cursor":{"more":false,"since":10,"max":8}}`)
	})

	cursor, err := stocktwits.NewCursor(client.Notifications())
	require.NoError(t, err)

	_, err = cursor.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, requests)

	// The envelope said there is nothing further; no request may be made.
	_, err = cursor.Next(context.Background())
	assert.ErrorIs(t, err, stocktwits.ErrExhausted)
	assert.Equal(t, 1, requests)
}

func TestCursorIteratorCannotPageBackAtStart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	cursor, err := stocktwits.NewCursor(client.Notifications())
	require.NoError(t, err)

	_, err = cursor.Prev(context.Background())
	assert.ErrorIs(t, err, stocktwits.ErrCannotPageBack)
}

func TestIDIteratorPropagatesMaxAndReplaysHistory(t *testing.T) {
	var maxParams []string
	requests := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		maxParams = append(maxParams, r.URL.Query().Get("max"))
		switch requests {
		case 1:
			fmt.Fprint(w, `{"messages":[{"id":20},{"id":19}]}`)
		case 2:
			fmt.Fprint(w, `{"messages":[{"id":17},{"id":15}]}`)
		default:
			fmt.Fprint(w, `{"messages":[]}`)
		}
	})

	cursor, err := stocktwits.NewCursor(client.StreamSymbol("AAPL"))
	require.NoError(t, err)
	ctx := context.Background()

	first, err := cursor.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", maxParams[0], "the first fetch carries no upper bound")

	second, err := cursor.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "18", maxParams[1], "upper bound is the smallest id of the previous page minus one")

	// Going back replays the first page from history without a request.
	replayed, err := cursor.Prev(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.Items, replayed.Items)
	assert.Equal(t, 2, requests)

	// And forward again returns the cached second page.
	replayed, err = cursor.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.Items, replayed.Items)
	assert.Equal(t, 2, requests)

	// An empty page terminates the sequence.
	_, err = cursor.Next(ctx)
	assert.ErrorIs(t, err, stocktwits.ErrExhausted)
}

func TestIDIteratorPrevAtFirstPageIsExhausted(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"messages":[{"id":20}]}`)
	})

	cursor, err := stocktwits.NewCursor(client.StreamSymbol("AAPL"))
	require.NoError(t, err)

	_, err = cursor.Next(context.Background())
	require.NoError(t, err)

	// There is no way to go newer than the first fetched page.
	_, err = cursor.Prev(context.Background())
	assert.ErrorIs(t, err, stocktwits.ErrExhausted)
}

func TestPageIteratorCountsFromZero(t *testing.T) {
	var pages []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		pages = append(pages, r.URL.Query().Get("page"))
		fmt.Fprint(w, `{"results":[{"id":1}]}`)
	})

	cursor, err := stocktwits.NewCursor(client.SearchSymbols("apple"))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = cursor.Next(ctx)
	require.NoError(t, err)
	_, err = cursor.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1"}, pages)

	// Paging back re-fetches page 0.
	_, err = cursor.Prev(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0", pages[2])
}

func TestPageIteratorPrevAtPageZero(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results":[{"id":1}]}`)
	})

	cursor, err := stocktwits.NewCursor(client.SearchSymbols("apple"))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = cursor.Prev(ctx)
	assert.ErrorIs(t, err, stocktwits.ErrCannotPageBack)

	_, err = cursor.Next(ctx)
	require.NoError(t, err)
	_, err = cursor.Prev(ctx)
	assert.ErrorIs(t, err, stocktwits.ErrCannotPageBack, "page 0 is still the current page")
}

func TestPageIteratorRespectsPageLimit(t *testing.T) {
	requests := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, `{"results":[{"id":1}]}`)
	})

	cursor, err := stocktwits.NewCursor(client.SearchSymbols("apple"), stocktwits.WithPageLimit(2))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = cursor.Next(ctx)
	require.NoError(t, err)
	_, err = cursor.Next(ctx)
	require.NoError(t, err)
	_, err = cursor.Next(ctx)
	assert.ErrorIs(t, err, stocktwits.ErrExhausted)
	assert.Equal(t, 2, requests)
}

func TestItemIteratorFlattensPages(t *testing.T) {
	requests := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		switch requests {
		case 1:
			fmt.Fprint(w, `{"messages":[{"id":20},{"id":19}]}`)
		case 2:
			fmt.Fprint(w, `{"messages":[{"id":18}]}`)
		default:
			fmt.Fprint(w, `{"messages":[]}`)
		}
	})

	cursor, err := stocktwits.NewCursor(client.StreamSymbol("AAPL"))
	require.NoError(t, err)
	items := cursor.Items(0)
	ctx := context.Background()

	var ids []int64
	for {
		item, err := items.Next(ctx)
		if err != nil {
			assert.ErrorIs(t, err, stocktwits.ErrExhausted)
			break
		}
		id, ok := item.ItemID()
		require.True(t, ok)
		ids = append(ids, id)
	}
	assert.Equal(t, []int64{20, 19, 18}, ids)
}

func TestItemIteratorHonorsLimit(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"messages":[{"id":20},{"id":19},{"id":18}]}`)
	})

	cursor, err := stocktwits.NewCursor(client.StreamSymbol("AAPL"))
	require.NoError(t, err)
	items := cursor.Items(2)
	ctx := context.Background()

	_, err = items.Next(ctx)
	require.NoError(t, err)
	_, err = items.Next(ctx)
	require.NoError(t, err)
	_, err = items.Next(ctx)
	assert.ErrorIs(t, err, stocktwits.ErrExhausted)
}

func TestItemIteratorStepsBackWithinPage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"messages":[{"id":20},{"id":19}]}`)
	})

	cursor, err := stocktwits.NewCursor(client.StreamSymbol("AAPL"))
	require.NoError(t, err)
	items := cursor.Items(0)
	ctx := context.Background()

	first, err := items.Next(ctx)
	require.NoError(t, err)
	_, err = items.Next(ctx)
	require.NoError(t, err)

	back, err := items.Prev(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, back)
}
