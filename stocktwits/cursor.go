package stocktwits

import (
	"context"
	"strconv"
)

// iterator is the page-granularity traversal capability shared by the three
// pagination variants. Termination is signaled with ErrExhausted, paging
// back before the first page with ErrCannotPageBack or ErrExhausted
// depending on the variant. A single iterator instance is not safe for
// concurrent use.
type iterator interface {
	next(ctx context.Context) (ResultSet, error)
	prev(ctx context.Context) (ResultSet, error)
}

type cursorConfig struct {
	startCursor int64
	pageLimit   int
	itemLimit   int
}

type CursorOption func(*cursorConfig)

// WithStartCursor starts a cursor-addressed traversal from the given opaque
// cursor instead of the beginning of the stream.
func WithStartCursor(cursor int64) CursorOption {
	return func(cfg *cursorConfig) {
		cfg.startCursor = cursor
	}
}

// WithPageLimit caps how many pages the traversal fetches before reporting
// exhaustion. Zero means unlimited.
func WithPageLimit(limit int) CursorOption {
	return func(cfg *cursorConfig) {
		cfg.pageLimit = limit
	}
}

// WithItemLimit caps how many items an id-addressed traversal fetches
// before reporting exhaustion. Zero means unlimited.
func WithItemLimit(limit int) CursorOption {
	return func(cfg *cursorConfig) {
		cfg.itemLimit = limit
	}
}

// Cursor is one pagination session over a bound operation. The variant is
// selected by the operation's declared pagination mode at construction
// time.
type Cursor struct {
	bound *BoundOperation
	it    iterator
}

// NewCursor wraps a bound operation in a pagination session. Operations
// declaring no pagination are rejected with ErrNoPagination, unrecognized
// modes with ErrInvalidPaginationMode.
func NewCursor(bound *BoundOperation, opts ...CursorOption) (*Cursor, error) {
	cfg := cursorConfig{
		// -1 addresses the beginning of a cursor stream; 0 would mean
		// "nothing further".
		startCursor: -1,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	var it iterator
	switch bound.op.Pagination {
	case PaginateNone:
		return nil, ErrNoPagination
	case PaginateCursor:
		it = &cursorIterator{
			bound:      bound,
			nextCursor: cfg.startCursor,
			pageLimit:  cfg.pageLimit,
		}
	case PaginateID:
		it = &idIterator{
			bound:     bound,
			pos:       -1,
			itemLimit: cfg.itemLimit,
		}
	case PaginatePage:
		it = &pageNumberIterator{
			bound:     bound,
			pageLimit: cfg.pageLimit,
		}
	default:
		return nil, ErrInvalidPaginationMode
	}
	return &Cursor{bound: bound, it: it}, nil
}

// Next fetches the following page. ErrExhausted signals the normal end of
// the sequence.
func (c *Cursor) Next(ctx context.Context) (ResultSet, error) {
	return c.it.next(ctx)
}

// Prev moves back one page.
func (c *Cursor) Prev(ctx context.Context) (ResultSet, error) {
	return c.it.prev(ctx)
}

// Items returns an item-granularity view over this cursor, flattening the
// fetched pages into one sequence. A positive limit caps the total number
// of items returned.
func (c *Cursor) Items(limit int) *ItemIterator {
	return &ItemIterator{cursor: c, limit: limit, idx: -1}
}

// cursorIterator pages through endpoints addressed by opaque next/prev
// cursors extracted from the response envelope.
type cursorIterator struct {
	bound *BoundOperation

	nextCursor int64
	prevCursor int64
	fetched    int
	pageLimit  int
}

func (it *cursorIterator) next(ctx context.Context) (ResultSet, error) {
	// A zero next cursor means the previous page reported the end of the
	// stream; no network call is made.
	if it.nextCursor == 0 {
		return ResultSet{}, ErrExhausted
	}
	if it.pageLimit > 0 && it.fetched >= it.pageLimit {
		return ResultSet{}, ErrExhausted
	}
	page, err := it.fetch(ctx, it.nextCursor)
	if err != nil {
		return ResultSet{}, err
	}
	if page.Len() == 0 {
		return ResultSet{}, ErrExhausted
	}
	it.fetched++
	return page, nil
}

func (it *cursorIterator) prev(ctx context.Context) (ResultSet, error) {
	if it.prevCursor == 0 {
		return ResultSet{}, ErrCannotPageBack
	}
	return it.fetch(ctx, it.prevCursor)
}

func (it *cursorIterator) fetch(ctx context.Context, cursor int64) (ResultSet, error) {
	payload, err := it.bound.Invoke(ctx, map[string]string{
		"cursor": strconv.FormatInt(cursor, 10),
	})
	if err != nil {
		return ResultSet{}, err
	}
	if payload.Cursors != nil {
		it.nextCursor = payload.Cursors.Next
		it.prevCursor = payload.Cursors.Prev
	} else {
		it.nextCursor = 0
	}
	return payload.Results, nil
}

// idIterator pages through endpoints addressed by a decreasing message id
// upper bound. Fetched pages are kept in history so paging back replays
// them without a new request.
type idIterator struct {
	bound *BoundOperation

	history   []ResultSet
	pos       int // index of the current page in history, -1 before the first fetch
	items     int
	itemLimit int
	done      bool
}

func (it *idIterator) next(ctx context.Context) (ResultSet, error) {
	// Replay forward through history after a prev().
	if it.pos < len(it.history)-1 {
		it.pos++
		return it.history[it.pos], nil
	}
	if it.done {
		return ResultSet{}, ErrExhausted
	}
	if it.itemLimit > 0 && it.items >= it.itemLimit {
		return ResultSet{}, ErrExhausted
	}

	params := map[string]string{}
	if len(it.history) > 0 {
		if maxID, ok := it.history[len(it.history)-1].MaxID(); ok {
			params["max"] = strconv.FormatInt(maxID, 10)
		}
	}
	payload, err := it.bound.Invoke(ctx, params)
	if err != nil {
		return ResultSet{}, err
	}
	if payload.Results.Len() == 0 {
		it.done = true
		return ResultSet{}, ErrExhausted
	}
	it.items += payload.Results.Len()
	it.history = append(it.history, payload.Results)
	it.pos = len(it.history) - 1
	return payload.Results, nil
}

// prev replays the preceding page from history. There is no way to go
// newer than the first fetched page, so paging back there is exhaustion
// rather than an error.
func (it *idIterator) prev(_ context.Context) (ResultSet, error) {
	if it.pos <= 0 {
		return ResultSet{}, ErrExhausted
	}
	it.pos--
	return it.history[it.pos], nil
}

// pageNumberIterator pages through endpoints addressed by plain zero-based
// page numbers. Nothing is cached; paging back re-fetches.
type pageNumberIterator struct {
	bound *BoundOperation

	page      int // the page number the following next() will request
	fetched   int
	pageLimit int
	done      bool
}

func (it *pageNumberIterator) next(ctx context.Context) (ResultSet, error) {
	if it.done {
		return ResultSet{}, ErrExhausted
	}
	if it.pageLimit > 0 && it.fetched >= it.pageLimit {
		return ResultSet{}, ErrExhausted
	}
	payload, err := it.bound.Invoke(ctx, map[string]string{
		"page": strconv.Itoa(it.page),
	})
	if err != nil {
		return ResultSet{}, err
	}
	if payload.Results.Len() == 0 {
		it.done = true
		return ResultSet{}, ErrExhausted
	}
	it.page++
	it.fetched++
	return payload.Results, nil
}

func (it *pageNumberIterator) prev(ctx context.Context) (ResultSet, error) {
	// it.page is one past the current page; the current page being 0 means
	// there is nothing earlier.
	if it.page <= 1 {
		return ResultSet{}, ErrCannotPageBack
	}
	it.page -= 2
	it.done = false
	return it.next(ctx)
}

// ItemIterator flattens a Cursor's pages into a single sequence of items.
// Advancing past the buffered page fetches the following one; moving back
// past its start re-fetches the previous page.
type ItemIterator struct {
	cursor *Cursor

	page    ResultSet
	idx     int
	started bool

	count int
	limit int
}

// Next returns the following item, fetching a new page when the buffered
// one is spent.
func (it *ItemIterator) Next(ctx context.Context) (Model, error) {
	if it.limit > 0 && it.count >= it.limit {
		return nil, ErrExhausted
	}
	if !it.started || it.idx >= it.page.Len()-1 {
		page, err := it.cursor.Next(ctx)
		if err != nil {
			return nil, err
		}
		it.page = page
		it.idx = -1
		it.started = true
	}
	it.idx++
	it.count++
	return it.page.Items[it.idx], nil
}

// Prev steps back one item, crossing page boundaries through the
// underlying cursor.
func (it *ItemIterator) Prev(ctx context.Context) (Model, error) {
	if it.started && it.idx > 0 {
		it.idx--
		return it.page.Items[it.idx], nil
	}
	page, err := it.cursor.Prev(ctx)
	if err != nil {
		return nil, err
	}
	it.page = page
	it.idx = page.Len() - 1
	it.started = true
	if it.idx < 0 {
		return nil, ErrExhausted
	}
	return it.page.Items[it.idx], nil
}
