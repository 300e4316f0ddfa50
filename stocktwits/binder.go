package stocktwits

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaginationMode is how an operation addresses its pages, if at all.
type PaginationMode int

const (
	PaginateNone PaginationMode = iota
	// PaginateCursor: the response envelope carries opaque next/prev
	// cursors.
	PaginateCursor
	// PaginateID: chunks are addressed by a monotonically decreasing
	// message id upper bound.
	PaginateID
	// PaginatePage: plain zero-based page numbers.
	PaginatePage
)

// Operation is the declarative descriptor of one remote endpoint.
type Operation struct {
	Name          string
	Method        string
	Path          string // template, e.g. "/streams/symbol/{id}.json"
	Host          Host
	Kind          Kind
	List          bool
	AllowedParams []string
	RequireAuth   bool
	PartnerLevel  bool
	Pagination    PaginationMode
}

func (op Operation) allows(param string) bool {
	for _, allowed := range op.AllowedParams {
		if allowed == param {
			return true
		}
	}
	return false
}

// BoundOperation is an operation bound to a client with its path arguments
// and fixed parameters filled in. Invoking it performs the HTTP call and
// parses the response; a paginating iterator re-invokes it with updated
// paging parameters.
type BoundOperation struct {
	client   *Client
	op       Operation
	pathArgs map[string]string
	params   map[string]string
}

// Bind binds an arbitrary operation descriptor to this client. It is the
// extension point for endpoints the typed surface does not cover.
func (c *Client) Bind(op Operation, pathArgs map[string]string, params map[string]string) *BoundOperation {
	return c.bind(op, pathArgs, params)
}

func (c *Client) bind(op Operation, pathArgs map[string]string, params map[string]string) *BoundOperation {
	return &BoundOperation{
		client:   c,
		op:       op,
		pathArgs: pathArgs,
		params:   params,
	}
}

// call executes an operation immediately.
func (c *Client) call(ctx context.Context, op Operation, pathArgs map[string]string, params map[string]string) (*Payload, error) {
	return c.bind(op, pathArgs, params).Invoke(ctx, nil)
}

// Operation returns the descriptor this bound operation was created from.
func (b *BoundOperation) Operation() Operation {
	return b.op
}

// Invoke performs the remote call with the bound parameters merged with
// extra ones. Parameters outside the operation's accepted set are rejected
// before any network activity.
func (b *BoundOperation) Invoke(ctx context.Context, extra map[string]string) (*Payload, error) {
	c := b.client
	op := b.op

	params := make(map[string]string, len(b.params)+len(extra))
	for k, v := range b.params {
		params[k] = v
	}
	for k, v := range extra {
		params[k] = v
	}
	for param := range params {
		if !op.allows(param) {
			return nil, fmt.Errorf("stocktwits: parameter %q is not accepted by %s", param, op.Name)
		}
	}

	endpoint := c.baseURL(op.Host) + expandPath(op.Path, b.pathArgs)
	requestID := uuid.NewString()
	log := c.logger.With(
		zap.String("operation", op.Name),
		zap.String("request_id", requestID),
	)

	cacheKey := ""
	if op.Method == http.MethodGet && c.cache != nil {
		cacheKey = endpoint + "?" + canonicalQuery(params)
		if body, ok, err := c.cache.Get(ctx, cacheKey); err != nil {
			log.Warn("cache lookup failed", zap.Error(err))
		} else if ok {
			log.Debug("serving response from cache")
			return c.parser.Parse(c, op, body)
		}
	}

	req := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(params)

	if op.RequireAuth {
		if c.auth == nil {
			return nil, ErrAuthRequired
		}
		if err := c.auth.Apply(req); err != nil {
			return nil, fmt.Errorf("stocktwits: applying auth: %w", err)
		}
	}

	var (
		resp *resty.Response
		err  error
	)
	switch op.Method {
	case http.MethodPost:
		resp, err = req.Post(endpoint)
	default:
		resp, err = req.Get(endpoint)
	}
	if err != nil {
		log.Debug("request failed", zap.Error(err))
		return nil, &TransportError{Op: op.Method, URL: endpoint, Err: err}
	}

	log.Debug("request finished",
		zap.Int("status_code", resp.StatusCode()),
		zap.Int("body_bytes", len(resp.Body())),
	)

	if resp.StatusCode() >= 400 {
		return nil, newAPIError(resp.StatusCode(), resp.Body(), resp.Header())
	}

	if cacheKey != "" {
		if err := c.cache.Set(ctx, cacheKey, resp.Body(), c.cacheTTL); err != nil {
			log.Warn("cache store failed", zap.Error(err))
		}
	}

	return c.parser.Parse(c, op, resp.Body())
}

// expandPath fills {placeholder} segments with their bound arguments.
func expandPath(path string, args map[string]string) string {
	for name, value := range args {
		path = strings.ReplaceAll(path, "{"+name+"}", url.PathEscape(value))
	}
	return path
}

// canonicalQuery renders params in a stable order so cache keys are
// deterministic.
func canonicalQuery(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var q strings.Builder
	for i, k := range keys {
		if i > 0 {
			q.WriteByte('&')
		}
		q.WriteString(url.QueryEscape(k))
		q.WriteByte('=')
		q.WriteString(url.QueryEscape(params[k]))
	}
	return q.String()
}
