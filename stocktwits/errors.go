package stocktwits

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrExhausted signals the logical end of a paginated sequence. It is a
	// normal termination condition, not a failure.
	ErrExhausted = errors.New("stocktwits: pagination exhausted")

	// ErrCannotPageBack is returned by Prev at the first page or cursor when
	// no earlier data is available.
	ErrCannotPageBack = errors.New("stocktwits: cannot page back, at first page")

	// ErrNoPagination is returned when a Cursor is requested over an
	// operation that does not perform pagination.
	ErrNoPagination = errors.New("stocktwits: operation does not perform pagination")

	// ErrInvalidPaginationMode is returned when an operation declares an
	// unrecognized pagination mode.
	ErrInvalidPaginationMode = errors.New("stocktwits: invalid pagination mode")

	// ErrAuthRequired is returned when an operation requires authentication
	// but the client has no auth handler attached.
	ErrAuthRequired = errors.New("stocktwits: operation requires authentication")

	// ErrStreamingUnsupported is returned by the placeholder Stream type.
	ErrStreamingUnsupported = errors.New("stocktwits: streaming transport is not implemented")
)

// TransportError means the underlying request could not be completed at all
// (network failure or timeout). It is surfaced to the caller immediately and
// never retried.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("stocktwits: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError is a non-2xx response from the remote service with its parsed
// error payload.
type APIError struct {
	StatusCode int
	Messages   []string
	Body       []byte
}

func (e *APIError) Error() string {
	if len(e.Messages) > 0 {
		return fmt.Sprintf("stocktwits: API error %d: %s", e.StatusCode, strings.Join(e.Messages, "; "))
	}
	return fmt.Sprintf("stocktwits: API error %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// RateLimit carries the quota headers the service returns on every response.
type RateLimit struct {
	Limit     int
	Remaining int
	Reset     time.Time
}

// RateLimitError is returned when the remote service reports quota
// exhaustion (HTTP 429). It carries the same shape as APIError so existing
// call sites that only inspect the status keep working.
type RateLimitError struct {
	APIError
	RateLimit RateLimit
}

// Unwrap exposes the embedded APIError so errors.As matches either type.
func (e *RateLimitError) Unwrap() error {
	return &e.APIError
}

// newAPIError parses the service's error envelope:
//
//	{"response": {"status": 429}, "errors": [{"message": "..."}]}
func newAPIError(statusCode int, body []byte, header http.Header) error {
	apiErr := APIError{
		StatusCode: statusCode,
		Body:       body,
	}

	var envelope struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		for _, item := range envelope.Errors {
			if item.Message != "" {
				apiErr.Messages = append(apiErr.Messages, item.Message)
			}
		}
	}

	if statusCode == http.StatusTooManyRequests {
		return &RateLimitError{
			APIError:  apiErr,
			RateLimit: parseRateLimit(header),
		}
	}
	return &apiErr
}

func parseRateLimit(header http.Header) RateLimit {
	var limit RateLimit
	limit.Limit, _ = strconv.Atoi(header.Get("X-RateLimit-Limit"))
	limit.Remaining, _ = strconv.Atoi(header.Get("X-RateLimit-Remaining"))
	if reset, err := strconv.ParseInt(header.Get("X-RateLimit-Reset"), 10, 64); err == nil && reset > 0 {
		limit.Reset = time.Unix(reset, 0)
	}
	return limit
}
