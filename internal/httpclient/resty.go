package httpclient

import (
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// NewRestyClient returns a new resty client with the given request timeout.
// If requestTimeout is 0, no timeout will be set. Failed requests are never
// retried automatically; transport failures surface to the caller.
func NewRestyClient(requestTimeout time.Duration, log *zap.Logger) *resty.Client {
	client := resty.New()

	if requestTimeout > 0 {
		client.SetTimeout(requestTimeout)
	}

	if log != nil {
		client.OnError(func(req *resty.Request, err error) {
			log.Debug("request failed",
				zap.String("url", req.URL),
				zap.Error(err),
			)
		})
	}

	return client
}
