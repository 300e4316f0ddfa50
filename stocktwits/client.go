// Package stocktwits is a client for the StockTwits REST API, plus a handful
// of unofficial endpoints that need no authorization.
//
// Operations are declared as descriptors (method, path template, accepted
// parameters, auth requirement, pagination mode). Paginated operations are
// returned as bound operations and wrapped into a Cursor for traversal;
// everything else executes immediately and returns typed models.
//
// Rate limiting: unauthenticated calls are allowed 200 requests per hour per
// IP, authenticated calls 400 per access token. The client does not pace
// requests itself; quota exhaustion surfaces as *RateLimitError.
package stocktwits

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/im-n1/rug/cache"
)

// Host selects which of the service's hostnames an operation talks to.
type Host int

const (
	HostAPI Host = iota
	HostQL
	HostRooms
	HostAvatars
	HostCharts
	HostAssets
)

const (
	defaultAPIHost     = "https://api.stocktwits.com"
	defaultAPIRoot     = "/api/2"
	defaultQLHost      = "https://ql.stocktwits.com"
	defaultRoomsHost   = "https://roomapi.stocktwits.com"
	defaultAvatarsHost = "https://avatars.stocktwits.com"
	defaultChartsHost  = "https://charts.stocktwits.com"
	defaultAssetsHost  = "https://assets.stocktwits.com"
)

// AuthHandler attaches a credential to an outgoing request.
type AuthHandler interface {
	Apply(req *resty.Request) error
}

type Client struct {
	httpClient *resty.Client
	logger     *zap.Logger
	auth       AuthHandler
	parser     Parser
	factory    *ModelFactory
	cache      cache.Cache
	cacheTTL   time.Duration

	apiHost     string
	apiRoot     string
	qlHost      string
	roomsHost   string
	avatarsHost string
	chartsHost  string
	assetsHost  string
}

type ClientOption func(*Client)

func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithAuth attaches an auth handler used by operations requiring
// authentication.
func WithAuth(auth AuthHandler) ClientOption {
	return func(c *Client) {
		c.auth = auth
	}
}

// WithParser replaces the default model parser.
func WithParser(parser Parser) ClientOption {
	return func(c *Client) {
		c.parser = parser
	}
}

// WithFactory replaces the model factory consulted for nested parsing.
func WithFactory(factory *ModelFactory) ClientOption {
	return func(c *Client) {
		c.factory = factory
	}
}

// WithCache makes GET responses be served from and stored into the given
// cache for the given TTL.
func WithCache(responseCache cache.Cache, ttl time.Duration) ClientOption {
	return func(c *Client) {
		c.cache = responseCache
		c.cacheTTL = ttl
	}
}

func WithAPIHost(host string) ClientOption {
	return func(c *Client) {
		c.apiHost = host
	}
}

func WithAPIRoot(root string) ClientOption {
	return func(c *Client) {
		c.apiRoot = root
	}
}

func WithQLHost(host string) ClientOption {
	return func(c *Client) {
		c.qlHost = host
	}
}

func WithRoomsHost(host string) ClientOption {
	return func(c *Client) {
		c.roomsHost = host
	}
}

// NewClient returns an API client. With no auth handler attached only the
// operations not requiring authentication are usable.
func NewClient(httpClient *resty.Client, opts ...ClientOption) *Client {
	c := &Client{
		httpClient:  httpClient,
		logger:      zap.NewNop(),
		apiHost:     defaultAPIHost,
		apiRoot:     defaultAPIRoot,
		qlHost:      defaultQLHost,
		roomsHost:   defaultRoomsHost,
		avatarsHost: defaultAvatarsHost,
		chartsHost:  defaultChartsHost,
		assetsHost:  defaultAssetsHost,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.factory == nil {
		c.factory = NewModelFactory()
	}
	if c.parser == nil {
		c.parser = NewModelParser(c.factory)
	}
	return c
}

// Factory returns the client's active model factory. Consumers may register
// overrides on it at any time.
func (c *Client) Factory() *ModelFactory {
	return c.factory
}

// AvatarURL returns the CDN location of a user's avatar image.
func (c *Client) AvatarURL(userID int64) string {
	return fmt.Sprintf("%s/avatars/%d/thumb-%d.png", c.baseURL(HostAvatars), userID, userID)
}

// ChartURL returns the CDN location of a chart attached to a message.
func (c *Client) ChartURL(messageID int64, filename string) string {
	return fmt.Sprintf("%s/images/original/%d/%s", c.baseURL(HostCharts), messageID, filename)
}

func (c *Client) baseURL(host Host) string {
	switch host {
	case HostQL:
		return c.qlHost
	case HostRooms:
		return c.roomsHost
	case HostAvatars:
		return c.avatarsHost + "/production"
	case HostCharts:
		return c.chartsHost + "/production"
	case HostAssets:
		return c.assetsHost
	default:
		return c.apiHost + c.apiRoot
	}
}
