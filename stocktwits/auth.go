package stocktwits

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
)

// TokenAuth attaches a previously obtained access token as a bearer
// credential.
type TokenAuth struct {
	AccessToken string
}

func (a TokenAuth) Apply(req *resty.Request) error {
	if a.AccessToken == "" {
		return ErrAuthRequired
	}
	req.SetAuthToken(a.AccessToken)
	return nil
}

// OAuthEndpoint holds the service's authorization-code endpoints.
var OAuthEndpoint = oauth2.Endpoint{
	AuthURL:  defaultAPIHost + defaultAPIRoot + "/oauth/authorize",
	TokenURL: defaultAPIHost + defaultAPIRoot + "/oauth/token",
}

// WebAppAuth drives the interactive authorization-code flow: the operator
// opens the authorization URL in a browser, approves the application, and
// pastes the resulting redirect URL back so its code can be exchanged for
// an access token. Once authorized it acts as the client's AuthHandler.
type WebAppAuth struct {
	config *oauth2.Config
	token  *oauth2.Token
}

func NewWebAppAuth(clientID, clientSecret, redirectURI string, scopes []string) *WebAppAuth {
	return &WebAppAuth{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       scopes,
			Endpoint:     OAuthEndpoint,
		},
	}
}

// AuthorizationURL is where the operator approves the application.
func (a *WebAppAuth) AuthorizationURL() string {
	return a.config.AuthCodeURL("")
}

// Authorize prints the authorization URL to out and blocks on in until the
// operator pastes the redirect URL, then exchanges its code for a token.
func (a *WebAppAuth) Authorize(ctx context.Context, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "Open this URL in a browser and authorize the application:\n\n  %s\n\n", a.AuthorizationURL())
	fmt.Fprint(out, "Paste the redirect URL here: ")

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("stocktwits: reading redirect URL: %w", err)
		}
		return fmt.Errorf("stocktwits: no redirect URL provided")
	}
	return a.Exchange(ctx, strings.TrimSpace(scanner.Text()))
}

// Exchange extracts the authorization code from a redirect URL and trades
// it for an access token.
func (a *WebAppAuth) Exchange(ctx context.Context, redirectURL string) error {
	parsed, err := url.Parse(redirectURL)
	if err != nil {
		return fmt.Errorf("stocktwits: malformed redirect URL: %w", err)
	}
	code := parsed.Query().Get("code")
	if code == "" {
		return fmt.Errorf("stocktwits: redirect URL carries no authorization code")
	}
	token, err := a.config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("stocktwits: exchanging authorization code: %w", err)
	}
	a.token = token
	return nil
}

// Token returns the obtained access token, nil before authorization.
func (a *WebAppAuth) Token() *oauth2.Token {
	return a.token
}

func (a *WebAppAuth) Apply(req *resty.Request) error {
	if a.token == nil {
		return ErrAuthRequired
	}
	req.SetAuthToken(a.token.AccessToken)
	return nil
}
