package sso

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dvc-ops/provgate/pkg/domain/interfaces"
	"github.com/dvc-ops/provgate/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// DefaultTimeout bounds one token exchange round-trip
const DefaultTimeout = 10 * time.Second

// Default lifetime applied when the token response omits expires_in
const defaultExpiresIn = 3600

// Client exchanges a user's own credentials for a provider access token via
// the password grant. The provider's exact failure reason is not
// distinguishable from the outside: any non-200 status, redirect, or non-JSON
// body is reported uniformly as an authentication failure.
type Client struct {
	httpClient *http.Client
}

// Option configures the Client
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client (used by tests)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a new SSO client
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			// A redirect from the token endpoint means the portal bounced
			// the request to a login page; never follow it.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ interfaces.SSOClient = (*Client)(nil)

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// Exchange performs a password-grant token request against the provider's
// SSO endpoint and returns the cached-ready token record.
func (c *Client) Exchange(ctx context.Context, provider *model.Provider, cred model.Credential) (*model.TokenRecord, error) {
	logger := ctxlog.From(ctx)

	if cred.Username == "" || cred.Password == "" {
		return nil, goerr.New("username and password are required",
			goerr.T(model.ErrTagAuthFailed),
			goerr.V("providerID", provider.ID))
	}

	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("client_id", "web-onegate")
	form.Set("username", cred.Username)
	form.Set("password", cred.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, provider.TokenURL(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build token request",
			goerr.V("providerID", provider.ID))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	issuedAt := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err, provider)
	}
	defer resp.Body.Close()

	// Success requires HTTP 200 and a JSON body; everything else (including
	// redirects to a login page) is an authentication failure.
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, goerr.New("token endpoint rejected credentials",
			goerr.T(model.ErrTagAuthFailed),
			goerr.V("providerID", provider.ID),
			goerr.V("status", resp.StatusCode),
			goerr.V("body", model.TruncateMessage(string(body))))
	}
	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		return nil, goerr.New("token endpoint returned non-JSON response",
			goerr.T(model.ErrTagAuthFailed),
			goerr.V("providerID", provider.ID),
			goerr.V("contentType", mediaType))
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, goerr.Wrap(err, "failed to decode token response",
			goerr.T(model.ErrTagMalformedResponse),
			goerr.V("providerID", provider.ID))
	}
	if token.AccessToken == "" {
		return nil, goerr.New("token response has no access_token",
			goerr.T(model.ErrTagMalformedResponse),
			goerr.V("providerID", provider.ID))
	}
	if token.ExpiresIn <= 0 {
		token.ExpiresIn = defaultExpiresIn
	}

	logger.Debug("token exchange succeeded",
		"providerID", provider.ID,
		"expiresIn", token.ExpiresIn,
	)

	return model.NewTokenRecord(
		provider.ID,
		token.AccessToken,
		token.RefreshToken,
		issuedAt,
		time.Duration(token.ExpiresIn)*time.Second,
	), nil
}

// classifyTransportError separates timeouts from other network failures so
// callers can tell a slow provider from an unreachable one.
func classifyTransportError(err error, provider *model.Provider) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return goerr.Wrap(err, "token request timed out",
			goerr.T(model.ErrTagTimeout),
			goerr.V("providerID", provider.ID))
	}
	return goerr.Wrap(err, "token endpoint unreachable",
		goerr.T(model.ErrTagUnreachable),
		goerr.V("providerID", provider.ID))
}
