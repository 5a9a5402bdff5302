package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/dvc-ops/provgate/pkg/domain/interfaces"
	"github.com/dvc-ops/provgate/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// Lookups are cheap reads; creation/attach mutate remote state and get a
// longer bound.
const (
	LookupTimeout   = 10 * time.Second
	MutationTimeout = 30 * time.Second
)

// Client talks to one provider's account/organization API. Instances are
// bound to a single registry entry and safe for concurrent use.
type Client struct {
	provider   *model.Provider
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

// New creates an API client for one provider
func New(p *model.Provider, opts ...Option) *Client {
	c := &Client{
		provider:   p,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ interfaces.ProviderAPI = (*Client)(nil)

// Factory returns a ProviderAPIFactory using default options
func Factory() interfaces.ProviderAPIFactory {
	return func(p *model.Provider) interfaces.ProviderAPI {
		return New(p)
	}
}

func (c *Client) endpoint(path string) string {
	return strings.TrimRight(c.provider.BaseURL, "/") + path
}

// doJSON issues one authenticated request with the given timeout and returns
// the raw body. Non-2xx statuses become errors carrying a truncated body
// preview; transport failures are classified as timeout or unreachable.
func (c *Client) doJSON(ctx context.Context, method, url string, payload any, accessToken string, timeout time.Duration) ([]byte, int, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, goerr.Wrap(err, "failed to encode request payload",
				goerr.V("providerID", c.provider.ID))
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, 0, goerr.Wrap(err, "failed to build request",
			goerr.V("providerID", c.provider.ID),
			goerr.V("url", url))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, 0, goerr.Wrap(err, "provider request timed out",
				goerr.T(model.ErrTagTimeout),
				goerr.V("providerID", c.provider.ID),
				goerr.V("url", url))
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, 0, goerr.Wrap(err, "provider request timed out",
				goerr.T(model.ErrTagTimeout),
				goerr.V("providerID", c.provider.ID),
				goerr.V("url", url))
		}
		return nil, 0, goerr.Wrap(err, "provider unreachable",
			goerr.T(model.ErrTagUnreachable),
			goerr.V("providerID", c.provider.ID),
			goerr.V("url", url))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, resp.StatusCode, goerr.Wrap(err, "failed to read provider response",
			goerr.T(model.ErrTagMalformedResponse),
			goerr.V("providerID", c.provider.ID))
	}
	return raw, resp.StatusCode, nil
}
