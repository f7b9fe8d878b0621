package client

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// Interface is the fetcher the geocoder and stop locator depend on.
type Interface interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type Client struct {
	httpClient *http.Client
	clock      clockwork.Clock
	FetchFunc  func(ctx context.Context, url string) ([]byte, error)
}

type Options struct {
	// Timeout of zero leaves the transport default in place (no client-side timeout).
	Timeout time.Duration
	Clock   clockwork.Clock
}

func New(opts Options) *Client {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		clock: opts.Clock,
	}
}

// Fetch issues exactly one GET request and returns the body of a 200 response.
// There are no retries. Any other status yields an *HTTPStatusError without the
// body being read; connection-level failures yield a *TransportError.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if c.FetchFunc != nil {
		return c.FetchFunc(ctx, rawURL)
	}

	logger := zerolog.Ctx(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, NewInvalidURLError(redactURL(rawURL), err)
	}

	start := c.clock.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Debug().Err(err).Str("url", redactURL(rawURL)).Msg("GET failed")
		return nil, NewTransportError(rawURL, err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	logger.Debug().
		Str("url", redactURL(rawURL)).
		Int("status", resp.StatusCode).
		Dur("elapsed", c.clock.Since(start)).
		Msg("GET completed")

	if resp.StatusCode != http.StatusOK {
		return nil, NewHTTPStatusError(rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewTransportError(rawURL, err)
	}

	return body, nil
}
