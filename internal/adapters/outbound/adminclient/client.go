package adminclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultTimeout       = 5 * time.Second
	waitInitialInterval  = 100 * time.Millisecond
	waitMaxInterval      = 2 * time.Second
	maxResponseBodyBytes = 1 << 20
)

// Client talks to the management endpoints of a running process.
type Client struct {
	logger     *slog.Logger
	baseURL    *url.URL
	name       string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// New creates a client for the bean published as name at addr
// (http://host:port).
func New(logger *slog.Logger, addr, name string, opts ...Option) (*Client, error) {
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}

	baseURL, err := url.Parse(addr)
	if err != nil || baseURL.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
	}

	c := &Client{
		logger:     logger,
		baseURL:    baseURL,
		name:       name,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

type valueResponse struct {
	Value json.RawMessage `json:"value"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Ready reports whether the application completed startup.
func (c *Client) Ready(ctx context.Context) (bool, error) {
	return c.boolAttribute(ctx, "Ready")
}

// EmbeddedWebApplication reports whether the application runs an embedded web server.
func (c *Client) EmbeddedWebApplication(ctx context.Context) (bool, error) {
	return c.boolAttribute(ctx, "EmbeddedWebApplication")
}

// Property resolves key in the remote process. found is false when the key is unset.
func (c *Client) Property(ctx context.Context, key string) (string, bool, error) {
	var resp valueResponse

	err := c.do(ctx, http.MethodPost, c.beanPath("operations", "getProperty"),
		map[string][]string{"params": {key}}, &resp)
	if err != nil {
		return "", false, fmt.Errorf("get property %q: %w", key, err)
	}

	if len(resp.Value) == 0 || string(resp.Value) == "null" {
		return "", false, nil
	}

	var value string
	if err := json.Unmarshal(resp.Value, &value); err != nil {
		return "", false, fmt.Errorf("decode property %q: %w", key, err)
	}

	return value, true, nil
}

// Shutdown asks the remote process to stop. The server acknowledges before
// the shutdown completes.
func (c *Client) Shutdown(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, c.beanPath("operations", "shutdown"), nil, nil); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

// WaitReady polls Ready with exponential backoff until it reports true or
// timeout elapses. Unreachable or unregistered processes are retried.
func (c *Client) WaitReady(ctx context.Context, timeout time.Duration) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = waitInitialInterval
	b.MaxInterval = waitMaxInterval
	b.MaxElapsedTime = timeout

	attempt := 0

	op := func() error {
		attempt++

		ready, err := c.Ready(ctx)
		if err != nil {
			if errors.Is(err, ErrRejected) {
				return backoff.Permanent(err)
			}

			return err
		}

		if !ready {
			return ErrNotReady
		}

		return nil
	}

	notify := func(err error, next time.Duration) {
		c.logger.DebugContext(ctx, "application not ready yet",
			"attempt", attempt,
			"retryIn", next,
			"reason", err,
		)
	}

	if err := backoff.RetryNotify(op, backoff.WithContext(b, ctx), notify); err != nil {
		return fmt.Errorf("wait ready: %w", err)
	}

	return nil
}

func (c *Client) boolAttribute(ctx context.Context, attribute string) (bool, error) {
	var resp valueResponse

	if err := c.do(ctx, http.MethodGet, c.beanPath("attributes", attribute), nil, &resp); err != nil {
		return false, fmt.Errorf("get %s: %w", attribute, err)
	}

	var value bool
	if err := json.Unmarshal(resp.Value, &value); err != nil {
		return false, fmt.Errorf("decode %s: %w", attribute, err)
	}

	return value, nil
}

func (c *Client) beanPath(kind, member string) string {
	return "/management/beans/" + url.PathEscape(c.name) + "/" + kind + "/" + url.PathEscape(member)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader

	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}

		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var e errorResponse
		_ = json.Unmarshal(raw, &e)

		if e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}

		return &StatusError{Code: resp.StatusCode, Message: e.Error}
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
