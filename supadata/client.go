// Package supadata is the authenticated HTTP collaborator that talks to the
// Supadata REST API.
package supadata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	ierrors "github.com/cnosuke/mcp-supadata/internal/errors"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://api.supadata.ai/v1"

	// APIKeyParam is the query parameter the service reads the API key from.
	APIKeyParam = "x-api-key"
)

type Config struct {
	APIKey    string
	BaseURL   string
	Timeout   int // seconds
	UserAgent string
}

// Query holds request query parameters. Values are strings, numbers or booleans.
type Query map[string]any

// Values encodes q. Booleans become "true"/"false".
func (q Query) Values() url.Values {
	v := url.Values{}
	for k, val := range q {
		v.Set(k, fmt.Sprint(val))
	}
	return v
}

// String renders q with sorted keys, for logging.
func (q Query) String() string {
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, q[k]))
	}
	return strings.Join(parts, "&")
}

// Transport issues a GET against an API path and returns the decoded JSON body.
type Transport interface {
	Get(ctx context.Context, path string, q Query) (any, error)
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, path string, q Query) (any, error)

func (f TransportFunc) Get(ctx context.Context, path string, q Query) (any, error) {
	return f(ctx, path, q)
}

// Client implements Transport over HTTP, attaching the API key to every request.
type Client struct {
	client    *http.Client
	baseURL   string
	apiKey    string
	userAgent string
}

// NewClient creates a new Client.
func NewClient(cfg *Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("supadata API key is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	zap.S().Infow("creating new Supadata client",
		"base_url", baseURL,
		"timeout", cfg.Timeout,
		"user_agent", cfg.UserAgent)

	return &Client{
		client:    &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second},
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    cfg.APIKey,
		userAgent: cfg.UserAgent,
	}, nil
}

// Get calls baseURL+path with q and the API key as query parameters.
func (c *Client) Get(ctx context.Context, path string, q Query) (any, error) {
	values := q.Values()
	values.Set(APIKeyParam, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+values.Encode(), nil)
	if err != nil {
		return nil, ierrors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	zap.S().Debugw("calling Supadata API", "path", path, "query", q.String())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &ierrors.RemoteError{Message: transportMessage(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ierrors.RemoteError{Status: resp.StatusCode, Message: "failed to read response body: " + err.Error()}
	}

	zap.S().Debugw("response received",
		"path", path,
		"status", resp.StatusCode,
		"bytes", len(body),
		"content_type", resp.Header.Get("Content-Type"))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ierrors.RemoteError{Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, body)}
	}

	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, nil
	}
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &ierrors.RemoteError{Status: resp.StatusCode, Message: "malformed response: " + err.Error()}
	}
	return payload, nil
}

// transportMessage strips the request URL (which carries the API key) from
// transport errors.
func transportMessage(err error) string {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err.Error()
	}
	return err.Error()
}

// errorMessage picks a human-readable message out of an error response body.
func errorMessage(status int, body []byte) string {
	var e struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Details string `json:"details"`
	}
	if json.Unmarshal(body, &e) == nil {
		msg := e.Message
		if msg == "" {
			msg = e.Error
		}
		if e.Details != "" {
			if msg == "" {
				return e.Details
			}
			return msg + ": " + e.Details
		}
		if msg != "" {
			return msg
		}
	}
	if s := strings.TrimSpace(string(body)); s != "" {
		return s
	}
	return http.StatusText(status)
}
