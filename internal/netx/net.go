// Package netx is the HTTP transport shared by the identity adapter and the
// API client. It performs a single round trip per call, reads the whole
// body, and turns every transport-level failure into common.ErrNetwork.
// An optional circuit breaker can short-circuit calls to a failing host.
package netx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cotrip/cotrip/internal/common"
	"github.com/cotrip/cotrip/internal/logging"
	"github.com/sony/gobreaker/v2"
)

const (
	DefaultTimeout = 30 * time.Second
	maxBodySize    = 4 << 20
)

// Config holds transport settings. A zero Timeout means DefaultTimeout.
// A nil Transport means http.DefaultTransport. A nil Breaker disables the
// circuit breaker.
type Config struct {
	Timeout   time.Duration
	Transport http.RoundTripper
	Breaker   *BreakerConfig
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Empty reports a body with no content besides whitespace.
func (r *Response) Empty() bool {
	return len(bytes.TrimSpace(r.Body)) == 0
}

type Client struct {
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*Response]
	log     logging.Logger
}

func New(cfg Config, log logging.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	c := &Client{
		http: &http.Client{Transport: transport, Timeout: timeout},
		log:  log.With("component", "netx"),
	}
	if cfg.Breaker != nil {
		c.breaker = newBreaker(*cfg.Breaker, c.log)
	}
	return c
}

// NewJSONRequest builds a request with JSON headers. A nil body sends none.
func NewJSONRequest(ctx context.Context, method, url string, body any) (*http.Request, error) {
	var r io.Reader = http.NoBody
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, r)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", method, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// Do performs the request once. Any status code is a successful round trip;
// only transport failures and an open breaker return an error, always
// wrapping common.ErrNetwork.
func (c *Client) Do(req *http.Request) (*Response, error) {
	if c.breaker == nil {
		return c.roundTrip(req)
	}

	var resp *Response
	_, err := c.breaker.Execute(func() (*Response, error) {
		r, err := c.roundTrip(req)
		if err != nil {
			return nil, err
		}
		resp = r
		if r.StatusCode >= http.StatusInternalServerError {
			return r, errServerStatus
		}
		return r, nil
	})
	if resp != nil {
		return resp, nil
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %s %s: %w", common.ErrNetwork, req.Method, req.URL.Path, err)
	}
	return nil, err
}

func (c *Client) roundTrip(req *http.Request) (*Response, error) {
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(req.Context(), "http request failed",
			"method", req.Method, "path", req.URL.Path, "error", err)
		return nil, fmt.Errorf("%w: %s %s: %w", common.ErrNetwork, req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s %s body: %w", common.ErrNetwork, req.Method, req.URL.Path, err)
	}

	c.log.Debug(req.Context(), "http request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

type errorBody struct {
	Message          string          `json:"message"`
	Msg              string          `json:"msg"`
	ErrorDescription string          `json:"error_description"`
	Error            json.RawMessage `json:"error"`
}

// ErrorMessage extracts a human-readable message from an error body.
// It understands {"error":{"message":..}}, {"message":..}, {"msg":..},
// {"error_description":..} and {"error":".."}; short plain-text bodies are
// returned as is. Otherwise fallback is returned.
func ErrorMessage(body []byte, fallback string) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return fallback
	}

	var eb errorBody
	if err := json.Unmarshal(trimmed, &eb); err != nil {
		if trimmed[0] != '{' && trimmed[0] != '[' && len(trimmed) <= 256 {
			return string(trimmed)
		}
		return fallback
	}

	var nested struct {
		Message string `json:"message"`
	}
	var plain string
	switch {
	case len(eb.Error) > 0 && json.Unmarshal(eb.Error, &nested) == nil && nested.Message != "":
		return nested.Message
	case eb.Message != "":
		return eb.Message
	case eb.Msg != "":
		return eb.Msg
	case eb.ErrorDescription != "":
		return eb.ErrorDescription
	case len(eb.Error) > 0 && json.Unmarshal(eb.Error, &plain) == nil && plain != "":
		return plain
	}
	return fallback
}

// StatusText returns the reason phrase of r, e.g. "Not Found".
func StatusText(r *Response) string {
	if text := http.StatusText(r.StatusCode); text != "" {
		return text
	}
	return strings.TrimSpace(r.Status)
}
