package netx

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cotrip/cotrip/internal/common"
	"github.com/cotrip/cotrip/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_ReturnsFullyReadResponse(t *testing.T) {
	var gotMethod, gotCT, gotAccept string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotCT = r.Header.Get("Content-Type")
		gotAccept = r.Header.Get("Accept")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"1"}`))
	}))
	defer srv.Close()

	c := New(Config{}, logging.Nop())
	req, err := NewJSONRequest(context.Background(), http.MethodPost, srv.URL+"/x", map[string]string{"a": "b"})
	require.NoError(t, err)

	resp, err := c.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, resp.OK())
	assert.False(t, resp.Empty())
	assert.JSONEq(t, `{"id":"1"}`, string(resp.Body))

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotCT)
	assert.Equal(t, "application/json", gotAccept)
	assert.JSONEq(t, `{"a":"b"}`, string(gotBody))
}

func TestNewJSONRequest_NilBodyHasNoContentType(t *testing.T) {
	req, err := NewJSONRequest(context.Background(), http.MethodGet, "http://example.test/a", nil)
	require.NoError(t, err)
	assert.Empty(t, req.Header.Get("Content-Type"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
}

func TestNewJSONRequest_UnencodableBody(t *testing.T) {
	_, err := NewJSONRequest(context.Background(), http.MethodPost, "http://example.test", make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encode request body")
}

func TestDo_ErrorStatusIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"nope"}}`, http.StatusNotFound)
	}))
	defer srv.Close()

	req, _ := NewJSONRequest(context.Background(), http.MethodGet, srv.URL, nil)
	resp, err := New(Config{}, logging.Nop()).Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, resp.OK())
	assert.Equal(t, "nope", ErrorMessage(resp.Body, StatusText(resp)))
}

func TestDo_TimeoutIsNetworkError(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := New(Config{Timeout: 50 * time.Millisecond}, logging.Nop())
	req, _ := NewJSONRequest(context.Background(), http.MethodGet, srv.URL, nil)

	_, err := c.Do(req)
	require.ErrorIs(t, err, common.ErrNetwork)
}

func TestDo_CancelledContextIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req, _ := NewJSONRequest(ctx, http.MethodGet, srv.URL, nil)

	_, err := New(Config{}, logging.Nop()).Do(req)
	require.ErrorIs(t, err, common.ErrNetwork)
	assert.ErrorIs(t, err, context.Canceled)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestDo_TransportFailureIsNetworkError(t *testing.T) {
	boom := errors.New("connection refused")
	c := New(Config{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, boom
	})}, logging.Nop())

	req, _ := NewJSONRequest(context.Background(), http.MethodGet, "http://example.test/trips", nil)
	_, err := c.Do(req)
	require.ErrorIs(t, err, common.ErrNetwork)
	assert.Contains(t, err.Error(), "/trips")
}

func TestDo_BreakerOpensAfterServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	bc := DefaultBreakerConfig("test")
	bc.MinRequests = 2
	bc.Timeout = time.Minute
	c := New(Config{Breaker: &bc}, logging.Nop())
	assert.Equal(t, "closed", c.BreakerState())

	for i := 0; i < 2; i++ {
		req, _ := NewJSONRequest(context.Background(), http.MethodGet, srv.URL, nil)
		resp, err := c.Do(req)
		require.NoError(t, err, "5xx answers are still returned to the caller")
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	}
	assert.Equal(t, "open", c.BreakerState())

	req, _ := NewJSONRequest(context.Background(), http.MethodGet, srv.URL, nil)
	_, err := c.Do(req)
	require.ErrorIs(t, err, common.ErrNetwork)
	assert.Equal(t, int32(2), calls.Load(), "open breaker must not reach the server")
}

func TestDo_BreakerIgnoresClientErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	bc := DefaultBreakerConfig("test")
	bc.MinRequests = 1
	c := New(Config{Breaker: &bc}, logging.Nop())

	for i := 0; i < 3; i++ {
		req, _ := NewJSONRequest(context.Background(), http.MethodGet, srv.URL, nil)
		_, err := c.Do(req)
		require.NoError(t, err)
	}
	assert.Equal(t, "closed", c.BreakerState())
}

func TestBreakerState_Disabled(t *testing.T) {
	assert.Equal(t, "disabled", New(Config{}, logging.Nop()).BreakerState())
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"nested error object", `{"error":{"code":"not_found","message":"trip not found"}}`, "trip not found"},
		{"top-level message", `{"message":"bad input"}`, "bad input"},
		{"msg", `{"code":400,"msg":"Invalid login credentials"}`, "Invalid login credentials"},
		{"error description", `{"error":"invalid_grant","error_description":"Invalid Refresh Token"}`, "Invalid Refresh Token"},
		{"plain error string", `{"error":"forbidden"}`, "forbidden"},
		{"plain text", `service unavailable`, "service unavailable"},
		{"empty", ``, "fallback"},
		{"json without message", `{"status":"x"}`, "fallback"},
		{"broken json", `{"error":`, "fallback"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ErrorMessage([]byte(tc.body), "fallback"))
		})
	}
}
