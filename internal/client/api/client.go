// Package api is the authenticated client of the CoTrip trip/activity API.
//
// Mutations require a stored access token and fail with
// common.ErrUnauthenticated before any network traffic when there is none.
// Reads attach the token when present and go out anonymously otherwise, so
// public trips stay visible to signed-out users. Every call is a single
// attempt; retries are up to the caller.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/cotrip/cotrip/internal/client/models"
	"github.com/cotrip/cotrip/internal/common"
	"github.com/cotrip/cotrip/internal/logging"
	"github.com/cotrip/cotrip/internal/netx"
	"github.com/google/uuid"
)

// TokenSource yields the current session; nil means signed out.
type TokenSource interface {
	Read(ctx context.Context) (*models.Session, error)
}

type Config struct {
	BaseURL string
}

type Client struct {
	baseURL string
	tokens  TokenSource
	http    *netx.Client
	log     logging.Logger
}

func NewClient(cfg Config, tokens TokenSource, transport *netx.Client, log logging.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		tokens:  tokens,
		http:    transport,
		log:     log.With("component", "api"),
	}
}

type authMode int

const (
	authOptional authMode = iota
	authRequired
)

// bodyMode tells how a 2xx body is handled.
type bodyMode int

const (
	bodyObject bodyMode = iota // must decode into out
	bodyList                   // empty body is an empty list
	bodyIgnore
)

type call struct {
	method string
	path   string
	query  url.Values
	in     any
	out    any
	auth   authMode
	body   bodyMode
}

func (c *Client) do(ctx context.Context, cl call) error {
	token, err := c.token(ctx)
	if err != nil {
		return err
	}
	if token == "" && cl.auth == authRequired {
		return common.ErrUnauthenticated
	}

	u := c.baseURL + cl.path
	if len(cl.query) > 0 {
		u += "?" + cl.query.Encode()
	}

	req, err := netx.NewJSONRequest(ctx, cl.method, u, cl.in)
	if err != nil {
		return err
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	if !resp.OK() {
		c.log.Debug(ctx, "api request rejected", "request_id", requestID, "path", cl.path, "status", resp.StatusCode)
		return &common.RequestFailedError{
			StatusCode: resp.StatusCode,
			Message:    netx.ErrorMessage(resp.Body, netx.StatusText(resp)),
		}
	}

	switch cl.body {
	case bodyIgnore:
		return nil
	case bodyList:
		if resp.Empty() || string(resp.Body) == "null" {
			return nil
		}
	default:
		if resp.Empty() || string(resp.Body) == "null" {
			return fmt.Errorf("%w: %s %s: empty body", common.ErrMalformedResponse, cl.method, cl.path)
		}
	}

	if err := json.Unmarshal(resp.Body, cl.out); err != nil {
		return fmt.Errorf("%w: %s %s: %w", common.ErrMalformedResponse, cl.method, cl.path, err)
	}
	return nil
}

func (c *Client) token(ctx context.Context) (string, error) {
	session, err := c.tokens.Read(ctx)
	if err != nil {
		return "", err
	}
	if session == nil {
		return "", nil
	}
	return session.AccessToken, nil
}

func tripPath(id string) string {
	return "/trips/" + url.PathEscape(id)
}

func activitiesPath(tripID string) string {
	return tripPath(tripID) + "/activities"
}

func activityPath(tripID, id string) string {
	return activitiesPath(tripID) + "/" + url.PathEscape(id)
}
