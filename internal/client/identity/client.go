package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/cotrip/cotrip/internal/client/models"
	"github.com/cotrip/cotrip/internal/common"
	"github.com/cotrip/cotrip/internal/logging"
	"github.com/cotrip/cotrip/internal/netx"
)

const (
	tokenPath  = "/auth/v1/token"
	signupPath = "/auth/v1/signup"
	userPath   = "/auth/v1/user"
	logoutPath = "/auth/v1/logout"

	googleProvider = "google"
)

type Config struct {
	BaseURL string
	APIKey  string
}

type Client struct {
	baseURL string
	apiKey  string
	http    *netx.Client
	log     logging.Logger
}

func NewClient(cfg Config, transport *netx.Client, log logging.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    transport,
		log:     log.With("component", "identity"),
	}
}

type userBody struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	CreatedAt    string         `json:"created_at"`
	UserMetadata map[string]any `json:"user_metadata"`
}

// sessionBody is the token grant answer. Sign-up without auto-confirm
// answers with the bare user instead, which fills the embedded fields.
type sessionBody struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	User         *userBody `json:"user"`
	userBody
}

type errorCodeBody struct {
	ErrorCode string `json:"error_code"`
}

// SignInWithPassword exchanges email and password for a provider session.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*models.ProviderSession, error) {
	resp, err := c.post(ctx, tokenPath, url.Values{"grant_type": {"password"}}, "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusUnprocessableEntity:
		return nil, fmt.Errorf("%w: %s", common.ErrInvalidCredentials, netx.ErrorMessage(resp.Body, netx.StatusText(resp)))
	}
	if !resp.OK() {
		return nil, requestFailed(resp)
	}
	return c.decodeSession(resp, true)
}

// SignUpWithPassword registers a new account. When the service requires
// email confirmation the returned session has no access token.
func (c *Client) SignUpWithPassword(ctx context.Context, email, password, firstName, lastName string) (*models.ProviderSession, error) {
	resp, err := c.post(ctx, signupPath, nil, "", map[string]any{
		"email":    email,
		"password": password,
		"data": map[string]string{
			"first_name": firstName,
			"last_name":  lastName,
		},
	})
	if err != nil {
		return nil, err
	}

	if !resp.OK() {
		if accountExists(resp) {
			return nil, fmt.Errorf("%w: %s", common.ErrAccountExists, email)
		}
		return nil, requestFailed(resp)
	}

	ps, err := c.decodeSession(resp, false)
	if err != nil {
		return nil, err
	}
	if ps.Email == "" {
		ps.Email = email
	}
	// the service echoes metadata, but not every deployment does
	if _, ok := ps.Metadata["first_name"]; !ok {
		ps.Metadata["first_name"] = firstName
	}
	if _, ok := ps.Metadata["last_name"]; !ok {
		ps.Metadata["last_name"] = lastName
	}
	return ps, nil
}

// SignInWithFederatedIdentity exchanges a Google ID token for a provider
// session. An empty token fails without contacting the service.
func (c *Client) SignInWithFederatedIdentity(ctx context.Context, idToken string) (*models.ProviderSession, error) {
	if strings.TrimSpace(idToken) == "" {
		return nil, common.ErrMissingIdentityToken
	}

	resp, err := c.post(ctx, tokenPath, url.Values{"grant_type": {"id_token"}}, "", map[string]string{
		"provider": googleProvider,
		"id_token": idToken,
	})
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%w: %w", common.ErrProviderRejected, requestFailed(resp))
	}
	return c.decodeSession(resp, true)
}

// SignInWithConsent runs flow to obtain an ID token and signs in with it.
// Profile data from the consent is merged into the session metadata.
func (c *Client) SignInWithConsent(ctx context.Context, flow ConsentFlow) (*models.ProviderSession, error) {
	res, err := flow.Acquire(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: consent: %w", common.ErrProviderRejected, err)
	}
	if res == nil || strings.TrimSpace(res.IDToken) == "" {
		return nil, common.ErrMissingIdentityToken
	}

	ps, err := c.SignInWithFederatedIdentity(ctx, res.IDToken)
	if err != nil {
		return nil, err
	}

	for k, v := range map[string]string{
		"given_name":  res.GivenName,
		"family_name": res.FamilyName,
		"picture":     res.PhotoURL,
	} {
		if v != "" {
			ps.Metadata[k] = v
		}
	}
	if res.Email != "" {
		ps.Email = res.Email
	}
	return ps, nil
}

// Refresh exchanges a refresh token for a new provider session.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*models.ProviderSession, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("%w: no refresh token", common.ErrProviderRejected)
	}

	resp, err := c.post(ctx, tokenPath, url.Values{"grant_type": {"refresh_token"}}, "", map[string]string{
		"refresh_token": refreshToken,
	})
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%w: %w", common.ErrProviderRejected, requestFailed(resp))
	}
	return c.decodeSession(resp, true)
}

// GetUser fetches the full profile of the token owner.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*models.User, error) {
	req, err := netx.NewJSONRequest(ctx, http.MethodGet, c.baseURL+userPath, nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req, accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, requestFailed(resp)
	}

	var u userBody
	if resp.Empty() || json.Unmarshal(resp.Body, &u) != nil || u.ID == "" {
		return nil, fmt.Errorf("%w: user profile", common.ErrMalformedResponse)
	}
	return toProviderSession(&u).User(), nil
}

// SignOut revokes the remote session and lets flow forget the federated
// account. Both always run; their errors are joined.
func (c *Client) SignOut(ctx context.Context, accessToken string, flow ConsentFlow) error {
	var errs []error

	if accessToken != "" {
		if err := c.logout(ctx, accessToken); err != nil {
			errs = append(errs, fmt.Errorf("logout: %w", err))
		}
	}
	if flow != nil {
		if err := flow.SignOut(ctx); err != nil {
			errs = append(errs, fmt.Errorf("consent sign out: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (c *Client) logout(ctx context.Context, accessToken string) error {
	resp, err := c.post(ctx, logoutPath, nil, accessToken, nil)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return requestFailed(resp)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, query url.Values, accessToken string, body any) (*netx.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := netx.NewJSONRequest(ctx, http.MethodPost, u, body)
	if err != nil {
		return nil, err
	}
	c.authorize(req, accessToken)

	return c.http.Do(req)
}

func (c *Client) authorize(req *http.Request, accessToken string) {
	if c.apiKey != "" {
		req.Header.Set(common.APIKeyHeaderName, c.apiKey)
	}
	if accessToken != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+accessToken)
	}
}

// decodeSession parses a grant answer. requireToken rejects answers that
// carry no access token.
func (c *Client) decodeSession(resp *netx.Response, requireToken bool) (*models.ProviderSession, error) {
	var body sessionBody
	if resp.Empty() {
		return nil, fmt.Errorf("%w: empty session body", common.ErrMalformedResponse)
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, fmt.Errorf("%w: session body: %w", common.ErrMalformedResponse, err)
	}
	if requireToken && body.AccessToken == "" {
		return nil, fmt.Errorf("%w: no access token", common.ErrMalformedResponse)
	}

	user := body.User
	if user == nil {
		user = &body.userBody
	}
	ps := toProviderSession(user)
	ps.AccessToken = body.AccessToken
	ps.RefreshToken = body.RefreshToken

	if body.AccessToken != "" && (ps.RemoteUserID == "" || ps.Email == "") {
		sub, email, err := tokenClaims(body.AccessToken)
		if err != nil {
			c.log.Warn(context.Background(), "reading access token claims failed", "error", err)
		}
		if ps.RemoteUserID == "" {
			ps.RemoteUserID = sub
		}
		if ps.Email == "" {
			ps.Email = email
		}
	}
	if ps.RemoteUserID == "" {
		return nil, fmt.Errorf("%w: no user id", common.ErrMalformedResponse)
	}
	return ps, nil
}

func toProviderSession(u *userBody) *models.ProviderSession {
	meta := make(map[string]any, len(u.UserMetadata))
	for k, v := range u.UserMetadata {
		meta[k] = v
	}
	return &models.ProviderSession{
		RemoteUserID: u.ID,
		Email:        u.Email,
		CreatedAt:    u.CreatedAt,
		Metadata:     meta,
	}
}

func accountExists(resp *netx.Response) bool {
	if resp.StatusCode == http.StatusConflict {
		return true
	}
	if resp.StatusCode != http.StatusUnprocessableEntity && resp.StatusCode != http.StatusBadRequest {
		return false
	}

	var ec errorCodeBody
	if json.Unmarshal(resp.Body, &ec) == nil && ec.ErrorCode == "user_already_exists" {
		return true
	}
	msg := strings.ToLower(netx.ErrorMessage(resp.Body, ""))
	return strings.Contains(msg, "already registered") || strings.Contains(msg, "already exists")
}

func requestFailed(resp *netx.Response) error {
	return &common.RequestFailedError{
		StatusCode: resp.StatusCode,
		Message:    netx.ErrorMessage(resp.Body, netx.StatusText(resp)),
	}
}
