// Package services contains application services for the cotrip client.
// This file defines the session service: password, sign-up and Google
// sign-in, explicit token refresh, cold-start restore and sign-out, with
// the resulting session persisted through the credential store.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/cotrip/cotrip/internal/client/identity"
	"github.com/cotrip/cotrip/internal/client/models"
	"github.com/cotrip/cotrip/internal/common"
	"github.com/cotrip/cotrip/internal/logging"
)

// IdentityProvider is the remote side of authentication.
type IdentityProvider interface {
	SignInWithPassword(ctx context.Context, email, password string) (*models.ProviderSession, error)
	SignUpWithPassword(ctx context.Context, email, password, firstName, lastName string) (*models.ProviderSession, error)
	SignInWithConsent(ctx context.Context, flow identity.ConsentFlow) (*models.ProviderSession, error)
	Refresh(ctx context.Context, refreshToken string) (*models.ProviderSession, error)
	GetUser(ctx context.Context, accessToken string) (*models.User, error)
	SignOut(ctx context.Context, accessToken string, flow identity.ConsentFlow) error
}

// CredentialStore is the local side: durable session plus its change stream.
type CredentialStore interface {
	Write(ctx context.Context, session models.Session) error
	Clear(ctx context.Context) error
	Read(ctx context.Context) (*models.Session, error)
	Observe(ctx context.Context) <-chan models.AuthState
}

// SessionService manages the Anonymous / Authenticated lifecycle.
//
// Contract:
//   - Sign-in operations persist the session only when the provider
//     succeeded and ctx is still live; otherwise nothing is written.
//   - SignOut always clears local state; only a store failure is returned.
//   - Refresh is never run in the background; callers invoke it.
//   - Transitions are serialised; CurrentUser never blocks on them.
type SessionService interface {
	SignInWithPassword(ctx context.Context, email, password string) (*models.User, error)
	SignUpWithPassword(ctx context.Context, email, password, firstName, lastName string) (user *models.User, signedIn bool, err error)
	SignInWithGoogle(ctx context.Context) (*models.User, error)
	SignOut(ctx context.Context) error
	Refresh(ctx context.Context) (*models.User, error)
	Restore(ctx context.Context) (*models.User, error)
	State(ctx context.Context) <-chan models.AuthState
	CurrentUser() *models.User
	AccessToken(ctx context.Context) (string, error)
}

type sessionService struct {
	provider IdentityProvider
	store    CredentialStore
	consent  identity.ConsentFlow
	log      logging.Logger

	mu      sync.Mutex
	current atomic.Pointer[models.User]
}

// NewSessionService wires the provider and store. consent may be nil, in
// which case Google sign-in fails with ErrMissingIdentityToken.
func NewSessionService(provider IdentityProvider, store CredentialStore, consent identity.ConsentFlow, log logging.Logger) SessionService {
	return &sessionService{
		provider: provider,
		store:    store,
		consent:  consent,
		log:      log.With("component", "session"),
	}
}

func (s *sessionService) SignInWithPassword(ctx context.Context, email, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ps, err := s.provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	if ps.Email == "" {
		ps.Email = email
	}
	return s.establishLocked(ctx, ps, "password")
}

// SignUpWithPassword registers and, when the provider hands out a session
// right away, signs the user in. With email confirmation pending the
// returned user is not signed in, signedIn is false and nothing is stored;
// any session established earlier stays as it was.
func (s *sessionService) SignUpWithPassword(ctx context.Context, email, password, firstName, lastName string) (*models.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ps, err := s.provider.SignUpWithPassword(ctx, email, password, firstName, lastName)
	if err != nil {
		return nil, false, fmt.Errorf("sign up: %w", err)
	}
	if ps.Email == "" {
		ps.Email = email
	}
	if ps.AccessToken == "" {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
		s.log.Info(ctx, "account created, confirmation pending", "user_id", ps.RemoteUserID)
		return ps.User(), false, nil
	}
	user, err := s.establishLocked(ctx, ps, "signup")
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (s *sessionService) SignInWithGoogle(ctx context.Context) (*models.User, error) {
	if s.consent == nil {
		return nil, common.ErrMissingIdentityToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ps, err := s.provider.SignInWithConsent(ctx, s.consent)
	if err != nil {
		return nil, fmt.Errorf("google sign in: %w", err)
	}
	return s.establishLocked(ctx, ps, "google")
}

func (s *sessionService) SignOut(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var token string
	if session, err := s.store.Read(ctx); err != nil {
		s.log.Warn(ctx, "reading session before sign out failed", "error", err)
	} else if session != nil {
		token = session.AccessToken
	}

	if err := s.provider.SignOut(ctx, token, s.consent); err != nil {
		s.log.Warn(ctx, "remote sign out failed", "error", err)
	}

	s.current.Store(nil)
	// the caller may already be gone; local state is cleared regardless
	if err := s.store.Clear(context.WithoutCancel(ctx)); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	s.log.Info(ctx, "signed out")
	return nil
}

func (s *sessionService) Refresh(ctx context.Context) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, common.ErrUnauthenticated
	}

	ps, err := s.provider.Refresh(ctx, session.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}
	if ps.RemoteUserID == "" {
		ps.RemoteUserID = session.UserID
	}
	if ps.Email == "" {
		ps.Email = session.UserEmail
	}
	return s.establishLocked(ctx, ps, "refresh")
}

// Restore reloads the stored session at startup and fetches the full
// profile. Without network the id/email user rebuilt from storage is kept.
func (s *sessionService) Restore(ctx context.Context) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		s.current.Store(nil)
		return nil, nil
	}

	user := &models.User{ID: session.UserID, Email: session.UserEmail}
	remote, err := s.provider.GetUser(ctx, session.AccessToken)
	switch {
	case err != nil:
		s.log.Warn(ctx, "fetching profile failed, using stored identity", "user_id", session.UserID, "error", err)
	case remote.ID != session.UserID:
		s.log.Warn(ctx, "profile belongs to another user, ignoring", "user_id", session.UserID)
	default:
		user = remote
	}

	s.current.Store(user)
	return user, nil
}

// State streams auth states from the store, substituting the in-memory
// profile when it belongs to the same user.
func (s *sessionService) State(ctx context.Context) <-chan models.AuthState {
	in := s.store.Observe(ctx)
	out := make(chan models.AuthState, 1)

	go func() {
		defer close(out)
		for st := range in {
			if cur := s.current.Load(); cur != nil && st.User != nil && st.User.ID == cur.ID {
				st.User = cur
			}
			// keep only the latest value for slow readers
			select {
			case <-out:
			default:
			}
			out <- st
		}
	}()

	return out
}

func (s *sessionService) CurrentUser() *models.User {
	return s.current.Load()
}

// AccessToken returns the stored token, or ErrUnauthenticated.
func (s *sessionService) AccessToken(ctx context.Context) (string, error) {
	session, err := s.store.Read(ctx)
	if err != nil {
		return "", err
	}
	if session == nil {
		return "", common.ErrUnauthenticated
	}
	return session.AccessToken, nil
}

// establishLocked persists ps and makes its user current. A cancelled ctx
// leaves everything untouched.
func (s *sessionService) establishLocked(ctx context.Context, ps *models.ProviderSession, method string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ps.AccessToken == "" {
		return nil, fmt.Errorf("%w: provider returned no access token", common.ErrMalformedResponse)
	}

	// State observers must find the full profile once the write is published.
	user := ps.User()
	prev := s.current.Swap(user)

	err := s.store.Write(ctx, models.Session{
		AccessToken:  ps.AccessToken,
		RefreshToken: ps.RefreshToken,
		UserID:       ps.RemoteUserID,
		UserEmail:    ps.Email,
	})
	if err != nil {
		s.current.Store(prev)
		if !errors.Is(err, common.ErrStorage) {
			err = fmt.Errorf("%w: %w", common.ErrStorage, err)
		}
		s.log.Error(ctx, "persisting session failed", "user_id", ps.RemoteUserID, "error", err)
		return nil, err
	}

	s.log.Info(ctx, "session established", "method", method, "user_id", user.ID)
	return user, nil
}
