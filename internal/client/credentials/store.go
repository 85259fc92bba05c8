// Package credentials persists the session of the signed-in user and
// publishes every change of it to observers.
//
// The four session fields live as separate rows of the local "preferences"
// table. Writes replace all of them in one transaction, and a single mutex
// serialises every mutation together with the notification that follows
// it, so observers see states in the order they were stored.
package credentials

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/cotrip/cotrip/internal/client/models"
	"github.com/cotrip/cotrip/internal/client/repositories/preferences"
	"github.com/cotrip/cotrip/internal/common"
	"github.com/cotrip/cotrip/internal/dbx"
	"github.com/cotrip/cotrip/internal/logging"
)

// Preference keys of the persisted session.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUserID       = "user_id"
	KeyUserEmail    = "user_email"
)

var sessionKeys = [...]string{KeyAccessToken, KeyRefreshToken, KeyUserID, KeyUserEmail}

type Store struct {
	db   *sql.DB
	repo func(dbx.DBTX) preferences.Repository
	log  logging.Logger

	// mu guards storage mutations, subs and channel sends/closes.
	mu     sync.Mutex
	subs   map[int]chan models.AuthState
	nextID int
}

func NewStore(db *sql.DB, log logging.Logger) *Store {
	return &Store{
		db:   db,
		repo: newSQLiteRepository,
		log:  log.With("component", "credentials"),
		subs: make(map[int]chan models.AuthState),
	}
}

// Write replaces the stored session atomically.
func (s *Store) Write(ctx context.Context, session models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		for _, kv := range [...]struct{ k, v string }{
			{KeyAccessToken, session.AccessToken},
			{KeyRefreshToken, session.RefreshToken},
			{KeyUserID, session.UserID},
			{KeyUserEmail, session.UserEmail},
		} {
			if err := repo.Set(ctx, kv.k, kv.v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: write session: %w", common.ErrStorage, err)
	}

	s.log.Debug(ctx, "session stored", "user_id", session.UserID)
	s.publishLocked(stateOf(&session))
	return nil
}

// Clear removes the stored session keys. Clearing an empty store is not an
// error; other preferences are left alone.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		for _, key := range sessionKeys {
			if err := repo.Delete(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: clear session: %w", common.ErrStorage, err)
	}

	s.log.Debug(ctx, "session cleared")
	s.publishLocked(models.AuthState{})
	return nil
}

// Read returns a snapshot of the stored session, or nil when no access
// token is stored. The snapshot is a copy the caller may keep.
func (s *Store) Read(ctx context.Context) (*models.Session, error) {
	values := make(map[string]string, len(sessionKeys))
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		for _, key := range sessionKeys {
			v, _, err := repo.Get(ctx, key)
			if err != nil {
				return err
			}
			values[key] = v
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: read session: %w", common.ErrStorage, err)
	}

	access := values[KeyAccessToken]
	if access == "" {
		return nil, nil
	}
	return &models.Session{
		AccessToken:  access,
		RefreshToken: values[KeyRefreshToken],
		UserID:       values[KeyUserID],
		UserEmail:    values[KeyUserEmail],
	}, nil
}

// Observe returns a stream of auth states. The first value reflects what is
// persisted now, even when ctx is already done; if storage cannot be read
// it is skipped rather than guessed. Later values follow every successful
// Write or Clear. A slow reader only gets the latest state. The channel is
// closed when ctx is done.
func (s *Store) Observe(ctx context.Context) <-chan models.AuthState {
	ch := make(chan models.AuthState, 1)

	s.mu.Lock()
	session, err := s.Read(context.WithoutCancel(ctx))
	if err != nil {
		s.log.Warn(ctx, "reading session for observer failed", "error", err)
	} else {
		ch <- stateOf(session)
	}

	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		close(ch)
		s.mu.Unlock()
	}()

	return ch
}

func (s *Store) publishLocked(state models.AuthState) {
	for _, ch := range s.subs {
		// Drop the stale pending value so the send below never blocks.
		select {
		case <-ch:
		default:
		}
		ch <- state
	}
}

// stateOf derives the public auth state from a stored session. Profile
// fields other than id and email are not persisted and stay nil.
func stateOf(session *models.Session) models.AuthState {
	if session == nil || session.AccessToken == "" {
		return models.AuthState{}
	}
	state := models.AuthState{IsLoggedIn: true}
	if session.UserID != "" && session.UserEmail != "" {
		state.User = &models.User{ID: session.UserID, Email: session.UserEmail}
	}
	return state
}

func newSQLiteRepository(db dbx.DBTX) preferences.Repository {
	return preferences.NewSQLiteRepository(db)
}
