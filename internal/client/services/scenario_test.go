package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cotrip/cotrip/internal/client/api"
	"github.com/cotrip/cotrip/internal/client/identity"
	"github.com/cotrip/cotrip/internal/client/models"
	"github.com/cotrip/cotrip/internal/common"
	"github.com/cotrip/cotrip/internal/logging"
	"github.com/cotrip/cotrip/internal/netx"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identityServer(t *testing.T) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Post("/auth/v1/token", func(w http.ResponseWriter, req *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(req.Body).Decode(&body)
		if body["email"] != "a@b.com" || body["password"] != "pw" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"t1","refresh_token":"r1","user":{"id":"u1","email":"a@b.com"}}`))
	})
	r.Post("/auth/v1/logout", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestScenario_SignInThenListTripsCarriesToken_ThenSignOut(t *testing.T) {
	transport := netx.New(netx.Config{}, logging.Nop())
	store := newStore(t)

	var auth []string
	apiRouter := chi.NewRouter()
	apiRouter.Get("/trips", func(w http.ResponseWriter, r *http.Request) {
		auth = append(auth, r.Header.Get(common.AuthorizationHeaderName))
		_, _ = w.Write([]byte(`[]`))
	})
	apiSrv := httptest.NewServer(apiRouter)
	t.Cleanup(apiSrv.Close)

	idp := identity.NewClient(identity.Config{BaseURL: identityServer(t).URL, APIKey: "anon"}, transport, logging.Nop())
	svc := NewSessionService(idp, store, nil, logging.Nop())
	trips := api.NewClient(api.Config{BaseURL: apiSrv.URL}, store, transport, logging.Nop())
	ctx := context.Background()

	_, err := svc.SignInWithPassword(ctx, "a@b.com", "wrong")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)

	user, err := svc.SignInWithPassword(ctx, "a@b.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	got, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Session{AccessToken: "t1", RefreshToken: "r1", UserID: "u1", UserEmail: "a@b.com"}, *got)

	list, err := trips.ListTrips(ctx, models.ListTripsParams{})
	require.NoError(t, err)
	assert.Empty(t, list)
	require.Equal(t, []string{"Bearer t1"}, auth)

	// logout answers 502, the local session goes away anyway
	require.NoError(t, svc.SignOut(ctx))
	got, err = store.Read(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = trips.CreateTrip(ctx, models.CreateTripRequest{Title: "x"})
	require.ErrorIs(t, err, common.ErrUnauthenticated)
}
