package models

import (
	"encoding/json"
	"testing"

	"github.com/cotrip/cotrip/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestValidateDateRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		wantErr    bool
	}{
		{"ordered", "2025-06-01", "2025-06-10", false},
		{"same day", "2025-06-01", "2025-06-01", false},
		{"reversed", "2025-06-10", "2025-06-01", true},
		{"empty end", "2025-06-10", "", false},
		{"unparseable", "tomorrow", "2025-06-01", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateDateRange(tc.start, tc.end)
			if tc.wantErr {
				require.ErrorIs(t, err, common.ErrInvalidDateRange)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestTrip_DecodesServerShape(t *testing.T) {
	body := `{
	  "id": "t1", "title": "Lisbon", "destination": "Portugal",
	  "startDate": "2025-06-01", "endDate": "2025-06-07",
	  "createdBy": "u1", "createdAt": "c", "updatedAt": "u",
	  "budget": 1200.5,
	  "participants": [{"id": "p1", "tripId": "t1", "userId": "u2", "joinedAt": "j"}]
	}`

	var trip Trip
	require.NoError(t, json.Unmarshal([]byte(body), &trip))

	assert.Equal(t, "Lisbon", trip.Title)
	assert.Nil(t, trip.Description)
	assert.False(t, trip.IsPublic)
	require.NotNil(t, trip.Budget)
	assert.Equal(t, 1200.5, *trip.Budget)
	require.Len(t, trip.Participants, 1)
	assert.Equal(t, RoleViewer, trip.Participants[0].EffectiveRole())
}

func TestUpdateTripRequest_OnlySendsProvidedFields(t *testing.T) {
	public := false
	b, err := json.Marshal(UpdateTripRequest{Title: strPtr("New"), IsPublic: &public})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"New","isPublic":false}`, string(b))
}

func TestListTripsParams_Query(t *testing.T) {
	q := ListTripsParams{}.Query()
	assert.Equal(t, "limit=20&page=1", q.Encode())

	q = ListTripsParams{Page: 3, Limit: 5, Search: "beach", Destination: "Bali"}.Query()
	assert.Equal(t, "3", q.Get("page"))
	assert.Equal(t, "5", q.Get("limit"))
	assert.Equal(t, "beach", q.Get("search"))
	assert.Equal(t, "Bali", q.Get("destination"))
}

func TestUser_DisplayName(t *testing.T) {
	var nilUser *User
	assert.Equal(t, "", nilUser.DisplayName())
	assert.Equal(t, "a@b.com", (&User{Email: "a@b.com"}).DisplayName())
	assert.Equal(t, "Ada Lovelace", (&User{Email: "a@b.com", FirstName: strPtr("Ada"), LastName: strPtr("Lovelace")}).DisplayName())
	assert.Equal(t, "Ada", (&User{FirstName: strPtr("Ada")}).DisplayName())
}

func TestProviderSession_MetadataString(t *testing.T) {
	ps := &ProviderSession{Metadata: map[string]any{"given_name": "Ada", "first_name": "", "age": 3}}

	got := ps.MetadataString("first_name", "given_name")
	require.NotNil(t, got)
	assert.Equal(t, "Ada", *got)

	assert.Nil(t, ps.MetadataString("age"))
	assert.Nil(t, (*ProviderSession)(nil).MetadataString("x"))
}

func TestProviderSession_User(t *testing.T) {
	ps := &ProviderSession{
		RemoteUserID: "u1",
		Email:        "a@b.com",
		CreatedAt:    "2024-01-01T00:00:00Z",
		Metadata:     map[string]any{"first_name": "Ada", "family_name": "Lovelace", "picture": "http://img"},
	}

	u := ps.User()
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "a@b.com", u.Email)
	assert.Equal(t, "Ada", *u.FirstName)
	assert.Equal(t, "Lovelace", *u.LastName)
	assert.Equal(t, "http://img", *u.AvatarURL)
	assert.Equal(t, "2024-01-01T00:00:00Z", u.CreatedAt)

	assert.Nil(t, (*ProviderSession)(nil).User())
}
