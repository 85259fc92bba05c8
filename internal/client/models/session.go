// Package models defines the client-side data models of the cotrip client:
// the locally persisted session, users, trips and activities, and the
// request shapes sent to the remote API.
package models

// Session is the locally persisted token/identity bundle of a signed-in user.
type Session struct {
	AccessToken  string
	RefreshToken string
	UserID       string
	UserEmail    string
}

// User is derived from the identity provider or rebuilt from a stored
// Session. Only ID and Email survive a restart.
type User struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
	CreatedAt string  `json:"createdAt"`
}

// DisplayName returns "First Last" when known, otherwise the email.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	var name string
	if u.FirstName != nil {
		name = *u.FirstName
	}
	if u.LastName != nil && *u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += *u.LastName
	}
	if name == "" {
		return u.Email
	}
	return name
}

// AuthState is a single emission of the auth-state stream.
type AuthState struct {
	IsLoggedIn bool
	User       *User
}

// ProviderSession is the raw bundle returned by the identity provider
// before it is normalised into a Session.
type ProviderSession struct {
	AccessToken  string
	RefreshToken string
	RemoteUserID string
	Email        string
	CreatedAt    string
	Metadata     map[string]any
}

// MetadataString returns the first non-empty string value among keys.
func (p *ProviderSession) MetadataString(keys ...string) *string {
	if p == nil {
		return nil
	}
	for _, k := range keys {
		if s, ok := p.Metadata[k].(string); ok && s != "" {
			return &s
		}
	}
	return nil
}

// User builds the public profile carried by the provider bundle.
func (p *ProviderSession) User() *User {
	if p == nil {
		return nil
	}
	return &User{
		ID:        p.RemoteUserID,
		Email:     p.Email,
		FirstName: p.MetadataString("first_name", "given_name"),
		LastName:  p.MetadataString("last_name", "family_name"),
		AvatarURL: p.MetadataString("avatar_url", "picture"),
		CreatedAt: p.CreatedAt,
	}
}
