package identity

import "context"

// ConsentResult is what an interactive federated consent produced.
// Everything but IDToken is optional profile data.
type ConsentResult struct {
	IDToken    string
	Email      string
	GivenName  string
	FamilyName string
	PhotoURL   string
}

// ConsentFlow obtains a Google ID token from the user. It is supplied by
// the host; the adapter never drives a UI itself.
type ConsentFlow interface {
	Acquire(ctx context.Context) (*ConsentResult, error)

	// SignOut forgets the locally selected federated account.
	SignOut(ctx context.Context) error
}
