package cli

import (
	"bufio"
	"context"
	"io"

	"github.com/cotrip/cotrip/internal/client/identity"
	"github.com/golang-jwt/jwt/v5"
)

// consentFlow asks the user to paste a Google ID token obtained elsewhere,
// e.g. from the OAuth playground. Profile claims are read from the token.
type consentFlow struct {
	reader *bufio.Reader
	out    io.Writer
}

func newConsentFlow(reader *bufio.Reader, out io.Writer) *consentFlow {
	return &consentFlow{reader: reader, out: out}
}

func (c *consentFlow) Acquire(ctx context.Context) (*identity.ConsentResult, error) {
	token, err := getSimpleText(c.reader, "Paste your Google ID token", c.out)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &identity.ConsentResult{IDToken: token}
	claims := jwt.MapClaims{}
	if token == "" {
		return res, nil
	}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		// the identity service has the final word on the token
		return res, nil
	}
	res.Email, _ = claims["email"].(string)
	res.GivenName, _ = claims["given_name"].(string)
	res.FamilyName, _ = claims["family_name"].(string)
	res.PhotoURL, _ = claims["picture"].(string)
	return res, nil
}

// SignOut has nothing to forget; the CLI keeps no Google account state.
func (c *consentFlow) SignOut(context.Context) error {
	return nil
}
