package cli

import (
	"context"
	"fmt"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getMultiline = GetMultiline

// Register prompts for email, password and name and creates an account.
// When the service asks for email confirmation the user stays signed out.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	firstName, err := getSimpleText(a.reader, "First name", a.out)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Last name", a.out)
	if err != nil {
		return err
	}

	user, signedIn, err := a.session.SignUpWithPassword(ctx, email, string(password), firstName, lastName)
	if err != nil {
		return err
	}

	if signedIn {
		fmt.Fprintf(a.out, "Welcome, %s!\n", user.DisplayName())
	} else {
		fmt.Fprintln(a.out, "Account created. Confirm your email, then use 'login'.")
	}
	return nil
}

// Login prompts for credentials and signs in with email and password.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	user, err := a.session.SignInWithPassword(ctx, email, string(password))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Signed in as %s\n", user.DisplayName())
	return nil
}

// Google signs in with a Google ID token supplied through the consent flow.
func (a *App) Google(ctx context.Context) error {
	user, err := a.session.SignInWithGoogle(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Signed in as %s\n", user.DisplayName())
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	user := a.session.CurrentUser()
	if user == nil {
		fmt.Fprintln(a.out, "Not signed in")
		return nil
	}
	printUser(a.out, user)
	return nil
}

// Refresh exchanges the stored refresh token for a new session.
func (a *App) Refresh(ctx context.Context) error {
	if _, err := a.session.Refresh(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Session refreshed")
	return nil
}

// Logout ends the session. Local credentials are removed even when the
// identity service cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.SignOut(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out")
	return nil
}
