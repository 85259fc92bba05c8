// Package cli provides the interactive cotrip command-line client.
//
// It wires configuration, local storage, the identity service, the trip API
// and an interactive REPL. On start it restores a stored session and follows
// auth state changes to keep the prompt current.
//
// Key features:
//   - Register / Login / Google sign-in / Refresh / Logout
//   - Browse trips (public ones without signing in) and their activities
//   - Create, edit and delete trips and activities
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See runREPL for the command list.
package cli
