// Package identity talks to a GoTrue-compatible identity service.
//
// It turns the password, sign-up, Google ID token and refresh grants into
// a models.ProviderSession and maps every provider-specific failure onto
// the sentinels of package common. Nothing here touches local storage.
package identity
