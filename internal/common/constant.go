package common

// Header names used on outbound requests.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	APIKeyHeaderName        = "apikey"
)

// BearerPrefix precedes the access token in the Authorization header.
const BearerPrefix = "Bearer "
