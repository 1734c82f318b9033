// Package common contains shared constants and sentinel errors used across
// vsrclient components.
package common

// TokenStorageKey is the durable store key that holds the raw bearer token.
const TokenStorageKey = "authToken"

// Header names used on outbound HTTP requests.
const (
	AuthorizationHeaderName = "Authorization"
	ContentTypeHeaderName   = "Content-Type"
	RequestIDHeaderName     = "X-Request-ID"
	UserAgentHeaderName     = "User-Agent"
)

// BearerPrefix is prepended to the token in the Authorization header.
const BearerPrefix = "Bearer "

// JSONContentType is sent with request bodies and matched on responses.
const JSONContentType = "application/json"

// RoleAdmin is the role that unlocks user administration.
const RoleAdmin = "admin"

// EmailStorageKey holds the email of the logged-in account, shown in the
// REPL prompt. It is written and cleared together with TokenStorageKey.
const EmailStorageKey = "authEmail"
