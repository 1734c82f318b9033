// Package client contains the HTTP side of vsrclient.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) for the
//     backend: Register/Login/Me and CRUD over posts, comments and users.
//  2. HTTPClient, which sends JSON requests, attaches the bearer token from a
//     TokenSource, tags every request with an X-Request-ID, optionally paces
//     requests, and classifies replies by status and content type.
//  3. API, the concrete Client built on HTTPClient.
//
// # Error Handling
//
// Failures are reported as:
//   - *APIError for status >= 400; Error() is the backend's message, the text
//     body, "API Error" or "HTTP Error <status>". A 401 also matches
//     ErrUnauthorized and fires the unauthorized handler.
//   - *NetworkError for transport failures; matches ErrUnavailable.
//
// Requests are never retried and never cancelled by the client itself;
// cancellation comes only from the caller's context.
package client
