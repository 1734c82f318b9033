// Package render turns API payloads into something a terminal can show.
//
// Build is pure: it maps a decoded JSON payload and a terminal width to a
// View (rows, fields, actions) without touching the payload. Terminal draws
// a View with lipgloss, as a table on wide terminals and as stacked cards on
// narrow ones.
//
// Record kinds are inferred from shape: a record with a "post_id" field is a
// comment, anything else is a post. This only holds for the two record
// shapes the backend serves today; callers that know better (the users
// list) pass Options.Kind.
package render
