// Package storage is the durable key/value store behind the CLI session.
//
// Values live in a single SQLite table created by the embedded goose
// migrations (see Open). Only the session layer writes to it; the CLI reads
// it once at startup.
package storage
