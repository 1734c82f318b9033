// Package cli provides the vsrc command-line client.
//
// It wires configuration, the local session database, the HTTP API client
// and the services, then either runs a single cobra subcommand
// ("vsrc post list --search go") or an interactive REPL that accepts the
// same commands plus paging shortcuts ("post next").
//
// Output goes through the render package at the current terminal width:
// a table on wide terminals, cards on narrow ones.
package cli
