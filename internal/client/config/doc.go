// Package config loads runtime configuration for the vsrc CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables VSR_*, optionally read from a .env file in the
//     working directory (see parseEnv).
//  3. Optional JSON file selected via --config/-c or VSR_CONFIG (see parseJSON).
//  4. Command-line flags the user set explicitly (see BindFlags).
//
// # JSON schema
//
// Durations can be strings like "30s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://localhost:8080",
//	  "api_path": "/api",
//	  "auth_path": "/auth",
//	  "database_path": "vsrc.db",
//	  "request_timeout": "30s",
//	  "rate_limit": 5,
//	  "rate_burst": 10,
//	  "width": 0,
//	  "narrow_width": 80
//	}
//
// Primary API
//
//   - type Config                   : resolved settings
//   - func Load(fs, flagged) (*Config, error)
//   - func BindFlags(fs, dst)       : registers global flags
package config
