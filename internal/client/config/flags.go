package config

import (
	"github.com/spf13/pflag"
)

// Flag names registered by BindFlags.
const (
	flagServer      = "server"
	flagConfig      = "config"
	flagDatabase    = "db"
	flagTimeout     = "timeout"
	flagRateLimit   = "rate-limit"
	flagRateBurst   = "rate-burst"
	flagWidth       = "width"
	flagNarrowWidth = "narrow-width"
	flagVerbose     = "verbose"
)

// BindFlags registers the global flags on fs, storing parsed values in dst.
// dst should start from LoadDefaults so --help shows meaningful defaults.
func BindFlags(fs *pflag.FlagSet, dst *Config) {
	fs.StringVar(&dst.ServerURL, flagServer, dst.ServerURL, "backend base URL")
	fs.StringVarP(&dst.ConfigFile, flagConfig, "c", dst.ConfigFile, "path to JSON config file")
	fs.StringVar(&dst.DatabasePath, flagDatabase, dst.DatabasePath, "path to the local session database")
	fs.DurationVar(&dst.RequestTimeout, flagTimeout, dst.RequestTimeout, "HTTP request timeout")
	fs.Float64Var(&dst.RateLimit, flagRateLimit, dst.RateLimit, "max requests per second (0 = unlimited)")
	fs.IntVar(&dst.RateBurst, flagRateBurst, dst.RateBurst, "request burst size")
	fs.IntVar(&dst.Width, flagWidth, dst.Width, "render width in columns (0 = terminal width)")
	fs.IntVar(&dst.NarrowWidth, flagNarrowWidth, dst.NarrowWidth, "widths below this use the compact layout")
	fs.BoolVarP(&dst.Verbose, flagVerbose, "v", dst.Verbose, "enable debug logging")
}

// applyFlags copies only the flags the user actually set from flagged into cfg.
func applyFlags(cfg *Config, fs *pflag.FlagSet, flagged *Config) {
	if fs.Changed(flagServer) {
		cfg.ServerURL = flagged.ServerURL
	}
	if fs.Changed(flagDatabase) {
		cfg.DatabasePath = flagged.DatabasePath
	}
	if fs.Changed(flagTimeout) {
		cfg.RequestTimeout = flagged.RequestTimeout
	}
	if fs.Changed(flagRateLimit) {
		cfg.RateLimit = flagged.RateLimit
	}
	if fs.Changed(flagRateBurst) {
		cfg.RateBurst = flagged.RateBurst
	}
	if fs.Changed(flagWidth) {
		cfg.Width = flagged.Width
	}
	if fs.Changed(flagNarrowWidth) {
		cfg.NarrowWidth = flagged.NarrowWidth
	}
	if fs.Changed(flagVerbose) {
		cfg.Verbose = flagged.Verbose
	}
}
