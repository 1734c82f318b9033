package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// Config holds runtime settings for the vsrc CLI.
//
// Fields:
//   - ServerURL: scheme://host:port of the backend, without a trailing slash.
//   - APIPath / AuthPath: path prefixes for resource and auth endpoints.
//   - DatabasePath: SQLite file holding the durable session token.
//   - RequestTimeout: per-request HTTP timeout.
//   - RateLimit / RateBurst: client-side request pacing (0 disables).
//   - Width: rendering width in columns (0 means detect from the terminal).
//   - NarrowWidth: widths below this use the narrow layout.
type Config struct {
	ServerURL      string
	APIPath        string
	AuthPath       string
	DatabasePath   string
	ConfigFile     string
	RequestTimeout time.Duration
	RateLimit      float64
	RateBurst      int
	Width          int
	NarrowWidth    int
	Verbose        bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8080"
	c.APIPath = "/api"
	c.AuthPath = "/auth"
	c.DatabasePath = "vsrc.db"
	c.RequestTimeout = 30 * time.Second
	c.RateLimit = 0
	c.RateBurst = 1
	c.Width = 0
	c.NarrowWidth = 80
}

// APIBaseURL is the prefix for post, comment and user endpoints.
func (c *Config) APIBaseURL() string {
	return c.ServerURL + c.APIPath
}

// AuthBaseURL is the prefix for register, login and me endpoints.
func (c *Config) AuthBaseURL() string {
	return c.ServerURL + c.AuthPath
}

// Validate normalizes and checks the resolved values.
func (c *Config) Validate() error {
	c.ServerURL = strings.TrimRight(c.ServerURL, "/")
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return fmt.Errorf("invalid server url %q: %w", c.ServerURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid server url %q: scheme must be http or https", c.ServerURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid server url %q: missing host", c.ServerURL)
	}

	c.APIPath = normalizePath(c.APIPath)
	c.AuthPath = normalizePath(c.AuthPath)

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative, got %v", c.RateLimit)
	}
	if c.RateBurst < 1 {
		c.RateBurst = 1
	}
	if c.Width < 0 {
		return fmt.Errorf("width must not be negative, got %d", c.Width)
	}
	if c.NarrowWidth <= 0 {
		return fmt.Errorf("narrow width must be positive, got %d", c.NarrowWidth)
	}
	return nil
}

func normalizePath(p string) string {
	p = strings.TrimRight(strings.TrimSpace(p), "/")
	if p != "" && !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// Load constructs a Config, applies defaults, then overlays values from the
// environment (including a .env file), a JSON file (if any) and the flags the
// user set explicitly on fs. Later sources take precedence over earlier ones.
//
// flagged is the struct the flags were bound to with BindFlags; fs may be nil.
func Load(fs *pflag.FlagSet, flagged *Config) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg); err != nil {
		return nil, err
	}

	path := cfg.ConfigFile
	if fs != nil && fs.Changed(flagConfig) {
		path = flagged.ConfigFile
	}
	if path != "" {
		if err := parseJSON(cfg, path); err != nil {
			return nil, err
		}
		cfg.ConfigFile = path
	}

	if fs != nil {
		applyFlags(cfg, fs, flagged)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
