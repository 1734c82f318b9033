package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names understood by parseEnv.
const (
	EnvServerURL   = "VSR_SERVER_URL"
	EnvAPIPath     = "VSR_API_PATH"
	EnvAuthPath    = "VSR_AUTH_PATH"
	EnvDatabase    = "VSR_DB"
	EnvConfigFile  = "VSR_CONFIG"
	EnvTimeout     = "VSR_TIMEOUT"
	EnvRateLimit   = "VSR_RATE_LIMIT"
	EnvRateBurst   = "VSR_RATE_BURST"
	EnvWidth       = "VSR_WIDTH"
	EnvNarrowWidth = "VSR_NARROW_WIDTH"
)

// loadDotEnv is a test seam for godotenv.Load. Variables already present in
// the process environment are not overridden.
var loadDotEnv = func() error { return godotenv.Load() }

// parseEnv overlays cfg with VSR_* variables. A missing .env file is not an
// error; a malformed one is.
func parseEnv(cfg *Config) error {
	if err := loadDotEnv(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg.ServerURL = getEnv(EnvServerURL, cfg.ServerURL)
	cfg.APIPath = getEnv(EnvAPIPath, cfg.APIPath)
	cfg.AuthPath = getEnv(EnvAuthPath, cfg.AuthPath)
	cfg.DatabasePath = getEnv(EnvDatabase, cfg.DatabasePath)
	cfg.ConfigFile = getEnv(EnvConfigFile, cfg.ConfigFile)

	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		cfg.RequestTimeout = d
	}
	if v := os.Getenv(EnvRateLimit); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRateLimit, err)
		}
		cfg.RateLimit = f
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{EnvRateBurst, &cfg.RateBurst},
		{EnvWidth, &cfg.Width},
		{EnvNarrowWidth, &cfg.NarrowWidth},
	}
	for _, it := range ints {
		v := os.Getenv(it.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", it.name, err)
		}
		*it.dst = n
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
