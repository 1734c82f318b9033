package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Duration accepts either a Go duration string ("30s") or integer
// nanoseconds in JSON.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from zero values so a partial file only
// overrides what it names.
type JsonConfig struct {
	ServerURL      *string   `json:"server_url"`
	APIPath        *string   `json:"api_path"`
	AuthPath       *string   `json:"auth_path"`
	DatabasePath   *string   `json:"database_path"`
	RequestTimeout *Duration `json:"request_timeout"`
	RateLimit      *float64  `json:"rate_limit"`
	RateBurst      *int      `json:"rate_burst"`
	Width          *int      `json:"width"`
	NarrowWidth    *int      `json:"narrow_width"`
}

// parseJSON overlays cfg with the values present in the JSON file at path.
//
// Intended usage is: defaults -> env -> parseJSON -> flags, where later
// stages override earlier ones.
func parseJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.ServerURL != nil {
		cfg.ServerURL = *jc.ServerURL
	}
	if jc.APIPath != nil {
		cfg.APIPath = *jc.APIPath
	}
	if jc.AuthPath != nil {
		cfg.AuthPath = *jc.AuthPath
	}
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RateLimit != nil {
		cfg.RateLimit = *jc.RateLimit
	}
	if jc.RateBurst != nil {
		cfg.RateBurst = *jc.RateBurst
	}
	if jc.Width != nil {
		cfg.Width = *jc.Width
	}
	if jc.NarrowWidth != nil {
		cfg.NarrowWidth = *jc.NarrowWidth
	}
	return nil
}
