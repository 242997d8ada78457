// Package config builds the process configuration once at startup. The
// resulting Config is a plain value and is never mutated afterwards.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPort    = 3001
	DefaultBaseURL = "https://router.requesty.ai/v1"
	DefaultModel   = "vertex/google/gemini-2.5-pro"
)

const (
	ExtractionGreedy   = "greedy"
	ExtractionBalanced = "balanced"

	ThemeValidationOff    = "off"
	ThemeValidationStrict = "strict"
)

type Config struct {
	Port             int
	BaseURL          string
	Model            string
	APIKey           string
	APIKeyParam      string
	UpstreamTimeout  time.Duration
	JSONExtraction   string
	ThemeValidation  string
	InteractionTable string
	LogLevel         slog.Level
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// FromEnv loads the configuration from the process environment.
func FromEnv() (Config, error) {
	return Load(os.LookupEnv)
}

// Load reads every setting through lookup. Blank values fall back to the
// defaults; malformed values are reported rather than silently replaced.
func Load(lookup LookupFunc) (Config, error) {
	get := func(key, def string) string {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return def
		}
		return strings.TrimSpace(v)
	}

	cfg := Config{
		BaseURL:          get("REQUESTY_BASE_URL", DefaultBaseURL),
		Model:            get("REQUESTY_MODEL", DefaultModel),
		APIKey:           get("REQUESTY_API_KEY", ""),
		APIKeyParam:      get("REQUESTY_API_KEY_PARAM", ""),
		InteractionTable: get("INTERACTION_TABLE", ""),
	}

	port, err := strconv.Atoi(get("PORT", strconv.Itoa(DefaultPort)))
	if err != nil || port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("config: invalid PORT %q", get("PORT", ""))
	}
	cfg.Port = port

	timeout, err := time.ParseDuration(get("UPSTREAM_TIMEOUT", "0s"))
	if err != nil || timeout < 0 {
		return Config{}, fmt.Errorf("config: invalid UPSTREAM_TIMEOUT %q", get("UPSTREAM_TIMEOUT", ""))
	}
	cfg.UpstreamTimeout = timeout

	cfg.JSONExtraction = strings.ToLower(get("JSON_EXTRACTION", ExtractionGreedy))
	switch cfg.JSONExtraction {
	case ExtractionGreedy, ExtractionBalanced:
	default:
		return Config{}, fmt.Errorf("config: invalid JSON_EXTRACTION %q", cfg.JSONExtraction)
	}

	cfg.ThemeValidation = strings.ToLower(get("THEME_VALIDATION", ThemeValidationOff))
	switch cfg.ThemeValidation {
	case ThemeValidationOff, ThemeValidationStrict:
	default:
		return Config{}, fmt.Errorf("config: invalid THEME_VALIDATION %q", cfg.ThemeValidation)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(get("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("config: invalid LOG_LEVEL: %w", err)
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// NeedsAWS reports whether any AWS-backed integration is enabled.
func (c Config) NeedsAWS() bool {
	return c.InteractionTable != "" || (c.APIKey == "" && c.APIKeyParam != "")
}
