package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func envMap(vals map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := vals[key]
		return v, ok
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(envMap(nil))
	require.NoError(t, err)
	require.Equal(t, DefaultPort, cfg.Port)
	require.Equal(t, ":3001", cfg.Addr())
	require.Equal(t, DefaultBaseURL, cfg.BaseURL)
	require.Equal(t, DefaultModel, cfg.Model)
	require.Empty(t, cfg.APIKey)
	require.Zero(t, cfg.UpstreamTimeout)
	require.Equal(t, ExtractionGreedy, cfg.JSONExtraction)
	require.Equal(t, ThemeValidationOff, cfg.ThemeValidation)
	require.Equal(t, slog.LevelInfo, cfg.LogLevel)
	require.False(t, cfg.NeedsAWS())
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := Load(envMap(map[string]string{
		"PORT":              "8080",
		"REQUESTY_BASE_URL": "http://localhost:9000",
		"REQUESTY_MODEL":    "openai/gpt-4o-mini",
		"REQUESTY_API_KEY":  " sk-test ",
		"UPSTREAM_TIMEOUT":  "45s",
		"JSON_EXTRACTION":   "Balanced",
		"THEME_VALIDATION":  "strict",
		"INTERACTION_TABLE": "interactions",
		"LOG_LEVEL":         "debug",
	}))
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "http://localhost:9000", cfg.BaseURL)
	require.Equal(t, "openai/gpt-4o-mini", cfg.Model)
	require.Equal(t, "sk-test", cfg.APIKey)
	require.Equal(t, 45*time.Second, cfg.UpstreamTimeout)
	require.Equal(t, ExtractionBalanced, cfg.JSONExtraction)
	require.Equal(t, ThemeValidationStrict, cfg.ThemeValidation)
	require.Equal(t, slog.LevelDebug, cfg.LogLevel)
	require.True(t, cfg.NeedsAWS())
}

func TestLoad_BlankValuesUseDefaults(t *testing.T) {
	cfg, err := Load(envMap(map[string]string{"PORT": "  ", "REQUESTY_MODEL": ""}))
	require.NoError(t, err)
	require.Equal(t, DefaultPort, cfg.Port)
	require.Equal(t, DefaultModel, cfg.Model)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := []struct {
		key, value, want string
	}{
		{"PORT", "abc", "PORT"},
		{"PORT", "70000", "PORT"},
		{"UPSTREAM_TIMEOUT", "soon", "UPSTREAM_TIMEOUT"},
		{"UPSTREAM_TIMEOUT", "-1s", "UPSTREAM_TIMEOUT"},
		{"JSON_EXTRACTION", "lazy", "JSON_EXTRACTION"},
		{"THEME_VALIDATION", "loose", "THEME_VALIDATION"},
		{"LOG_LEVEL", "chatty", "LOG_LEVEL"},
	}
	for _, tc := range cases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			_, err := Load(envMap(map[string]string{tc.key: tc.value}))
			require.ErrorContains(t, err, tc.want)
		})
	}
}

func TestNeedsAWS_ParamOnlyWhenKeyMissing(t *testing.T) {
	cfg, err := Load(envMap(map[string]string{"REQUESTY_API_KEY_PARAM": "/code-assistant/requesty"}))
	require.NoError(t, err)
	require.True(t, cfg.NeedsAWS())

	cfg, err = Load(envMap(map[string]string{
		"REQUESTY_API_KEY_PARAM": "/code-assistant/requesty",
		"REQUESTY_API_KEY":       "sk-direct",
	}))
	require.NoError(t, err)
	require.False(t, cfg.NeedsAWS())
}
