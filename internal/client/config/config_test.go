package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/skykit/internal/common"
	"github.com/dmitrijs2005/skykit/internal/ratelimit"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, common.DefaultService, c.Service)
	assert.Equal(t, common.DefaultChatProxy, c.ChatProxy)
	assert.Equal(t, ratelimit.DefaultCapacity, c.RateLimit)
	assert.Equal(t, 300*time.Second, c.RateLimitInterval)
	assert.Equal(t, "info", c.LogLevel)
	require.NoError(t, c.Validate())
}

func TestLoad_DefaultsOnly(t *testing.T) {
	cfg, err := Load(nil, nil)
	require.NoError(t, err)

	var want Config
	want.LoadDefaults()
	assert.Empty(t, cmp.Diff(&want, cfg))
}

func TestLoad_Precedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"service":             "https://json.example",
		"langs":               []string{"de"},
		"rate_limit":          100,
		"rate_limit_interval": "10s",
		"session_db":          "json.db",
		"log_level":           "warn",
	})

	environ := []string{
		"SKYKIT_SERVICE=https://env.example",
		"SKYKIT_RATE_LIMIT=200",
		"SKYKIT_PASSWORD=secret",
		"SKYKIT_LANGS=en, pt",
		"UNRELATED=1",
	}
	args := []string{"-c", path, "-s", "https://flag.example", "-detect-lang", "-other", "x"}

	cfg, err := Load(args, environ)
	require.NoError(t, err)

	assert.Equal(t, "https://flag.example", cfg.Service, "flags win")
	assert.Equal(t, 200, cfg.RateLimit, "env beats json")
	assert.Equal(t, 10*time.Second, cfg.RateLimitInterval, "json beats defaults")
	assert.Equal(t, []string{"en", "pt"}, cfg.Langs)
	assert.Equal(t, "json.db", cfg.SessionDB)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "secret", cfg.Password)
	assert.True(t, cfg.DetectLanguage)
}

func TestLoad_Flags(t *testing.T) {
	args := []string{"-u", "@alice.test", "-langs", "en,fr", "-rate", "5", "-rate-interval", "1m", "-db", "", "-log-level", "debug", "-timeout", "5s"}

	cfg, err := Load(args, nil)
	require.NoError(t, err)

	assert.Equal(t, "@alice.test", cfg.Identifier)
	assert.Equal(t, []string{"en", "fr"}, cfg.Langs)
	assert.Equal(t, 5, cfg.RateLimit)
	assert.Equal(t, time.Minute, cfg.RateLimitInterval)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.DetectLanguage)
}

func TestLoad_Errors(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

	tests := []struct {
		name    string
		args    []string
		environ []string
	}{
		{"invalid json", []string{"-c", bad}, nil},
		{"bad flag value", []string{"-rate", "abc"}, nil},
		{"bad env int", nil, []string{"SKYKIT_RATE_LIMIT=lots"}},
		{"bad env duration", nil, []string{"SKYKIT_RATE_LIMIT_INTERVAL=soon"}},
		{"bad service", []string{"-s", "ftp://x"}, nil},
		{"zero rate", []string{"-rate", "0"}, nil},
		{"bad json duration", []string{"-c", writeTempJSON(t, map[string]any{"rate_limit_interval": "soon"})}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.args, tt.environ)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	_, err := Load([]string{"-c", filepath.Join(t.TempDir(), "missing.json")}, nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
