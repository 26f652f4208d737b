package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcess_Defaults(t *testing.T) {
	cfg, err := Process(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "jwt", cfg.Session.CookieName)
	assert.False(t, cfg.Session.CookieSecure)
	assert.Equal(t, "http://localhost:8080", cfg.Backend.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, DirectoryBackend, cfg.Backend.Directory)
	assert.Equal(t, 4, cfg.Signals.Workers)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestProcess_Overrides(t *testing.T) {
	cfg, err := Process(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV":                   "production",
		"SESSION_COOKIE_SECURE": "true",
		"BACKEND_TIMEOUT":       "750ms",
		"USER_DIRECTORY":        " Mongo ",
		"SIGNAL_WORKERS":        "8",
		"REDIS_DB":              "2",
	}))
	require.NoError(t, err)

	assert.False(t, cfg.IsDevelopment())
	assert.True(t, cfg.Session.CookieSecure)
	assert.Equal(t, 750*time.Millisecond, cfg.Backend.Timeout)
	assert.Equal(t, DirectoryMongo, cfg.Backend.Directory)
	assert.Equal(t, 8, cfg.Signals.Workers)
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestProcess_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"directory": {"USER_DIRECTORY": "ldap"},
		"workers":   {"SIGNAL_WORKERS": "0"},
		"timeout":   {"BACKEND_TIMEOUT": "soon"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Process(context.Background(), envconfig.MapLookuper(env))
			assert.Error(t, err)
		})
	}
}
