package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_URL", "")
	t.Setenv("NEXT_PUBLIC_API_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.Backend.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Backend.RequestTimeout)
	assert.Equal(t, OrderingLatestIntent, cfg.Backend.Ordering)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, "dashboard_session", cfg.Sessions.CookieName)
}

func TestLoadBackendURLPrecedence(t *testing.T) {
	t.Setenv("API_URL", "")
	t.Setenv("NEXT_PUBLIC_API_URL", "http://frontend-env:9000/")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://frontend-env:9000", cfg.Backend.BaseURL)

	t.Setenv("API_URL", "http://backend:8000")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "http://backend:8000", cfg.Backend.BaseURL)
}

func TestParseOrdering(t *testing.T) {
	assert.Equal(t, OrderingCompletion, parseOrdering(" Completion "))
	assert.Equal(t, OrderingLatestIntent, parseOrdering("latest-intent"))
	assert.Equal(t, OrderingLatestIntent, parseOrdering("bogus"))
}

func TestParseDurationFallback(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("nope", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("-5s", time.Minute))
	assert.Equal(t, 3*time.Second, parseDuration("3s", time.Minute))
}
