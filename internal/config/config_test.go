package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.ListenAddr)
	assert.Equal(t, ":8080", cfg.APIAddr)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Equal(t, 30*time.Second, cfg.FetchInterval)
	assert.Equal(t, ModeBalance, cfg.Mode)
	assert.Equal(t, 1000, cfg.WarmupLimit)
	assert.Zero(t, cfg.ExpectedKeys)
	assert.False(t, cfg.Verbose)
}

func TestParseFlags(t *testing.T) {
	cfg, err := Parse([]string{
		"-verbose",
		"-controller", "https://controller:8443",
		"-fetch-interval", "5",
		"-mode", "strict",
		"-expected-keys", "50000",
		"-warmup-db", "/data/meta.db",
	})
	require.NoError(t, err)

	assert.True(t, cfg.Verbose)
	assert.Equal(t, "https://controller:8443", cfg.ControllerURL)
	assert.Equal(t, 5*time.Second, cfg.FetchInterval)
	assert.Equal(t, ModeStrict, cfg.Mode)
	assert.Equal(t, uint(50000), cfg.ExpectedKeys)
	assert.Equal(t, "/data/meta.db", cfg.WarmupDB)
}

func TestParseRejectsInvalid(t *testing.T) {
	for _, args := range [][]string{
		{"-mode", "loose"},
		{"-fetch-interval", "0"},
		{"-expected-keys", "-1"},
		{"-no-such-flag"},
	} {
		_, err := Parse(args)
		assert.Error(t, err, "%v", args)
	}
}
