package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv makes sure values from the developer's shell do not leak in.
// Viper treats empty env vars as unset, so defaults apply.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir()) // no .env here
	for _, k := range []string{"APP_ENV", "LOG_LEVEL", "COUNTDOWN_SECONDS", "COUNTDOWN_TICK", "METRICS_ADDR"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.Equal(t, 3, cfg.Countdown.Steps)
	assert.Equal(t, time.Second, cfg.Countdown.Tick)
	assert.Empty(t, cfg.MetricsAddr)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("COUNTDOWN_SECONDS", "5")
	t.Setenv("COUNTDOWN_TICK", "250ms")
	t.Setenv("METRICS_ADDR", ":9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.IsDev())
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	assert.Equal(t, 5, cfg.Countdown.Steps)
	assert.Equal(t, 250*time.Millisecond, cfg.Countdown.Tick)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
}

func TestLoad_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
	}{
		{name: "bad tick", env: map[string]string{"COUNTDOWN_TICK": "soon"}},
		{name: "zero tick", env: map[string]string{"COUNTDOWN_TICK": "0s"}},
		{name: "negative seconds", env: map[string]string{"COUNTDOWN_SECONDS": "-1"}},
		{name: "bad log level", env: map[string]string{"LOG_LEVEL": "loud"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
