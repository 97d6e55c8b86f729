package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"FATIGUE_ADDR", "FATIGUE_TLS_CERT", "FATIGUE_TLS_KEY", "FATIGUE_MATERIALS",
	"FATIGUE_RATE", "FATIGUE_BURST", "FATIGUE_LOG_LEVEL", "FATIGUE_STATIC_DIR",
}

// clearEnv blanks every variable for the test; t.Setenv restores them.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func missing(t *testing.T) string { return filepath.Join(t.TempDir(), "absent.env") }

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(missing(t))
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Addr:      DefaultAddr,
		Materials: DefaultMaterials,
		Rate:      DefaultRate,
		Burst:     DefaultBurst,
		LogLevel:  slog.LevelInfo,
		StaticDir: DefaultStaticDir,
	}, cfg)
	assert.False(t, cfg.TLS())
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("FATIGUE_ADDR", ":9443")
	t.Setenv("FATIGUE_TLS_CERT", "server.crt")
	t.Setenv("FATIGUE_TLS_KEY", "server.key")
	t.Setenv("FATIGUE_RATE", "0.5")
	t.Setenv("FATIGUE_BURST", "2")
	t.Setenv("FATIGUE_LOG_LEVEL", "debug")

	cfg, err := Load(missing(t))
	require.NoError(t, err)
	assert.Equal(t, ":9443", cfg.Addr)
	assert.True(t, cfg.TLS())
	assert.Equal(t, 0.5, cfg.Rate)
	assert.Equal(t, 2, cfg.Burst)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("FATIGUE_MATERIALS=/etc/fatigue/presets.yaml\nFATIGUE_BURST=4\n"), 0o644))
	t.Setenv("FATIGUE_BURST", "7")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/etc/fatigue/presets.yaml", cfg.Materials)
	assert.Equal(t, 7, cfg.Burst)
}

func TestLoad_Invalid(t *testing.T) {
	for name, env := range map[string][2]string{
		"rate":      {"FATIGUE_RATE", "fast"},
		"zero rate": {"FATIGUE_RATE", "0"},
		"burst":     {"FATIGUE_BURST", "0"},
		"level":     {"FATIGUE_LOG_LEVEL", "loud"},
		"half tls":  {"FATIGUE_TLS_CERT", "server.crt"},
	} {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(env[0], env[1])
			_, err := Load(missing(t))
			assert.Error(t, err)
		})
	}
}
