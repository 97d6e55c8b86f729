// Package config reads the server settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultAddr      = ":8080"
	DefaultMaterials = "materials.yaml"
	DefaultRate      = 5.0
	DefaultBurst     = 10
	DefaultStaticDir = "./static"
)

type Config struct {
	Addr      string
	TLSCert   string
	TLSKey    string
	Materials string
	Rate      float64
	Burst     int
	LogLevel  slog.Level
	StaticDir string
}

// TLS reports whether both certificate and key are configured.
func (c *Config) TLS() bool { return c.TLSCert != "" && c.TLSKey != "" }

// Load applies the .env files (missing ones are ignored) and reads the
// FATIGUE_* variables. Variables already set in the environment win.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: %s: %w", f, err)
		}
	}

	cfg := &Config{
		Addr:      env("FATIGUE_ADDR", DefaultAddr),
		TLSCert:   os.Getenv("FATIGUE_TLS_CERT"),
		TLSKey:    os.Getenv("FATIGUE_TLS_KEY"),
		Materials: env("FATIGUE_MATERIALS", DefaultMaterials),
		Rate:      DefaultRate,
		Burst:     DefaultBurst,
		StaticDir: env("FATIGUE_STATIC_DIR", DefaultStaticDir),
	}
	var err error
	if v := os.Getenv("FATIGUE_RATE"); v != "" {
		if cfg.Rate, err = strconv.ParseFloat(v, 64); err != nil {
			return nil, fmt.Errorf("config: FATIGUE_RATE: %w", err)
		}
	}
	if v := os.Getenv("FATIGUE_BURST"); v != "" {
		if cfg.Burst, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("config: FATIGUE_BURST: %w", err)
		}
	}
	if v := os.Getenv("FATIGUE_LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(strings.ToUpper(v))); err != nil {
			return nil, fmt.Errorf("config: FATIGUE_LOG_LEVEL: %w", err)
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return errors.New("config: FATIGUE_ADDR is empty")
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return errors.New("config: FATIGUE_TLS_CERT and FATIGUE_TLS_KEY must be set together")
	}
	if !(c.Rate > 0) {
		return fmt.Errorf("config: FATIGUE_RATE must be positive, got %g", c.Rate)
	}
	if c.Burst < 1 {
		return fmt.Errorf("config: FATIGUE_BURST must be at least 1, got %d", c.Burst)
	}
	return nil
}
