// Package config loads gridloc settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const envPrefix = "GRIDLOC_"

// Config holds all run settings.
type Config struct {
	InputDir      string
	OutputFile    string
	VersionFile   string
	Extensions    []string
	Sheet         string
	LogLevel      string
	LogFormat     string
	SkipLogLimit  int
	NormalizeText bool
	MetricsFile   string
}

// Load reads configuration from GRIDLOC_* environment variables, applying
// defaults where unset. Variables in ./.env are loaded first but never
// override the real environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	skipLogLimit, err := envInt("SKIP_LOG_LIMIT", 10)
	if err != nil {
		return nil, err
	}
	if skipLogLimit < 0 {
		return nil, errors.New("invalid GRIDLOC_SKIP_LOG_LIMIT: must not be negative")
	}

	normalize, err := envBool("NORMALIZE_TEXT", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		InputDir:      envOrDefault("INPUT_DIR", "raw"),
		OutputFile:    envOrDefault("OUTPUT_FILE", "processed/location.json"),
		VersionFile:   envOrDefault("VERSION_FILE", "processed/location_version.txt"),
		Extensions:    parseExtensions(envOrDefault("EXTENSIONS", ".xlsx,.xlsm,.csv")),
		Sheet:         envOrDefault("SHEET", ""),
		LogLevel:      strings.ToLower(envOrDefault("LOG_LEVEL", "info")),
		LogFormat:     strings.ToLower(envOrDefault("LOG_FORMAT", "console")),
		SkipLogLimit:  skipLogLimit,
		NormalizeText: normalize,
		MetricsFile:   envOrDefault("METRICS_FILE", ""),
	}

	if len(cfg.Extensions) == 0 {
		return nil, errors.New("GRIDLOC_EXTENSIONS is required")
	}
	if cfg.LogFormat != "console" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid GRIDLOC_LOG_FORMAT %q: want console or json", cfg.LogFormat)
	}
	if cfg.OutputFile == cfg.VersionFile {
		return nil, errors.New("GRIDLOC_OUTPUT_FILE and GRIDLOC_VERSION_FILE must differ")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(envPrefix + key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	s := strings.TrimSpace(os.Getenv(envPrefix + key))
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s%s: %w", envPrefix, key, err)
	}
	return n, nil
}

func envBool(key string, def bool) (bool, error) {
	s := strings.TrimSpace(os.Getenv(envPrefix + key))
	if s == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s%s: %w", envPrefix, key, err)
	}
	return b, nil
}

// parseExtensions splits a comma-separated list, lowercases each entry and
// adds a leading dot where missing.
func parseExtensions(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, ".") {
			p = "." + p
		}
		out = append(out, p)
	}
	return out
}
