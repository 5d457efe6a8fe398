package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"INPUT_DIR", "OUTPUT_FILE", "VERSION_FILE", "EXTENSIONS", "SHEET",
	"LOG_LEVEL", "LOG_FORMAT", "SKIP_LOG_LIMIT", "NORMALIZE_TEXT", "METRICS_FILE",
}

// clearEnv unsets every GRIDLOC_ variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(envPrefix+k, "")
		require.NoError(t, os.Unsetenv(envPrefix+k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, &Config{
		InputDir:      "raw",
		OutputFile:    "processed/location.json",
		VersionFile:   "processed/location_version.txt",
		Extensions:    []string{".xlsx", ".xlsm", ".csv"},
		LogLevel:      "info",
		LogFormat:     "console",
		SkipLogLimit:  10,
		NormalizeText: false,
	}, cfg)
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("GRIDLOC_INPUT_DIR", "/data/kma")
	t.Setenv("GRIDLOC_OUTPUT_FILE", "/srv/location.json")
	t.Setenv("GRIDLOC_VERSION_FILE", "/srv/location_version.txt")
	t.Setenv("GRIDLOC_EXTENSIONS", "XLSX, csv ,")
	t.Setenv("GRIDLOC_SHEET", "최종 업데이트 파일")
	t.Setenv("GRIDLOC_LOG_LEVEL", "DEBUG")
	t.Setenv("GRIDLOC_LOG_FORMAT", "json")
	t.Setenv("GRIDLOC_SKIP_LOG_LIMIT", "0")
	t.Setenv("GRIDLOC_NORMALIZE_TEXT", "true")
	t.Setenv("GRIDLOC_METRICS_FILE", "/var/lib/node_exporter/gridloc.prom")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "/data/kma", cfg.InputDir)
	assert.Equal(t, "/srv/location.json", cfg.OutputFile)
	assert.Equal(t, "/srv/location_version.txt", cfg.VersionFile)
	assert.Equal(t, []string{".xlsx", ".csv"}, cfg.Extensions)
	assert.Equal(t, "최종 업데이트 파일", cfg.Sheet)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 0, cfg.SkipLogLimit)
	assert.True(t, cfg.NormalizeText)
	assert.Equal(t, "/var/lib/node_exporter/gridloc.prom", cfg.MetricsFile)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("GRIDLOC_INPUT_DIR=from-dotenv\nGRIDLOC_LOG_LEVEL=warn\n"), 0o644))
	t.Setenv("GRIDLOC_LOG_LEVEL", "error")
	t.Cleanup(func() { os.Unsetenv("GRIDLOC_INPUT_DIR") })

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.InputDir)
	assert.Equal(t, "error", cfg.LogLevel, "real environment wins over .env")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"skip limit not a number", map[string]string{"SKIP_LOG_LIMIT": "ten"}, "invalid GRIDLOC_SKIP_LOG_LIMIT"},
		{"negative skip limit", map[string]string{"SKIP_LOG_LIMIT": "-1"}, "invalid GRIDLOC_SKIP_LOG_LIMIT"},
		{"bad bool", map[string]string{"NORMALIZE_TEXT": "maybe"}, "invalid GRIDLOC_NORMALIZE_TEXT"},
		{"no extensions", map[string]string{"EXTENSIONS": " , "}, "GRIDLOC_EXTENSIONS is required"},
		{"bad log format", map[string]string{"LOG_FORMAT": "xml"}, "invalid GRIDLOC_LOG_FORMAT"},
		{"same output paths", map[string]string{"OUTPUT_FILE": "out.json", "VERSION_FILE": "out.json"}, "must differ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Chdir(t.TempDir())
			for k, v := range tt.env {
				t.Setenv(envPrefix+k, v)
			}

			cfg, err := Load()

			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseExtensions(t *testing.T) {
	assert.Equal(t, []string{".xlsx", ".csv", ".xlsm"}, parseExtensions("xlsx,.CSV, XLSM "))
	assert.Empty(t, parseExtensions(""))
}
