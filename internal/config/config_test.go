package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORTAIL_API_KEY", "PORTAIL_API_BASE_URL", "PORTAIL_HTTP_TIMEOUT", "PORTAIL_REFRESH_INTERVAL",
	"PORTAIL_DATA_DIR", "PORTAIL_DEMO", "PORTAIL_LOG_FILE",
	"SHEET_ID_CR", "SHEET_ID_MECA", "SHEET_ID_REM", "SHEET_ID_BS", "SHEET_ID_CAL", "SHEET_ID_ADP",
}

// clearEnv blanks every key for the test; t.Setenv restores them after.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://sheets.googleapis.com", cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 5*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, ModeRemote, cfg.Mode())
	assert.ErrorIs(t, cfg.Validate(), ErrMissingAPIKey)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "PORTAIL_API_KEY=abc\nSHEET_ID_BS=bs-sheet\nPORTAIL_REFRESH_INTERVAL=2m\nPORTAIL_DEMO=not-a-bool\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	t.Setenv("SHEET_ID_CAL", "from-env")

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "abc", cfg.APIKey)
	assert.Equal(t, "bs-sheet", cfg.SheetBS)
	assert.Equal(t, "from-env", cfg.SheetCalendar)
	assert.Equal(t, 2*time.Minute, cfg.RefreshInterval)
	assert.False(t, cfg.Demo, "unparsable bool falls back")
	assert.NoError(t, cfg.Validate())
}

func TestLoad_DemandesSheet(t *testing.T) {
	tests := []struct {
		name     string
		cr, adp  string
		expected string
	}{
		{"Defaults to the reports sheet", "cr-sheet", "", "cr-sheet"},
		{"Override", "cr-sheet", "adp-sheet", "adp-sheet"},
		{"Neither", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			if tt.cr != "" {
				t.Setenv("SHEET_ID_CR", tt.cr)
			}
			if tt.adp != "" {
				t.Setenv("SHEET_ID_ADP", tt.adp)
			}

			cfg, err := Load("")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.SheetDemandes)
		})
	}
}

func TestLoad_MissingEnvFileIsFine(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		cfg      Config
		expected error
	}{
		{"Demo needs nothing", Config{Demo: true}, nil},
		{"Data dir", Config{DataDir: dir}, nil},
		{"Missing data dir", Config{DataDir: filepath.Join(dir, "nope")}, ErrDataDirMissing},
		{"Remote without sheets", Config{APIKey: "k"}, ErrNoSheets},
		{"Remote", Config{APIKey: "k", SheetCalendar: "cal"}, nil},
		{"Interval too short", Config{Demo: true, RefreshInterval: time.Second}, ErrBadInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.expected == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestMode(t *testing.T) {
	assert.Equal(t, ModeDemo, Config{Demo: true, DataDir: "x"}.Mode())
	assert.Equal(t, ModeDir, Config{DataDir: "x"}.Mode())
	assert.Equal(t, ModeRemote, Config{}.Mode())
	assert.Equal(t, "demo", ModeDemo.String())
}
