package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	ErrMissingAPIKey  = errors.New("PORTAIL_API_KEY is required")
	ErrNoSheets       = errors.New("at least one SHEET_ID_* is required")
	ErrBadInterval    = errors.New("PORTAIL_REFRESH_INTERVAL must be at least 10s")
	ErrDataDirMissing = errors.New("PORTAIL_DATA_DIR does not exist")
)

// Mode says where sheet rows come from.
type Mode int

const (
	ModeRemote Mode = iota
	ModeDir
	ModeDemo
)

func (m Mode) String() string {
	switch m {
	case ModeDir:
		return "dir"
	case ModeDemo:
		return "demo"
	}
	return "remote"
}

type Config struct {
	APIKey          string
	APIBaseURL      string
	HTTPTimeout     time.Duration
	RefreshInterval time.Duration
	DataDir         string
	Demo            bool
	LogFile         string

	// Spreadsheet ids, one per source family.
	SheetVacations    string
	SheetMecanisation string
	SheetRemise       string
	SheetBS           string
	SheetCalendar     string
	SheetDemandes     string
}

// Load reads envFile (if present) into the environment, then builds the
// configuration from environment variables. Variables already set win over
// the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := Config{
		APIKey:            strings.TrimSpace(os.Getenv("PORTAIL_API_KEY")),
		APIBaseURL:        getEnv("PORTAIL_API_BASE_URL", "https://sheets.googleapis.com"),
		HTTPTimeout:       getDurationEnv("PORTAIL_HTTP_TIMEOUT", 15*time.Second),
		RefreshInterval:   getDurationEnv("PORTAIL_REFRESH_INTERVAL", 5*time.Minute),
		DataDir:           strings.TrimSpace(os.Getenv("PORTAIL_DATA_DIR")),
		Demo:              getBoolEnv("PORTAIL_DEMO", false),
		LogFile:           strings.TrimSpace(os.Getenv("PORTAIL_LOG_FILE")),
		SheetVacations:    strings.TrimSpace(os.Getenv("SHEET_ID_CR")),
		SheetMecanisation: strings.TrimSpace(os.Getenv("SHEET_ID_MECA")),
		SheetRemise:       strings.TrimSpace(os.Getenv("SHEET_ID_REM")),
		SheetBS:           strings.TrimSpace(os.Getenv("SHEET_ID_BS")),
		SheetCalendar:     strings.TrimSpace(os.Getenv("SHEET_ID_CAL")),
	}
	// The ADP requests live in the reports spreadsheet unless overridden.
	cfg.SheetDemandes = getEnv("SHEET_ID_ADP", cfg.SheetVacations)

	return cfg, nil
}

// Mode picks demo over a data directory over the remote API.
func (c Config) Mode() Mode {
	switch {
	case c.Demo:
		return ModeDemo
	case c.DataDir != "":
		return ModeDir
	}
	return ModeRemote
}

// Validate checks what the selected mode needs.
func (c Config) Validate() error {
	if c.RefreshInterval != 0 && c.RefreshInterval < 10*time.Second {
		return ErrBadInterval
	}

	switch c.Mode() {
	case ModeDir:
		info, err := os.Stat(c.DataDir)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("%w: %s", ErrDataDirMissing, c.DataDir)
		}
	case ModeRemote:
		if c.APIKey == "" {
			return ErrMissingAPIKey
		}
		if !c.HasSheets() {
			return ErrNoSheets
		}
	}

	return nil
}

func (c Config) HasSheets() bool {
	return c.SheetVacations != "" || c.SheetMecanisation != "" || c.SheetRemise != "" ||
		c.SheetBS != "" || c.SheetCalendar != "" || c.SheetDemandes != ""
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getBoolEnv(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
