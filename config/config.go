package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/pnlreport/calendar"
)

// Config is the persisted application configuration.
type Config struct {
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
	Sync     SyncConfig     `json:"sync" yaml:"sync"`
	View     ViewConfig     `json:"view" yaml:"view"`
	Calendar CalendarConfig `json:"calendar" yaml:"calendar"`
	Log      LogConfig      `json:"log" yaml:"log"`
}

// JournalConfig locates the SQLite journal.
type JournalConfig struct {
	DBPath string `json:"db_path" yaml:"db_path"`
}

// SyncConfig controls the remote spreadsheet bridge.
type SyncConfig struct {
	URL      string `json:"url,omitempty" yaml:"url,omitempty"`
	AutoSync bool   `json:"auto_sync" yaml:"auto_sync"`
	Debounce string `json:"debounce" yaml:"debounce"` // e.g. "2s"
	Timeout  string `json:"timeout" yaml:"timeout"`
}

// DebounceDuration parses Debounce; blank means zero.
func (s SyncConfig) DebounceDuration() (time.Duration, error) {
	return parseDuration(s.Debounce)
}

// TimeoutDuration parses Timeout; blank means zero.
func (s SyncConfig) TimeoutDuration() (time.Duration, error) {
	return parseDuration(s.Timeout)
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

type ViewConfig struct {
	MinimizePastMonths  bool `json:"minimize_past_months" yaml:"minimize_past_months"`
	ExcludeCurrentMonth bool `json:"exclude_current_month" yaml:"exclude_current_month"`
}

// CalendarConfig is the selected heatmap range. From and To are only used
// when Range is "custom".
type CalendarConfig struct {
	Range string `json:"range" yaml:"range"`
	From  string `json:"from,omitempty" yaml:"from,omitempty"`
	To    string `json:"to,omitempty" yaml:"to,omitempty"`
}

// Spec converts the selection for calendar.Resolve.
func (c CalendarConfig) Spec() calendar.Spec {
	return calendar.Spec{Name: c.Range, From: c.From, To: c.To}
}

type LogConfig struct {
	Level       string `json:"level" yaml:"level"`
	Encoding    string `json:"encoding" yaml:"encoding"` // "console" or "json"
	Development bool   `json:"development" yaml:"development"`
}

// LoadFromFile loads configuration from a file, YAML first with a JSON fallback.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Load reads path when it exists and returns defaults otherwise.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return LoadFromFile(path)
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Journal.DBPath) == "" {
		return fmt.Errorf("journal.db_path is required")
	}
	if d, err := c.Sync.DebounceDuration(); err != nil || d < 0 {
		return fmt.Errorf("sync.debounce must be a non-negative duration")
	}
	if d, err := c.Sync.TimeoutDuration(); err != nil || d < 0 {
		return fmt.Errorf("sync.timeout must be a non-negative duration")
	}
	if c.Sync.AutoSync && strings.TrimSpace(c.Sync.URL) == "" {
		return fmt.Errorf("sync.url is required when sync.auto_sync is on")
	}
	if _, err := calendar.Resolve(c.Calendar.Spec(), time.Now()); err != nil {
		return fmt.Errorf("calendar: %w", err)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Encoding != "console" && c.Log.Encoding != "json" {
		return fmt.Errorf("log.encoding must be 'console' or 'json'")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Journal: JournalConfig{
			DBPath: "./pnl.db",
		},
		Sync: SyncConfig{
			Debounce: "2s",
			Timeout:  "15s",
		},
		Calendar: CalendarConfig{
			Range: calendar.LastMonth,
		},
		Log: LogConfig{
			Level:    "info",
			Encoding: "console",
		},
	}
}

// Keys lists every key Set accepts.
var Keys = []string{
	"journal.db_path",
	"sync.url", "sync.auto_sync", "sync.debounce", "sync.timeout",
	"view.minimize_past_months", "view.exclude_current_month",
	"calendar.range", "calendar.from", "calendar.to",
	"log.level", "log.encoding", "log.development",
}

// Set assigns one dotted key from its text form. It does not validate the
// resulting config.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "journal.db_path":
		c.Journal.DBPath = value
	case "sync.url":
		c.Sync.URL = value
	case "sync.auto_sync":
		return setBool(&c.Sync.AutoSync, key, value)
	case "sync.debounce":
		c.Sync.Debounce = value
	case "sync.timeout":
		c.Sync.Timeout = value
	case "view.minimize_past_months":
		return setBool(&c.View.MinimizePastMonths, key, value)
	case "view.exclude_current_month":
		return setBool(&c.View.ExcludeCurrentMonth, key, value)
	case "calendar.range":
		c.Calendar.Range = value
	case "calendar.from":
		c.Calendar.From = value
	case "calendar.to":
		c.Calendar.To = value
	case "log.level":
		c.Log.Level = value
	case "log.encoding":
		c.Log.Encoding = value
	case "log.development":
		return setBool(&c.Log.Development, key, value)
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

func setBool(dst *bool, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("%s: %q is not a boolean", key, value)
	}
	*dst = b
	return nil
}

// envKeys maps PNL_* environment variables onto config keys.
var envKeys = map[string]string{
	"PNL_DB_PATH":               "journal.db_path",
	"PNL_SYNC_URL":              "sync.url",
	"PNL_AUTO_SYNC":             "sync.auto_sync",
	"PNL_SYNC_DEBOUNCE":         "sync.debounce",
	"PNL_SYNC_TIMEOUT":          "sync.timeout",
	"PNL_MINIMIZE_PAST_MONTHS":  "view.minimize_past_months",
	"PNL_EXCLUDE_CURRENT_MONTH": "view.exclude_current_month",
	"PNL_CALENDAR_RANGE":        "calendar.range",
	"PNL_LOG_LEVEL":             "log.level",
	"PNL_LOG_ENCODING":          "log.encoding",
}

// ApplyEnv loads envFile into the process environment when it exists and
// then applies any PNL_* overrides. Variables already set in the
// environment win over the file.
func (c *Config) ApplyEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	for env, key := range envKeys {
		v, ok := os.LookupEnv(env)
		if !ok || v == "" {
			continue
		}
		if err := c.Set(key, v); err != nil {
			return fmt.Errorf("%s: %w", env, err)
		}
	}
	return nil
}
