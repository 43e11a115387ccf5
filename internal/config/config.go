// Package config resolves runtime settings. A YAML file supplies a base and
// DAYPLAN_* environment variables override it field by field.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

type TelegramConfig struct {
	Token   string `yaml:"token"`
	BaseURL string `yaml:"base_url"`
}

// Enabled reports whether reminders and notices go out over Telegram.
func (t TelegramConfig) Enabled() bool {
	return t.Token != ""
}

type Config struct {
	DBPath           string         `yaml:"db"`
	TimeZone         string         `yaml:"timezone"`
	LogLevel         string         `yaml:"log_level"`
	LogUseCases      bool           `yaml:"log_use_cases"`
	ReminderLeadDays int            `yaml:"reminder_lead_days"`
	Telegram         TelegramConfig `yaml:"telegram"`
}

// Default returns the configuration used when nothing is set. The database
// lives under ~/.dayplan unless the home directory cannot be resolved.
func Default() Config {
	dbPath := "dayplan.db"
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".dayplan", "dayplan.db")
	}
	return Config{
		DBPath:           dbPath,
		TimeZone:         "Local",
		LogLevel:         "info",
		ReminderLeadDays: 1,
	}
}

// Load reads path (or $DAYPLAN_CONFIG when path is empty) over the defaults
// and then applies environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("DAYPLAN_CONFIG")
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DAYPLAN_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("DAYPLAN_TZ"); v != "" {
		cfg.TimeZone = v
	}
	if v := os.Getenv("DAYPLAN_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("DAYPLAN_LOG_USECASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("DAYPLAN_REMINDER_LEAD_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.ReminderLeadDays = n
		}
	}
	if v := os.Getenv("DAYPLAN_TELEGRAM_TOKEN"); v != "" {
		cfg.Telegram.Token = v
	}
	if v := os.Getenv("DAYPLAN_TELEGRAM_BASE_URL"); v != "" {
		cfg.Telegram.BaseURL = v
	}
}

// Validate checks the values that would otherwise fail late at startup.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.ReminderLeadDays < 0 {
		return fmt.Errorf("reminder_lead_days must not be negative")
	}
	return nil
}

// Location resolves TimeZone. Calendar days and "HH:MM" slots are read in it.
func (c Config) Location() (*time.Location, error) {
	if c.TimeZone == "" || strings.EqualFold(c.TimeZone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
