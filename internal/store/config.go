package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	DefaultServerAddr     = "127.0.0.1:8787"
	DefaultReminderCron   = "*/1 * * * *"
	DefaultReminderWindow = 60 * time.Minute
)

type Config struct {
	// DataDir overrides where the SQLite database lives.
	DataDir string `json:"dataDir,omitempty"`
	// Timezone is an IANA zone name used for picker display and labels.
	Timezone string `json:"timezone,omitempty"`
	// QuickTimes replaces the picker's quick-pick buttons ("HH:MM").
	QuickTimes []string `json:"quickTimes,omitempty"`
	// Currency is the default for new expenses.
	Currency string `json:"currency,omitempty"`

	Server    *ServerConfig   `json:"server,omitempty"`
	Reminders *ReminderConfig `json:"reminders,omitempty"`
	TUI       *TUIConfig      `json:"tui,omitempty"`
}

type ServerConfig struct {
	Addr string `json:"addr,omitempty"`
}

type ReminderConfig struct {
	// Cron is a standard five-field schedule.
	Cron          string `json:"cron,omitempty"`
	WindowMinutes int    `json:"windowMinutes,omitempty"`
}

type TUIConfig struct {
	// Profile is the color profile preference ("auto", "truecolor", "256", "16", "ascii").
	Profile string `json:"profile,omitempty"`
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.extras).
	if v := strings.TrimSpace(os.Getenv("EXTRAS_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".extras"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func LoadConfig() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func SaveConfig(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	// Unique temp name + rename so the CLI, TUI and server never see a torn file.
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}

// Location resolves Timezone, falling back to the local zone.
func (c *Config) Location() (*time.Location, error) {
	if c == nil || strings.TrimSpace(c.Timezone) == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(strings.TrimSpace(c.Timezone))
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) ServerAddr() string {
	if c == nil || c.Server == nil || strings.TrimSpace(c.Server.Addr) == "" {
		return DefaultServerAddr
	}
	return strings.TrimSpace(c.Server.Addr)
}

func (c *Config) ReminderCron() string {
	if c == nil || c.Reminders == nil || strings.TrimSpace(c.Reminders.Cron) == "" {
		return DefaultReminderCron
	}
	return strings.TrimSpace(c.Reminders.Cron)
}

func (c *Config) ReminderWindow() time.Duration {
	if c == nil || c.Reminders == nil || c.Reminders.WindowMinutes <= 0 {
		return DefaultReminderWindow
	}
	return time.Duration(c.Reminders.WindowMinutes) * time.Minute
}

func (c *Config) ColorProfile() string {
	if c == nil || c.TUI == nil {
		return ""
	}
	return strings.TrimSpace(c.TUI.Profile)
}
