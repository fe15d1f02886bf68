// ABOUTME: Configuration management for daybook with YAML config loading.
// ABOUTME: Handles profile, diary path, timeline timezone, remote sync, and logging settings.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"
)

// DefaultPollInterval is used when remote.poll_interval is unset or invalid.
const DefaultPollInterval = 30 * time.Second

// Config stores daybook configuration loaded from ~/.config/daybook/config.yaml.
type Config struct {
	Profile  ProfileConfig  `yaml:"profile"`
	Diary    DiaryConfig    `yaml:"diary"`
	Timeline TimelineConfig `yaml:"timeline"`
	Remote   RemoteConfig   `yaml:"remote"`
	Log      LogConfig      `yaml:"log"`
}

// ProfileConfig holds the user's display settings.
type ProfileConfig struct {
	Nickname string `yaml:"nickname"`
}

// DiaryConfig holds an optional path override for diary storage.
type DiaryConfig struct {
	Path string `yaml:"path"`
}

// TimelineConfig controls how the timeline groups entries.
type TimelineConfig struct {
	// Timezone is an IANA name ("Asia/Seoul"), "Local", or empty for UTC.
	Timezone string `yaml:"timezone"`
}

// RemoteConfig holds remote diary API settings.
type RemoteConfig struct {
	APIKey       string `yaml:"api_key"`
	TeamID       string `yaml:"team_id"`
	APIURL       string `yaml:"api_url"`
	PollInterval string `yaml:"poll_interval,omitempty"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
	File  string `yaml:"file,omitempty"`
}

// envOverrides lists environment variables that take precedence over the file.
type envOverrides struct {
	Nickname  string `env:"DAYBOOK_NICKNAME"`
	DiaryPath string `env:"DAYBOOK_DIARY_PATH"`
	Timezone  string `env:"DAYBOOK_TIMEZONE"`
	APIURL    string `env:"DAYBOOK_API_URL"`
	TeamID    string `env:"DAYBOOK_TEAM_ID"`
	APIKey    string `env:"DAYBOOK_API_KEY"`
	LogLevel  string `env:"DAYBOOK_LOG_LEVEL"`
}

// ApplyEnv overlays DAYBOOK_* environment variables onto c. Unset variables
// leave the loaded values alone. Not applied by Load so that Save never
// persists values that only came from the environment.
func (c *Config) ApplyEnv(ctx context.Context) error {
	var env envOverrides
	if err := envconfig.Process(ctx, &env); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.Profile.Nickname, env.Nickname)
	set(&c.Diary.Path, env.DiaryPath)
	set(&c.Timeline.Timezone, env.Timezone)
	set(&c.Remote.APIURL, env.APIURL)
	set(&c.Remote.TeamID, env.TeamID)
	set(&c.Remote.APIKey, env.APIKey)
	set(&c.Log.Level, env.LogLevel)
	return nil
}

// HasRemote returns true if remote sync is configured.
func (c *Config) HasRemote() bool {
	return c.Remote.APIKey != "" && c.Remote.TeamID != "" && c.Remote.APIURL != ""
}

// GetDiaryPath returns the diary root, defaulting to $XDG_DATA_HOME/daybook/diary.
func (c *Config) GetDiaryPath() (string, error) {
	if c.Diary.Path != "" {
		return ExpandPath(c.Diary.Path)
	}
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "diary"), nil
}

// GetLocation resolves the timeline timezone. Empty means UTC.
func (c *Config) GetLocation() (*time.Location, error) {
	if c.Timeline.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timeline.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timeline timezone %q: %w", c.Timeline.Timezone, err)
	}
	return loc, nil
}

// GetPollInterval returns the remote poll interval.
func (c *Config) GetPollInterval() time.Duration {
	if c.Remote.PollInterval == "" {
		return DefaultPollInterval
	}
	d, err := time.ParseDuration(c.Remote.PollInterval)
	if err != nil || d <= 0 {
		return DefaultPollInterval
	}
	return d
}

// GetLogFile returns the log file path, defaulting to $XDG_STATE_HOME/daybook/daybook.log.
func (c *Config) GetLogFile() (string, error) {
	if c.Log.File != "" {
		return ExpandPath(c.Log.File)
	}
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		stateDir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateDir, "daybook", "daybook.log"), nil
}

// DataDir returns the default daybook data directory.
func DataDir() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "daybook"), nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "daybook", "config.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// Load reads config from disk. Returns default config if file doesn't exist.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
