// Package config loads timetrack settings from ~/.timetrack/config.toml and
// TIMETRACK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	envPrefix  = "TIMETRACK"
	dirName    = ".timetrack"

	// StateFileEnv overrides the state file location.
	StateFileEnv = "TIMETRACK_STATE_FILE_PATH"

	fileMode = 0o644
	dirMode  = 0o755
)

const (
	keyStatePath          = "state.path"
	keyHistoryPath        = "history.path"
	keyHistoryEnabled     = "history.enabled"
	keyLogPath            = "log.path"
	keyLogLevel           = "log.level"
	keyPomoMaxMinutes     = "pomodoro.max_minutes"
	keyPomoDefaultMinutes = "pomodoro.default_minutes"
	keyTrackDefaultTarget = "track.default_target_minutes"
	keyTickInterval       = "tui.tick_interval"
	keyNotifyEnabled      = "notify.enabled"
)

const (
	defaultPomoMaxMinutes = 30
	defaultPomoMinutes    = 30
	defaultTargetMinutes  = 60
	defaultTickInterval   = time.Second
	defaultLogLevel       = "info"
)

var ErrExists = errors.New("config file already exists")

type Config struct {
	StatePath      string
	HistoryPath    string
	HistoryEnabled bool
	LogPath        string
	LogLevel       string

	// PomoMaxMinutes caps the suggested pomodoro length.
	PomoMaxMinutes uint
	// PomoDefaultMinutes is the countdown length when none is given.
	PomoDefaultMinutes   uint
	DefaultTargetMinutes uint
	TickInterval         time.Duration
	NotifyEnabled        bool

	// File is the config file that was read, empty when none was found.
	File string
}

// Dir returns ~/.timetrack
func Dir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// DefaultPath returns ~/.timetrack/config.toml
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configName+"."+configType), nil
}

// Load reads the config file at path, or ~/.timetrack/config.toml when path
// is empty. A missing file is not an error; defaults and environment
// variables still apply.
func Load(v *viper.Viper, path string) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	dir, err := Dir()
	if err != nil {
		return Config{}, err
	}
	setDefaults(v, dir)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(keyStatePath, StateFileEnv); err != nil {
		return Config{}, fmt.Errorf("bind %s: %w", StateFileEnv, err)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
		case path != "" && errors.Is(err, os.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		HistoryEnabled:       v.GetBool(keyHistoryEnabled),
		LogLevel:             v.GetString(keyLogLevel),
		PomoMaxMinutes:       v.GetUint(keyPomoMaxMinutes),
		PomoDefaultMinutes:   v.GetUint(keyPomoDefaultMinutes),
		DefaultTargetMinutes: v.GetUint(keyTrackDefaultTarget),
		TickInterval:         v.GetDuration(keyTickInterval),
		NotifyEnabled:        v.GetBool(keyNotifyEnabled),
		File:                 v.ConfigFileUsed(),
	}
	for _, p := range []struct {
		key string
		dst *string
	}{
		{keyStatePath, &cfg.StatePath},
		{keyHistoryPath, &cfg.HistoryPath},
		{keyLogPath, &cfg.LogPath},
	} {
		expanded, err := homedir.Expand(v.GetString(p.key))
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", p.key, err)
		}
		*p.dst = expanded
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, dir string) {
	v.SetDefault(keyStatePath, filepath.Join(dir, "state.json"))
	v.SetDefault(keyHistoryPath, filepath.Join(dir, "history.db"))
	v.SetDefault(keyHistoryEnabled, true)
	v.SetDefault(keyLogPath, filepath.Join(dir, "timetrack.log"))
	v.SetDefault(keyLogLevel, defaultLogLevel)
	v.SetDefault(keyPomoMaxMinutes, defaultPomoMaxMinutes)
	v.SetDefault(keyPomoDefaultMinutes, defaultPomoMinutes)
	v.SetDefault(keyTrackDefaultTarget, defaultTargetMinutes)
	v.SetDefault(keyTickInterval, defaultTickInterval)
	v.SetDefault(keyNotifyEnabled, true)
}

func (c Config) validate() error {
	switch {
	case c.StatePath == "":
		return errors.New("state.path is empty")
	case c.PomoMaxMinutes == 0:
		return errors.New("pomodoro.max_minutes must be positive")
	case c.PomoDefaultMinutes == 0:
		return errors.New("pomodoro.default_minutes must be positive")
	case c.TickInterval <= 0:
		return fmt.Errorf("tui.tick_interval must be positive, got %s", c.TickInterval)
	}
	return nil
}

// fileSchema is the layout written by Write.
type fileSchema struct {
	State    stateSection    `toml:"state"`
	History  historySection  `toml:"history"`
	Log      logSection      `toml:"log"`
	Pomodoro pomodoroSection `toml:"pomodoro"`
	Track    trackSection    `toml:"track"`
	TUI      tuiSection      `toml:"tui"`
	Notify   notifySection   `toml:"notify"`
}

type stateSection struct {
	Path string `toml:"path"`
}

type historySection struct {
	Path    string `toml:"path"`
	Enabled bool   `toml:"enabled"`
}

type logSection struct {
	Path  string `toml:"path"`
	Level string `toml:"level"`
}

type pomodoroSection struct {
	MaxMinutes     uint `toml:"max_minutes"`
	DefaultMinutes uint `toml:"default_minutes"`
}

type trackSection struct {
	DefaultTargetMinutes uint `toml:"default_target_minutes"`
}

type tuiSection struct {
	TickInterval string `toml:"tick_interval"`
}

type notifySection struct {
	Enabled bool `toml:"enabled"`
}

// Write stores cfg as TOML at path. An existing file is only replaced when
// overwrite is set.
func Write(path string, cfg Config, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrExists, path)
		}
	}
	data, err := toml.Marshal(fileSchema{
		State:    stateSection{Path: cfg.StatePath},
		History:  historySection{Path: cfg.HistoryPath, Enabled: cfg.HistoryEnabled},
		Log:      logSection{Path: cfg.LogPath, Level: cfg.LogLevel},
		Pomodoro: pomodoroSection{MaxMinutes: cfg.PomoMaxMinutes, DefaultMinutes: cfg.PomoDefaultMinutes},
		Track:    trackSection{DefaultTargetMinutes: cfg.DefaultTargetMinutes},
		TUI:      tuiSection{TickInterval: cfg.TickInterval.String()},
		Notify:   notifySection{Enabled: cfg.NotifyEnabled},
	})
	if err != nil {
		return fmt.Errorf("encode config file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, fileMode); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
