package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(StateFileEnv, "")
	homedir.Reset()
	t.Cleanup(homedir.Reset)
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := setHome(t)

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	dir := filepath.Join(home, ".timetrack")
	assert.Equal(t, filepath.Join(dir, "state.json"), cfg.StatePath)
	assert.Equal(t, filepath.Join(dir, "history.db"), cfg.HistoryPath)
	assert.Equal(t, filepath.Join(dir, "timetrack.log"), cfg.LogPath)
	assert.True(t, cfg.HistoryEnabled)
	assert.True(t, cfg.NotifyEnabled)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, uint(30), cfg.PomoMaxMinutes)
	assert.Equal(t, uint(30), cfg.PomoDefaultMinutes)
	assert.Equal(t, uint(60), cfg.DefaultTargetMinutes)
	assert.Equal(t, time.Second, cfg.TickInterval)
	assert.Empty(t, cfg.File)
}

func TestLoadFromDefaultLocation(t *testing.T) {
	home := setHome(t)
	dir := filepath.Join(home, ".timetrack")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[pomodoro]
max_minutes = 45

[tui]
tick_interval = "500ms"

[state]
path = "~/elsewhere/state.json"
`), 0o644))

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, uint(45), cfg.PomoMaxMinutes)
	assert.Equal(t, 500*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, filepath.Join(home, "elsewhere", "state.json"), cfg.StatePath)
	assert.Equal(t, filepath.Join(dir, "config.toml"), cfg.File)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	setHome(t)
	t.Setenv(StateFileEnv, "/tmp/custom/state.json")
	t.Setenv("TIMETRACK_TRACK_DEFAULT_TARGET_MINUTES", "90")
	t.Setenv("TIMETRACK_NOTIFY_ENABLED", "false")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/custom/state.json", cfg.StatePath)
	assert.Equal(t, uint(90), cfg.DefaultTargetMinutes)
	assert.False(t, cfg.NotifyEnabled)
}

func TestLoadExpandsHomeInEveryPath(t *testing.T) {
	home := setHome(t)
	t.Setenv("TIMETRACK_HISTORY_PATH", "~/data/history.db")
	t.Setenv("TIMETRACK_LOG_PATH", "~/logs/timetrack.log")

	dir, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".timetrack"), dir)

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "data", "history.db"), cfg.HistoryPath)
	assert.Equal(t, filepath.Join(home, "logs", "timetrack.log"), cfg.LogPath)
}

func TestLoadRejectsOtherUsersHome(t *testing.T) {
	setHome(t)
	t.Setenv(StateFileEnv, "~someone/state.json")

	_, err := Load(viper.New(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "state.path")
}

func TestLoadExplicitMissingFile(t *testing.T) {
	setHome(t)

	cfg, err := Load(viper.New(), filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, uint(30), cfg.PomoMaxMinutes)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "zero pomodoro cap", content: "[pomodoro]\nmax_minutes = 0\n"},
		{name: "negative tick", content: "[tui]\ntick_interval = \"-1s\"\n"},
		{name: "broken toml", content: "[pomodoro\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setHome(t)
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := Load(viper.New(), path)
			assert.Error(t, err)
		})
	}
}

func TestWriteThenLoad(t *testing.T) {
	setHome(t)
	path := filepath.Join(t.TempDir(), "conf", "config.toml")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	cfg.PomoMaxMinutes = 50
	cfg.TickInterval = 2 * time.Second
	cfg.LogLevel = "debug"

	require.NoError(t, Write(path, cfg, false))

	got, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, uint(50), got.PomoMaxMinutes)
	assert.Equal(t, 2*time.Second, got.TickInterval)
	assert.Equal(t, "debug", got.LogLevel)
	assert.Equal(t, cfg.StatePath, got.StatePath)
	assert.Equal(t, path, got.File)
}

func TestWriteRefusesToOverwrite(t *testing.T) {
	setHome(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("# mine\n"), 0o644))

	err := Write(path, Config{}, false)
	assert.ErrorIs(t, err, ErrExists)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# mine\n", string(data))

	require.NoError(t, Write(path, Config{PomoMaxMinutes: 1}, true))
}
