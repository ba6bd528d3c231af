package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"codeberg.org/mutker/bodymind/internal/config"
	"codeberg.org/mutker/bodymind/internal/errors"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("BODYMIND_CONFIG", "")
	return dir
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bodymind.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
[storage]
backend = "file"
path = "/tmp/bodymind-test.json"

[log]
level = "debug"

[dashboard]
profile = "recovery"
window = 14
placeholders = false
timezone = "Europe/Stockholm"
`)

	cfg, err := config.Load(nil, config.WithConfigFile(path))
	require.NoError(t, err)

	assert.Equal(t, config.BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/bodymind-test.json", cfg.StoragePath())
	assert.Equal(t, config.LogLevelDebug, cfg.Log.Level)
	assert.Equal(t, "recovery", cfg.Dashboard.Profile)
	assert.Equal(t, 14, cfg.Dashboard.Window)
	assert.False(t, cfg.Dashboard.Placeholders)
	assert.Equal(t, path, cfg.ConfigFile)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Stockholm", loc.String())
}

func TestLoadDefaults(t *testing.T) {
	dataHome := isolate(t)

	cfg, err := config.Load(nil, config.WithSearchDirs(t.TempDir()))
	require.NoError(t, err, "Failed to load config")

	assert.Equal(t, config.DefaultBackend, cfg.Storage.Backend)
	assert.Equal(t, config.DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, config.DefaultProfile, cfg.Dashboard.Profile)
	assert.Equal(t, config.DefaultWindow, cfg.Dashboard.Window)
	assert.True(t, cfg.Dashboard.Placeholders)
	assert.Empty(t, cfg.ConfigFile)
	assert.Equal(t, filepath.Join(dataHome, "bodymind", "bodymind.db"), cfg.StoragePath())
	assert.Equal(t, filepath.Join(dataHome, "bodymind", "bodymind.log"), cfg.LogFile())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoadConfigFileInvalidFormat(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
This is not a valid TOML file
`)

	_, err := config.Load(nil, config.WithConfigFile(path))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to read config file")
}

func TestMissingExplicitConfigFile(t *testing.T) {
	isolate(t)

	_, err := config.Load(nil, config.WithConfigFile(filepath.Join(t.TempDir(), "nope.toml")))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrReadConfig))
}

func TestInvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
		code    errors.ErrorCode
	}{
		{"log level", "[log]\nlevel = \"invalid\"\n", errors.ErrInvalidLogLevel},
		{"backend", "[storage]\nbackend = \"postgres\"\n", errors.ErrInvalidBackend},
		{"window", "[dashboard]\nwindow = 0\n", errors.ErrInvalidWindow},
		{"timezone", "[dashboard]\ntimezone = \"Mars/Olympus\"\n", errors.ErrInvalidTimezone},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			isolate(t)
			path := writeConfig(t, tc.content)

			_, err := config.Load(nil, config.WithConfigFile(path))
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tc.code), err.Error())
			assert.Contains(t, err.Error(), string(tc.code))
		})
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "[dashboard]\nprofile = \"focus\"\n")
	t.Setenv("BODYMIND_DASHBOARD_PROFILE", "recovery")
	t.Setenv("BODYMIND_STORAGE_BACKEND", "memory")

	cfg, err := config.Load(nil, config.WithConfigFile(path))
	require.NoError(t, err)
	assert.Equal(t, "recovery", cfg.Dashboard.Profile)
	assert.Equal(t, config.BackendMemory, cfg.Storage.Backend)
	assert.Empty(t, cfg.StoragePath())
}

func TestConfigEnvVariable(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "[log]\nlevel = \"info\"\n")
	t.Setenv("BODYMIND_CONFIG", path)

	cfg, err := config.Load(nil)
	require.NoError(t, err)
	assert.Equal(t, config.LogLevelInfo, cfg.Log.Level)
}

func TestFlagsOverrideEverything(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "[log]\nlevel = \"info\"\n[dashboard]\nwindow = 10\n")
	t.Setenv("BODYMIND_LOG_LEVEL", "error")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("log-level", "", "")
	fs.Int("window", 7, "")
	fs.String("profile", "", "")
	require.NoError(t, fs.Parse([]string{"--log-level", "debug", "--window", "30"}))

	cfg, err := config.Load(fs, config.WithConfigFile(path))
	require.NoError(t, err)
	assert.Equal(t, config.LogLevelDebug, cfg.Log.Level, "Expected LogLevel to be set by flag")
	assert.Equal(t, 30, cfg.Dashboard.Window)
	assert.Equal(t, config.DefaultProfile, cfg.Dashboard.Profile, "unset flag must not clobber the default")
}

func TestWarnAlias(t *testing.T) {
	isolate(t)
	t.Setenv("BODYMIND_LOG_LEVEL", "WARN")

	cfg, err := config.Load(nil, config.WithSearchDirs(t.TempDir()))
	require.NoError(t, err)
	assert.Equal(t, config.LogLevelWarning, cfg.Log.Level)
}
