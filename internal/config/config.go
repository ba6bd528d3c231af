package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"codeberg.org/mutker/bodymind/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultLogLevel = LogLevelWarning
	DefaultBackend  = BackendSQLite
	DefaultProfile  = "sri"
	DefaultWindow   = 7
	MaxWindow       = 366

	defaultEnvPrefix = "BODYMIND"
	configName       = "bodymind"
	appDir           = "bodymind"
)

type StorageConfig struct {
	Backend Backend `mapstructure:"backend"`
	Path    string  `mapstructure:"path"`
	DataDir string  `mapstructure:"data"`
}

type LogConfig struct {
	Level LogLevel `mapstructure:"level"`
	File  string   `mapstructure:"file"`
}

type DashboardConfig struct {
	Profile      string `mapstructure:"profile"`
	Window       int    `mapstructure:"window"`
	Placeholders bool   `mapstructure:"placeholders"`
	Timezone     string `mapstructure:"timezone"`
}

type Config struct {
	Storage   StorageConfig   `mapstructure:"storage"`
	Log       LogConfig       `mapstructure:"log"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`

	// ConfigFile is the file that was read, empty when defaults only.
	ConfigFile string `mapstructure:"-"`
}

// flagKeys maps command line flag names onto configuration keys.
var flagKeys = map[string]string{
	"backend":      "storage.backend",
	"db":           "storage.path",
	"data":         "storage.data",
	"log-level":    "log.level",
	"log-file":     "log.file",
	"profile":      "dashboard.profile",
	"window":       "dashboard.window",
	"placeholders": "dashboard.placeholders",
	"timezone":     "dashboard.timezone",
}

// Load reads defaults, the config file, BODYMIND_* environment variables
// and any flags present in fs, in increasing order of precedence.
func Load(fs *pflag.FlagSet, opts ...Option) (*Config, error) {
	errFactory := errors.New()

	o := &options{envPrefix: defaultEnvPrefix}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
		}
	}
	if o.configPath == "" {
		o.configPath = os.Getenv(o.envPrefix + "_CONFIG")
	}
	if o.searchDirs == nil {
		o.searchDirs = defaultSearchDirs()
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(o.envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if o.configPath != "" {
		v.SetConfigFile(o.configPath)
		v.SetConfigType("toml")
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("toml")
		for _, dir := range o.searchDirs {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errFactory.Wrap(errors.ErrBindFlags, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errFactory.Wrap(errors.ErrReadConfig, err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()
	cfg.Log.Level = LogLevel(strings.ToLower(string(cfg.Log.Level)))
	if cfg.Log.Level == "warn" {
		cfg.Log.Level = LogLevelWarning
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", string(DefaultBackend))
	v.SetDefault("storage.path", "")
	v.SetDefault("storage.data", defaultDataDir())
	v.SetDefault("log.level", string(DefaultLogLevel))
	v.SetDefault("log.file", "")
	v.SetDefault("dashboard.profile", DefaultProfile)
	v.SetDefault("dashboard.window", DefaultWindow)
	v.SetDefault("dashboard.placeholders", true)
	v.SetDefault("dashboard.timezone", "")
}

// Validate checks every field and reports the first problem found.
func (c *Config) Validate() error {
	errFactory := errors.New()

	if !c.Log.Level.IsValid() {
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.Log.Level)
	}
	if !c.Storage.Backend.IsValid() {
		return errFactory.WithData(errors.ErrInvalidBackend, c.Storage.Backend)
	}
	if c.Dashboard.Window <= 0 || c.Dashboard.Window > MaxWindow {
		return errFactory.WithData(errors.ErrInvalidWindow, c.Dashboard.Window)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves dashboard.timezone, empty meaning the machine's zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Dashboard.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Dashboard.Timezone)
	if err != nil {
		return nil, errors.New().Wrap(errors.ErrInvalidTimezone, err)
	}
	return loc, nil
}

// StoragePath returns the configured storage path or the backend's default
// file inside the data directory.
func (c *Config) StoragePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	switch c.Storage.Backend {
	case BackendFile:
		return filepath.Join(c.Storage.DataDir, "bodymind.json")
	case BackendSQLite:
		return filepath.Join(c.Storage.DataDir, "bodymind.db")
	default:
		return ""
	}
}

// LogFile returns where logs go while the dashboard owns the terminal.
func (c *Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.Storage.DataDir, "bodymind.log")
}

func defaultSearchDirs() []string {
	dirs := []string{"."}
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(dir, appDir))
	}
	return dirs
}

func defaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appDir)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", appDir)
	}
	return filepath.Join(os.TempDir(), appDir)
}
