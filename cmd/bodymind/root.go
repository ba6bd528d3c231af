package main

import (
	"io"
	"os"
	"path/filepath"

	"codeberg.org/mutker/bodymind/internal/config"
	"codeberg.org/mutker/bodymind/internal/dashboard"
	"codeberg.org/mutker/bodymind/internal/errors"
	"codeberg.org/mutker/bodymind/internal/logger"
	"codeberg.org/mutker/bodymind/internal/metrics"
	"codeberg.org/mutker/bodymind/internal/pid"
	"codeberg.org/mutker/bodymind/internal/profile"
	"codeberg.org/mutker/bodymind/internal/storage"
	"github.com/spf13/cobra"
)

// app is everything a command needs, built after flags are parsed.
type app struct {
	cfg      *config.Config
	logger   logger.Logger
	storage  storage.Storage
	store    *metrics.Store
	registry *profile.Registry
	logFile  *os.File
	pidPath  string
}

// setupOptions control how setup prepares the app.
type setupOptions struct {
	// logOut receives logs; nil means the configured log file.
	logOut io.Writer
	// exclusive takes the pid lock before metrics are loaded. Every command
	// that writes to storage sets it.
	exclusive bool
}

func newRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "bodymind",
		Short:         "Personal health dashboard for sleep, focus and training load",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd, configFile)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&configFile, "config", "c", "", "path to bodymind.toml")
	pf.String("log-level", string(config.DefaultLogLevel), "log level (debug, info, warning, error)")
	pf.String("log-file", "", "log file used while the dashboard runs")
	pf.String("backend", string(config.DefaultBackend), "storage backend (sqlite, file, memory, none)")
	pf.String("db", "", "database or JSON file, defaults to a file in the data directory")
	pf.String("data", "", "data directory")
	pf.StringP("profile", "p", config.DefaultProfile, "active profile id")
	pf.Int("window", config.DefaultWindow, "number of days in the trend window")
	pf.Bool("placeholders", true, "fill days without entries with sample values")
	pf.String("timezone", "", "IANA time zone that defines today, defaults to the local zone")

	root.AddCommand(
		newDashboardCmd(&configFile),
		newAddCmd(&configFile),
		newResetCmd(&configFile),
		newShowCmd(&configFile),
		newChartCmd(&configFile),
		newProfilesCmd(&configFile),
	)

	return root
}

// setup loads configuration and opens storage.
func setup(cmd *cobra.Command, configFile string, so setupOptions) (*app, error) {
	errFactory := errors.New()

	cfg, err := config.Load(cmd.Flags(), config.WithConfigFile(configFile))
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}

	level, err := logger.ParseLevel(string(cfg.Log.Level))
	if err != nil {
		return nil, err
	}
	logOut := so.logOut
	if logOut == nil {
		path := cfg.LogFile()
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, errFactory.Wrap(errors.ErrInitApp, err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, errFactory.Wrap(errors.ErrInitApp, err)
		}
		a.logFile = f
		logOut = f
	}
	a.logger = logger.Init(logOut, level)
	a.logger.Debug().
		Str("config_file", cfg.ConfigFile).
		Str("backend", string(cfg.Storage.Backend)).
		Str("path", cfg.StoragePath()).
		Msg("Config loaded")

	loc, err := cfg.Location()
	if err != nil {
		a.close()
		return nil, err
	}

	if so.exclusive {
		path := pid.Path(cfg.Storage.DataDir)
		if err := pid.Write(path); err != nil {
			a.logger.Debug().Err(err).Str("pid_file", path).Msg("Metrics are owned by another process")
			a.close()
			return nil, err
		}
		a.pidPath = path
	}

	st, err := storage.Open(storage.Config{
		Backend: storage.Backend(cfg.Storage.Backend),
		Path:    cfg.StoragePath(),
	}, a.logger)
	if err != nil {
		// Storage failures never stop the dashboard; it runs for this session only.
		a.logger.WarnWithContext(err, "storage", "open").Msg("Continuing without persistence")
		st = storage.Unavailable()
	}
	a.storage = st

	a.store = metrics.NewStore(cmd.Context(), st, a.logger, metrics.WithLocation(loc))
	a.registry = profile.DefaultRegistry()

	return a, nil
}

func (a *app) options() dashboard.Options {
	return dashboard.Options{
		Window:       a.cfg.Dashboard.Window,
		Placeholders: a.cfg.Dashboard.Placeholders,
	}
}

func (a *app) view() dashboard.View {
	return dashboard.Build(a.store, a.registry, a.cfg.Dashboard.Profile, a.options())
}

func (a *app) close() {
	if a.pidPath != "" {
		if err := pid.Remove(a.pidPath); err != nil {
			a.logger.Error().Err(err).Msg("Failed to remove pid file")
		}
	}
	if a.storage != nil {
		if err := a.storage.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close storage")
		}
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}
