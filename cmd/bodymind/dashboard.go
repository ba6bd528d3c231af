package main

import (
	"codeberg.org/mutker/bodymind/internal/errors"
	"codeberg.org/mutker/bodymind/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newDashboardCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Run the interactive dashboard (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd, *configFile)
		},
	}
}

func runDashboard(cmd *cobra.Command, configFile string) error {
	errFactory := errors.New()

	// The terminal belongs to the dashboard, so logs go to a file.
	a, err := setup(cmd, configFile, setupOptions{exclusive: true})
	if err != nil {
		return err
	}
	defer a.close()

	a.logger.Info().Str("profile", a.cfg.Dashboard.Profile).Msg("Starting dashboard")

	model := tui.New(cmd.Context(), a.store, a.registry, a.cfg.Dashboard.Profile, a.options(), a.logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && cmd.Context().Err() != nil {
			a.logger.Info().Msg("Received termination signal.")
			return nil
		}
		appErr := errFactory.Wrap(errors.ErrMainLoop, err)
		a.logger.ErrorWithCode(appErr).Msg("Dashboard stopped")
		return appErr
	}

	a.logger.Info().Msg("Exiting...")
	return nil
}
