package main

import (
	"fmt"
	"os"
	"strings"

	"codeberg.org/mutker/bodymind/internal/chart"
	"codeberg.org/mutker/bodymind/internal/dashboard"
	"codeberg.org/mutker/bodymind/internal/errors"
	"codeberg.org/mutker/bodymind/internal/metrics"
	"codeberg.org/mutker/bodymind/internal/profile"
	"github.com/spf13/cobra"
)

func newAddCmd(configFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [flags] <sleep|focus|load> <value>",
		Short: "Record today's value of a metric for the active profile",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := metrics.ParseName(args[0])
			if err != nil {
				return err
			}

			a, err := setup(cmd, *configFile, setupOptions{logOut: cmd.ErrOrStderr(), exclusive: true})
			if err != nil {
				return err
			}
			defer a.close()

			value, ok := metrics.ParseValue(args[1])
			if !ok {
				a.logger.Debug().Str("metric", string(name)).Str("input", args[1]).Msg("Ignoring non-numeric input")
				return nil
			}

			active := a.registry.Resolve(a.cfg.Dashboard.Profile)
			if err := a.store.SaveMetric(cmd.Context(), active.ID, name, value); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "recorded for this session only: %v\n", err)
				return nil
			}

			title := string(name)
			if info, ok := dashboard.InfoFor(name); ok {
				title = info.Title
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s recorded %s on %s\n",
				active.Name, title, metrics.FormatValue(value), a.store.Today())
			return nil
		},
	}
	// Flags must precede the arguments so negative values are not read as flags.
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func newResetCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear every metric of the active profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd, *configFile, setupOptions{logOut: cmd.ErrOrStderr(), exclusive: true})
			if err != nil {
				return err
			}
			defer a.close()

			active := a.registry.Resolve(a.cfg.Dashboard.Profile)
			if err := a.store.ResetMetrics(cmd.Context(), active.ID); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "reset for this session only: %v\n", err)
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Metrics cleared for %s\n", active.Name)
			return nil
		},
	}
}

func newShowCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the metric cards and the trend window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd, *configFile, setupOptions{logOut: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			defer a.close()

			v := a.view()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "%s  [%s]\n", v.Title, strings.Join(dashboard.HeaderChips, "] ["))
			fmt.Fprintln(out)
			for _, c := range v.Cards {
				marker := ""
				if !c.Recorded {
					marker = " (sample)"
				}
				fmt.Fprintf(out, "%-15s %8s%s  %s, %s\n", c.Title, c.Display, marker, c.Caption, c.Hint)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, dashboard.ChartTitle)

			if err := chart.RenderText(out, v.Labels, v.Datasets); err != nil {
				return errors.New().Wrap(errors.ErrRenderApp, err)
			}
			return nil
		},
	}
}

func newChartCmd(configFile *string) *cobra.Command {
	var (
		outPath       string
		width, height int
	)

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Write the trend chart as a PNG image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			errFactory := errors.New()

			a, err := setup(cmd, *configFile, setupOptions{logOut: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			defer a.close()

			v := a.view()

			f, err := os.Create(outPath)
			if err != nil {
				return errFactory.Wrap(errors.ErrRenderApp, err)
			}
			if err := chart.RenderPNG(f, dashboard.ChartTitle, v.Labels, v.Datasets, width, height); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return errFactory.Wrap(errors.ErrRenderApp, err)
			}

			a.logger.Info().Str("path", outPath).Str("profile", v.Active.ID).Msg("Chart written")
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "bodymind.png", "output file")
	cmd.Flags().IntVar(&width, "width", chart.DefaultWidth, "image width in pixels")
	cmd.Flags().IntVar(&height, "height", chart.DefaultHeight, "image height in pixels")

	return cmd
}

func newProfilesCmd(configFile *string) *cobra.Command {
	var stored bool

	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List the selectable profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd, *configFile, setupOptions{logOut: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			defer a.close()

			list := a.registry.All()
			if stored {
				list = profile.NewStored(a.storage).List(cmd.Context())
			}

			active := a.registry.Resolve(a.cfg.Dashboard.Profile).ID
			for _, p := range list {
				marker := " "
				if p.ID == active {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-10s %-12s %s\n", marker, p.ID, p.Name, p.Tag)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&stored, "stored", false, "list the profiles kept in storage instead")

	cmd.AddCommand(&cobra.Command{
		Use:   "sync",
		Short: "Write the built-in profiles to storage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd, *configFile, setupOptions{logOut: cmd.ErrOrStderr(), exclusive: true})
			if err != nil {
				return err
			}
			defer a.close()

			profiles := a.registry.All()
			if err := profile.NewStored(a.storage).Replace(cmd.Context(), profiles); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d profiles stored\n", len(profiles))
			return nil
		},
	})

	return cmd
}
