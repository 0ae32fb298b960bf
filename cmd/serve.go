// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"maps"

	"github.com/spf13/cobra"
	"github.com/telekom/echoprobe/internal/logger"
	checkecho "github.com/telekom/echoprobe/pkg/checks/echo"
	"github.com/telekom/echoprobe/pkg/monitor"
)

// NewCmdServe creates a new serve command
func NewCmdServe(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Probe a host periodically and expose the results",
		Long: "Probes the configured host in a fixed interval.\n" +
			"The latest result, its OpenAPI schema and Prometheus metrics are served via HTTP.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe(version),
	}

	addProbeFlags(cmd.Flags())
	cmd.Flags().Duration("interval", checkecho.DefaultInterval, "interval between two probe runs")
	cmd.Flags().String("name", "", "DNS compliant name of this instance")
	cmd.Flags().String("api-address", ":8080", "listening address of the API")

	return cmd
}

// runServe runs the monitor until it is interrupted
func runServe(version string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		keys := maps.Clone(probeFlags)
		keys["interval"] = "probe.interval"
		keys["name"] = "name"
		keys["api-address"] = "api.address"
		if err := bindFlags(cmd.Flags(), keys); err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		log := logger.NewLogger()
		ctx := logger.IntoContext(cmd.Context(), log)
		if err = cfg.ValidateServe(ctx); err != nil {
			return err
		}

		log.InfoContext(ctx, "Starting echoprobe", "host", cfg.Probe.Host, "interval", cfg.Probe.Interval)
		err = monitor.New(cfg, version).Run(ctx)
		if ctx.Err() != nil && err == monitor.ErrFinalShutdown { //nolint:errorlint // a wrapped cause is a failure
			log.InfoContext(ctx, "Echoprobe was interrupted")
			return nil
		}
		return err
	}
}
