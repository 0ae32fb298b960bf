// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"maps"
	"strings"

	"github.com/spf13/cobra"
	"github.com/telekom/echoprobe/internal/echo"
	"github.com/telekom/echoprobe/internal/logger"
	"github.com/telekom/echoprobe/pkg/config"
	"github.com/telekom/echoprobe/pkg/report"
)

const hostPrompt = "Enter the host to ping (default is " + config.DefaultHost + "): "

// NewCmdProbe creates a new probe command
func NewCmdProbe() *cobra.Command {
	return newCmdProbe(echo.NewClient())
}

func newCmdProbe(client echo.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe [host]",
		Short: "Probe a host once",
		Long: "Sends a series of ICMP echo requests to the host and prints the round-trip times,\n" +
			"the packet loss and the estimated distance.\n" +
			"If no host is given, it is read from stdin.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runProbe(client),
	}

	addProbeFlags(cmd.Flags())
	cmd.Flags().StringP("output", "o", report.Text.String(), "output format: text, json or yaml")
	cmd.Flags().String("dot-file", "", "write an illustrative graphviz network diagram to this file")

	return cmd
}

// runProbe runs a single probe and prints its result
func runProbe(client echo.Client) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		keys := maps.Clone(probeFlags)
		keys["output"] = "output.format"
		keys["dot-file"] = "output.dotFile"
		if err := bindFlags(cmd.Flags(), keys); err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if len(args) == 1 {
			cfg.Probe.Host = args[0]
		}

		ctx := logger.IntoContext(cmd.Context(), logger.NewLogger())
		if err = cfg.Validate(ctx); err != nil {
			return err
		}

		if cfg.Probe.Host == "" {
			cfg.Probe.Host, err = promptHost(cmd.InOrStdin(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
		}

		res, err := client.Probe(ctx, cfg.Probe.Host, &cfg.Probe.Options)
		if err != nil {
			return err
		}

		if err = report.Write(cmd.OutOrStdout(), res, cfg.Output.Format); err != nil {
			return fmt.Errorf("failed to print result: %w", err)
		}
		if cfg.HasDotFile() {
			if err = report.WriteDOTFile(cfg.Output.DotFile, res); err != nil {
				return err
			}
		}
		return nil
	}
}

// promptHost asks for the host to probe.
// Empty input and a closed input select the default host.
func promptHost(in io.Reader, out io.Writer) (string, error) {
	if _, err := fmt.Fprint(out, hostPrompt); err != nil {
		return "", err
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read host: %w", err)
	}
	if host := strings.TrimSpace(line); host != "" {
		return host, nil
	}
	return config.DefaultHost, nil
}
