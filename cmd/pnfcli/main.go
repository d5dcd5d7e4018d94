// pnfcli is an interactive router shell.
//
// It provides an IOS-style CLI with User, Privileged and Config modes
// over a simulated network function, and saves its configuration as a
// JSON snapshot.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/psaab/pnfcli/pkg/daemon"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "pnfcli: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pnfcli",
		Short: "Interactive router shell",
		Long: "pnfcli is an IOS-style router shell. Configuration is saved with\n" +
			"'write memory' and restored from the startup-config file on start.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSettings(cmd.Flags())
			if err != nil {
				return err
			}
			return daemon.New(s.daemonOptions()).Run(cmd.Context())
		},
	}

	f := cmd.Flags()
	f.String("config", "startup-config.json", "startup configuration snapshot")
	f.String("history", "history.txt", "command history file")
	f.String("log-file", "pnfcli.log", "log file path")
	f.String("log-level", "info", "log level (debug, info, warn, error)")
	f.String("metrics-addr", "", "HTTP API and metrics listen address (empty to disable)")
	f.String("settings", "", "settings file (YAML, TOML or JSON)")
	f.String("archive-dir", "", "directory for archived snapshots (empty to disable)")
	f.Int("archives", 10, "number of archived snapshots kept")
	f.Bool("plain", false, "read input without line editing")
	return cmd
}
