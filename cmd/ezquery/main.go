// cmd/ezquery/main.go
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nhath/ezquery/internal/ui"
)

var (
	// Version info (set by ldflags)
	version = "dev"

	// Flags
	configPath string
	dataDir    string
	debug      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ezquery",
		Short: "Terminal query workbench for CSV-backed tables",
		Long: `ezquery runs simple FROM/LIMIT queries against logical tables backed by
CSV files, HTTP resources or SQL databases, and lets you search, sort and
page through the result in a terminal UI.

  ezquery                         Launch the interactive UI
  ezquery query "SELECT * FROM customers LIMIT 5"
  ezquery tables                  List registered tables
  ezquery history [--clear]       Show or clear saved history`,
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default $XDG_CONFIG_HOME/ezquery/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory holding the table CSV files")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(
		newQueryCmd(),
		newTablesCmd(),
		newTokenCmd(),
		newHistoryCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		// Error already printed by cobra
		os.Exit(1)
	}
}

func runTUI() error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	model := ui.NewModel(a.cfg, a.store, a.exec, a.history, a.logger)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
