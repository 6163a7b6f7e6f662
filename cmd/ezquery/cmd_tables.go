package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/nhath/ezquery/internal/config"
	"github.com/nhath/ezquery/internal/source"
)

func newTablesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "List and manage registered tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			renderSources(cmd.OutOrStdout(), cfg.Sources())
			return nil
		},
	}

	cmd.AddCommand(newTablesAddCmd(), newTablesRemoveCmd())
	return cmd
}

func newTablesAddCmd() *cobra.Command {
	var tokenKey string

	cmd := &cobra.Command{
		Use:   "add NAME LOCATION",
		Short: "Register a table or change its location",
		Long: `Register a logical table.

LOCATION is a CSV path relative to the data directory, an http(s) URL,
or a sqlite://, postgres:// or mysql:// DSN with an optional #table
fragment naming the database table.

Examples:
  ezquery tables add invoices invoices.csv
  ezquery tables add regions https://example.com/regions.csv --token-key regions-api
  ezquery tables add staff "postgres://app@db.local/hr#employees" --token-key hr-db`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			t := config.TableConfig{Name: args[0], Location: args[1], TokenKey: tokenKey}
			if err := cfg.AddTable(t); err != nil {
				return err
			}
			if err := cfg.Save(configPath); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Table %s registered\n", t.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&tokenKey, "token-key", "", "keyring key holding the bearer token or database password")
	return cmd
}

func newTablesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove NAME",
		Aliases: []string{"rm"},
		Short:   "Remove a configured table",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.RemoveTable(args[0]); err != nil {
				return err
			}
			if err := cfg.Save(configPath); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Table %s removed\n", args[0])
			return nil
		},
	}
}

func renderSources(w io.Writer, sources []source.Source) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Kind", "Location", "Token Key"})
	for _, s := range sources {
		t.AppendRow(table.Row{s.Name, string(s.Kind()), s.Redacted(), s.TokenKey})
	}
	t.Render()
}
