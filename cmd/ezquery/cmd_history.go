package main

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/nhath/ezquery/internal/history"
)

func newHistoryCmd() *cobra.Command {
	var (
		clearAll bool
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear saved query history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			hs, err := openHistory(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer hs.Close()

			if clearAll {
				if err := hs.Clear(); err != nil {
					return fmt.Errorf("clear history: %w", err)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
				return nil
			}

			entries, err := hs.Recent(limit)
			if err != nil {
				return fmt.Errorf("read history: %w", err)
			}
			total, err := hs.Count()
			if err != nil {
				return fmt.Errorf("count history: %w", err)
			}
			renderHistory(cmd.OutOrStdout(), entries, total, time.Now())
			return nil
		},
	}

	cmd.Flags().BoolVar(&clearAll, "clear", false, "delete every saved entry")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show")
	return cmd
}

func renderHistory(w io.Writer, entries []history.Entry, total int, now time.Time) {
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, "No queries executed yet")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"When", "Rows", "Query"})
	for _, e := range entries {
		t.AppendRow(table.Row{
			humanize.RelTime(e.Timestamp, now, "ago", "from now"),
			humanize.Comma(int64(e.RowCount)),
			e.Preview(80),
		})
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d of %d entries)\n", len(entries), total)
}
