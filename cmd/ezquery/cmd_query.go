package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhath/ezquery/internal/results"
)

type queryOptions struct {
	search   string
	sort     string
	desc     bool
	page     int
	pageSize int
	format   string
	delay    bool
}

func newQueryCmd() *cobra.Command {
	var opts queryOptions

	cmd := &cobra.Command{
		Use:   "query [SQL]",
		Short: "Run a query and print the result",
		Long: `Run a query once and print the visible rows.

The query reads from stdin when no argument is given. Search, sort and
pagination apply to the result the same way they do in the UI.

Examples:
  ezquery query "SELECT * FROM customers LIMIT 10"
  ezquery query "from orders" --sort freight --desc --page-size 20
  echo "select * from products" | ezquery query --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sql, err := querySQL(cmd, args)
			if err != nil {
				return err
			}
			return runQuery(cmd, sql, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "only rows containing this text (case-insensitive)")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "column to sort by")
	cmd.Flags().BoolVar(&opts.desc, "desc", false, "sort descending")
	cmd.Flags().IntVarP(&opts.page, "page", "p", 1, "page number (1-based)")
	cmd.Flags().IntVar(&opts.pageSize, "page-size", 0, "rows per page (0 prints every row)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "table", "output format: table, md, csv, json")
	cmd.Flags().BoolVar(&opts.delay, "delay", false, "apply the configured query delay")

	return cmd
}

func querySQL(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read query from stdin: %w", err)
	}
	if strings.TrimSpace(string(b)) == "" {
		return "", fmt.Errorf("no query given")
	}
	return string(b), nil
}

func runQuery(cmd *cobra.Command, sql string, opts queryOptions) error {
	a, err := newApp(opts.delay)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rs, err := a.exec.Execute(ctx, sql)
	if err != nil {
		return err
	}

	if opts.sort != "" && !rs.HasColumn(opts.sort) {
		return fmt.Errorf("unknown column %q (have %s)", opts.sort, strings.Join(rs.Columns, ", "))
	}

	page := results.Transform(rs, opts.view())
	if page.TotalFiltered > 0 && opts.page > page.TotalPages {
		a.logger.Info("page past end, showing last page", "requested", opts.page, "pages", page.TotalPages)
	}
	return renderResults(cmd.OutOrStdout(), opts.format, rs.Columns, page.Rows)
}

// view maps the flags onto a ViewState. A zero page size is kept as-is so
// every row lands on one page.
func (o queryOptions) view() results.ViewState {
	v := results.NewViewState(o.pageSize, results.Paginated).
		WithSearch(o.search).
		WithPage(o.page)
	if o.pageSize <= 0 {
		v.PageSize = 0
	}
	if o.sort != "" {
		v = v.ToggleSort(o.sort)
		if o.desc {
			v = v.ToggleSort(o.sort)
		}
	}
	return v
}
