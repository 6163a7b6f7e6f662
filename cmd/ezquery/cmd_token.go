package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhath/ezquery/internal/config"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage source secrets in the system keyring",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set KEY [VALUE]",
			Short: "Store a secret (reads stdin when VALUE is omitted)",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				value, err := tokenValue(cmd.InOrStdin(), args)
				if err != nil {
					return err
				}
				ks, err := config.NewKeyringStore()
				if err != nil {
					return err
				}
				if err := ks.SetToken(args[0], value); err != nil {
					return fmt.Errorf("store token: %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Token %s stored\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete KEY",
			Short: "Remove a stored secret",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ks, err := config.NewKeyringStore()
				if err != nil {
					return err
				}
				if err := ks.DeleteToken(args[0]); err != nil {
					return fmt.Errorf("delete token: %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Token %s deleted\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List keys with a stored secret",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				ks, err := config.NewKeyringStore()
				if err != nil {
					return err
				}
				keys, err := ks.Keys()
				if err != nil {
					return fmt.Errorf("list tokens: %w", err)
				}
				for _, k := range keys {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), k)
				}
				return nil
			},
		},
	)
	return cmd
}

func tokenValue(r io.Reader, args []string) (string, error) {
	if len(args) == 2 {
		return args[1], nil
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read token from stdin: %w", err)
	}
	v := strings.TrimSpace(string(b))
	if v == "" {
		return "", fmt.Errorf("empty token")
	}
	return v, nil
}
