package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/shelf/internal/theme"
)

func themeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark|toggle]",
		Short:     "Show or change the TUI theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer e.Close()

			current, err := theme.Load(cmd.Context(), e.backend)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), current)
				return nil
			}

			next := current.Toggle()
			if args[0] != "toggle" {
				if next, err = theme.Parse(args[0]); err != nil {
					return err
				}
			}
			if err := theme.Save(cmd.Context(), e.backend, next); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s\n", next)
			return nil
		},
	}
}
