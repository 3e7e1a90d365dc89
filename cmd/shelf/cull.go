package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/shelf/internal/culler"
	"github.com/nikbrunner/shelf/internal/logger"
)

func cullCmd() *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "cull",
		Short: "Check every bookmark URL and report dead links",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer e.Close()

			checker := culler.New(culler.Options{
				Concurrency:    e.cfg.Cull.Concurrency,
				Timeout:        e.cfg.Cull.Timeout,
				ExcludeDomains: e.cfg.Cull.ExcludeDomains,
			}, e.log)

			progress := cmd.ErrOrStderr()
			results, err := checker.Check(cmd.Context(), e.store.All(), func(done, total int) {
				fmt.Fprintf(progress, "\rChecking %d/%d", done, total)
			})
			fmt.Fprintln(progress)
			if err != nil {
				return fmt.Errorf("check links: %w", err)
			}

			out := cmd.OutOrStdout()
			printCullResults(out, results)

			dead := culler.DeadResults(results)
			if !remove || len(dead) == 0 {
				return nil
			}
			for _, r := range dead {
				if err := e.store.Delete(cmd.Context(), r.Bookmark.ID); err != nil {
					return err
				}
				e.log.Info("removed dead bookmark", logger.String("url", r.Bookmark.URL))
			}
			fmt.Fprintf(out, "Deleted %d dead bookmarks\n", len(dead))
			return nil
		},
	}

	cmd.Flags().BoolVar(&remove, "delete", false, "delete bookmarks whose URL is gone (404/410)")
	return cmd
}

func printCullResults(out io.Writer, results []culler.Result) {
	var healthy int
	for _, r := range results {
		switch r.Status {
		case culler.Healthy:
			healthy++
		case culler.Dead:
			fmt.Fprintf(out, "dead         %s  %s (%d)\n", r.Bookmark.Name, r.Bookmark.URL, r.StatusCode)
		default:
			fmt.Fprintf(out, "unreachable  %s  %s (%s)\n", r.Bookmark.Name, r.Bookmark.URL, r.Error)
		}
	}
	fmt.Fprintf(out, "%d of %d links healthy\n", healthy, len(results))
}
