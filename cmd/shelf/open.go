package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/shelf/internal/browser"
	"github.com/nikbrunner/shelf/internal/model"
	"github.com/nikbrunner/shelf/internal/picker"
	"github.com/nikbrunner/shelf/internal/search"
)

func openCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <query>",
		Short: "Open a matching bookmark (picker for several, web search for none)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			e, err := openEnv(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer e.Close()

			results := search.Bookmarks(e.store.Query(model.CategoryAll, query), query)
			out := cmd.OutOrStdout()

			switch len(results) {
			case 0:
				url := search.WebSearchURL(query)
				fmt.Fprintf(out, "No bookmarks found for '%s', searching the web\n", query)
				return browser.Open(url)

			case 1:
				b := results[0].Bookmark
				fmt.Fprintf(out, "Opening: %s\n", b.Name)
				return browser.Open(b.URL)
			}

			p := picker.New(results, query)
			finalModel, err := tea.NewProgram(p, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("run picker: %w", err)
			}

			finalPicker := finalModel.(picker.Picker)
			if finalPicker.Cancelled() {
				return nil
			}
			b, ok := finalPicker.SelectedBookmark()
			if !ok {
				return nil
			}
			return browser.Open(b.URL)
		},
	}
}
