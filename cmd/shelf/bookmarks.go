package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/shelf/internal/model"
	"github.com/nikbrunner/shelf/internal/tui/layout"
)

// draftFlags are the optional bookmark fields shared by add and edit.
type draftFlags struct {
	name     string
	category string
	tags     string
}

func (f *draftFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "display name (derived from the URL when empty)")
	cmd.Flags().StringVar(&f.category, "category", "", "category (classified from the URL when empty)")
	cmd.Flags().StringVar(&f.tags, "tags", "", "comma-separated tags")
}

func (f *draftFlags) draft(url string) (model.Draft, error) {
	d := model.Draft{
		URL:  url,
		Name: f.name,
		Tags: model.ParseTags(f.tags),
	}
	if f.category != "" {
		c, err := model.ParseCategory(f.category)
		if err != nil {
			return model.Draft{}, err
		}
		d.Category = c
	}
	return d, nil
}

func addCmd() *cobra.Command {
	var flags draftFlags

	cmd := &cobra.Command{
		Use:   "add <url>",
		Short: "Add a bookmark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := flags.draft(args[0])
			if err != nil {
				return err
			}

			e, err := openEnv(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer e.Close()

			b, err := e.store.Add(cmd.Context(), d)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s [%s] %s\n", b.Name, b.Category, b.ID)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func editCmd() *cobra.Command {
	var flags draftFlags

	cmd := &cobra.Command{
		Use:   "edit <id> <url>",
		Short: "Replace a bookmark's fields, keeping its id and date",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := flags.draft(args[1])
			if err != nil {
				return err
			}

			e, err := openEnv(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer e.Close()

			b, err := e.store.Update(cmd.Context(), args[0], d)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s [%s]\n", b.Name, b.Category)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a bookmark",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer e.Close()

			b, found := e.store.Get(args[0])
			if err := e.store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			if found {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", b.Name)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "No bookmark with id %s\n", args[0])
			}
			return nil
		},
	}
}

func clearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all bookmarks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer e.Close()

			n := e.store.Len()
			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete all %d bookmarks?", n)) {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
				return nil
			}
			if err := e.store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d bookmarks\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// confirm asks a yes/no question; anything but y or yes is a no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func lsCmd() *cobra.Command {
	var (
		category string
		query    string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List bookmarks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := model.ParseCategory(category)
			if err != nil {
				return err
			}

			e, err := openEnv(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer e.Close()

			list := []model.Bookmark{}
			for b := range e.store.Query(filter, query) {
				list = append(list, b)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(list)
			}
			printBookmarks(cmd.OutOrStdout(), list)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "all", "only this category")
	cmd.Flags().StringVarP(&query, "search", "s", "", "substring of name, url or tag")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

// maxNameWidth caps the NAME column of ls output.
const maxNameWidth = 40

func printBookmarks(out io.Writer, list []model.Bookmark) {
	if len(list) == 0 {
		fmt.Fprintln(out, "No bookmarks")
		return
	}

	text := layout.DefaultConfig().Text
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tURL\tTAGS")
	for _, b := range list {
		name, _ := layout.TruncateText(b.Name, maxNameWidth, text)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", b.ID, name, b.Category, b.URL, strings.Join(b.Tags, ","))
	}
	_ = w.Flush()
}

func sortCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "sort <name|date|category>",
		Short:     "Reorder bookmarks",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"name", "date", "category"},
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := model.ParseSortKey(args[0])
			if err != nil {
				return err
			}

			e, err := openEnv(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.store.Sort(cmd.Context(), key); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sorted %d bookmarks by %s\n", e.store.Len(), key)
			return nil
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show bookmark counts per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer e.Close()

			counts := e.store.CategoryCounts()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, c := range model.Categories {
				fmt.Fprintf(w, "%s\t%d\n", c, counts[c])
			}
			fmt.Fprintf(w, "total\t%d\n", e.store.Len())
			return w.Flush()
		},
	}
}
