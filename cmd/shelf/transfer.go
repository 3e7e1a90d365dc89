package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/shelf/internal/exporter"
	"github.com/nikbrunner/shelf/internal/importer"
)

func exportCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export [path]",
		Short: "Export bookmarks as JSON or Netscape HTML (- for stdout)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var outputPath string
			if len(args) == 1 {
				outputPath = args[0]
			}

			f := exporter.FormatJSON
			switch {
			case format != "":
				parsed, err := exporter.ParseFormat(format)
				if err != nil {
					return err
				}
				f = parsed
			case outputPath != "" && outputPath != "-":
				f = exporter.FormatForPath(outputPath)
			}

			if outputPath == "" {
				var err error
				outputPath, err = exporter.DefaultExportPath(f, time.Now())
				if err != nil {
					return fmt.Errorf("default export path: %w", err)
				}
			}

			e, err := openEnv(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer e.Close()

			var content string
			if f == exporter.FormatHTML {
				content = exporter.ExportHTML(e.store.All())
			} else {
				content, err = e.store.Export()
				if err != nil {
					return err
				}
				content += "\n"
			}

			if outputPath == "-" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), content)
				return err
			}

			if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
				return fmt.Errorf("create export dir: %w", err)
			}
			if err := os.WriteFile(outputPath, []byte(content), 0644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d bookmarks to %s\n", e.store.Len(), outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "json or html (default: from the file extension)")
	return cmd
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a JSON export (appended) or a browser HTML export (merged)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read import file: %w", err)
			}

			e, err := openEnv(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer e.Close()

			if exporter.FormatForPath(path) == exporter.FormatHTML {
				parsed, err := importer.ParseHTMLBookmarks(bytes.NewReader(data), time.Now())
				if err != nil {
					return fmt.Errorf("parse HTML: %w", err)
				}
				added, skipped, err := e.store.Merge(cmd.Context(), parsed)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d bookmarks", added)
				if skipped > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), " (%d duplicates skipped)", skipped)
				}
				fmt.Fprintln(cmd.OutOrStdout())
				return nil
			}

			n, err := e.store.Import(cmd.Context(), string(data))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d bookmarks\n", n)
			return nil
		},
	}
}
