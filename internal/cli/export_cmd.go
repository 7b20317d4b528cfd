package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/evdal/timeliste/internal/export"
	"github.com/evdal/timeliste/internal/store"
)

func newExportCmd(app *App) *cobra.Command {
	var format string
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all time entries to CSV or JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Store.ListEntries(store.EntryFilter{})
			if err != nil {
				return fmt.Errorf("listing entries: %w", err)
			}

			cases := make(map[string]*store.Case)
			clist, err := app.Store.ListCases(true)
			if err != nil {
				return fmt.Errorf("listing cases: %w", err)
			}
			for i := range clist {
				cases[clist[i].Ref] = &clist[i]
			}

			path := out
			if path == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return fmt.Errorf("finding home directory: %w", err)
				}
				name := fmt.Sprintf("timeliste-export-%s.%s", time.Now().Format("2006-01-02"), format)
				path = filepath.Join(home, name)
			}

			switch format {
			case "csv":
				err = export.ToCSV(entries, cases, path)
			case "json":
				err = export.ToJSON(entries, cases, path)
			default:
				return fmt.Errorf("unknown format %q (want csv or json)", format)
			}
			if err != nil {
				return err
			}

			fmt.Printf("Exported %d entries to %s\n", len(entries), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "Export format: csv or json")
	cmd.Flags().StringVar(&out, "out", "", "Output path (default ~/timeliste-export-<date>.<ext>)")

	return cmd
}
