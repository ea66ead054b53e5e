package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/alexanderramin/clockwork/internal/daterange"
	"github.com/alexanderramin/clockwork/internal/export"
	"github.com/alexanderramin/clockwork/internal/service"
	"github.com/spf13/cobra"
)

func newClockCSVCmd(app *App) *cobra.Command {
	var category, format, output string

	cmd := &cobra.Command{
		Use:     "clockcsv START END",
		Aliases: []string{"csv"},
		Short:   "Export sessions between two dates as CSV or JSON",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			spec, err := daterange.Between(args[0], args[1])
			if err != nil {
				return err
			}
			now := app.now()
			rng, err := spec.Resolve(now)
			if err != nil {
				return err
			}

			sessions, err := app.Reports.Sessions(cmd.Context(), service.ReportRequest{Range: rng, Category: category})
			if err != nil {
				return err
			}
			rows := export.FromSessions(sessions, now.Location())

			write := func(w io.Writer) error {
				if f == export.FormatJSON {
					return export.WriteJSON(w, rows)
				}
				return export.WriteCSV(w, rows, export.CSVOptions{
					Delimiter: app.Config.Delimiter(),
					Encoding:  app.Config.CSV.Encoding,
				})
			}

			if output == "-" {
				return write(cmd.OutOrStdout())
			}
			if output == "" {
				output = defaultExportPath(args[0], args[1], category, f)
			}
			if err := writeFileAtomic(output, write); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d sessions to %s\n", len(rows), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only export this category")
	cmd.Flags().StringVar(&format, "format", string(export.FormatCSV), "Output format: csv or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, or - for stdout (default: temp dir)")
	return cmd
}

// unsafeFileChars matches runs of anything but letters, digits, "_" and "-".
var unsafeFileChars = regexp.MustCompile(`[^\p{L}\p{N}_-]+`)

// defaultExportPath names the export timelog_START_END[_CATEGORY].EXT in the
// system temp directory. The category is reduced to file-safe characters so
// it can never add a path component.
func defaultExportPath(start, end, category string, f export.Format) string {
	name := "timelog_" + start + "_" + end
	if category != "" {
		name += "_" + unsafeFileChars.ReplaceAllString(category, "_")
	}
	return filepath.Join(os.TempDir(), name+"."+string(f))
}

// writeFileAtomic writes through a temp file in the target directory and
// renames it into place, so a failed export never leaves a partial file.
func writeFileAtomic(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".clockwork-export-*")
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing export file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming export file: %w", err)
	}
	return nil
}
