package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rezonia/invoice-studio/internal/export"
	"github.com/rezonia/invoice-studio/internal/render"
	"github.com/rezonia/invoice-studio/internal/store"
)

var (
	exportFormats []string
	outputDir     string
)

var exportCmd = &cobra.Command{
	Use:   "export [invoice.json]",
	Short: "Export an invoice document to portable formats",
	Long: `Export an invoice document (a JSON dump produced by the json export
or the editing API) to one or more portable formats.

Formats:
  pdf   - paginated document (rendered surface tiled across A4 pages)
  png   - single raster image of the rendered surface
  csv   - delimited item rows plus totals section
  json  - structured dump of invoice and branding state
  xlsx  - spreadsheet with the same rows as csv

Examples:
  invoice-studio export invoice.json
  invoice-studio export invoice.json --formats pdf,png -o ./out
  invoice-studio export invoice.json --formats csv`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringSliceVar(&exportFormats, "formats", []string{"pdf"}, "Comma-separated export formats (pdf, png, csv, json, xlsx)")
	exportCmd.Flags().StringVarP(&outputDir, "output", "o", ".", "Output directory")
}

func runExport(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open invoice document: %w", err)
	}
	defer f.Close()

	inv, branding, err := export.ReadJSON(f)
	if err != nil {
		return err
	}

	// Load through a session so derived fields are consistent even if
	// the dump was edited by hand.
	session := store.NewSessionFrom(inv, branding)
	inv, branding = session.Snapshot()

	formats := make([]export.Format, 0, len(exportFormats))
	for _, name := range exportFormats {
		format, err := export.ParseFormat(strings.TrimSpace(name))
		if err != nil {
			return err
		}
		formats = append(formats, format)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	pipeline := export.NewPipeline(render.NewPDFRenderer(logger), logger)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FORMAT\tFILE\tSIZE")
	fmt.Fprintln(tw, "------\t----\t----")

	var failed int
	for _, format := range formats {
		printVerbose("Exporting %s...\n", format)

		file, err := pipeline.Export(inv, branding, format)
		if err != nil {
			failed++
			fmt.Fprintf(tw, "%s\tERROR: export did not complete\t\n", format)
			continue
		}

		path := filepath.Join(outputDir, file.Name)
		if err := os.WriteFile(path, file.Data, 0o644); err != nil {
			failed++
			fmt.Fprintf(tw, "%s\tERROR: %v\t\n", format, err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%d bytes\n", format, path, len(file.Data))
	}
	tw.Flush()

	if failed > 0 {
		return fmt.Errorf("%d of %d exports did not complete", failed, len(formats))
	}
	return nil
}
