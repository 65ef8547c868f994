package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"uxguard/internal/compose"
	"uxguard/internal/report"
	"uxguard/internal/retrieval"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export [query]",
	Short: "Export the curated answer for a query as a PDF",
	Long: `Runs the lookup and writes the curated entries to a PDF. The export
never calls the model, so the document content is reproducible.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default uxguard_<timestamp>.pdf in the export dir)")
}

func runExport(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))

	a, err := buildApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.retriever.Retrieve(query)
	if err != nil {
		var nomatch *retrieval.NoMatchError
		if errors.As(err, &nomatch) {
			return fmt.Errorf("no matching risks for %q, nothing to export", query)
		}
		return err
	}

	out := exportOut
	if out == "" {
		name := fmt.Sprintf("uxguard_%s.pdf", time.Now().UTC().Format("20060102_150405"))
		out = filepath.Join(a.cfg.Export.Dir, name)
	}

	if err := report.SavePDF(out, compose.Fallback(res)); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d risks)\n", out, len(res.Matches))
	return nil
}
