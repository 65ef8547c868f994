package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	logRecentN   int
	logExportOut string
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Inspect the local query log",
}

var logRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Print the most recent logged queries",
	RunE:  runLogRecent,
}

var logExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the whole query log as CSV",
	RunE:  runLogExport,
}

func init() {
	logRecentCmd.Flags().IntVarP(&logRecentN, "number", "n", 20, "How many records to print")
	logExportCmd.Flags().StringVarP(&logExportOut, "out", "o", "telemetry.csv", "Output file")
	logCmd.AddCommand(logRecentCmd)
	logCmd.AddCommand(logExportCmd)
}

func runLogRecent(cmd *cobra.Command, args []string) error {
	a, err := buildApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.telemetry == nil {
		fmt.Println("Telemetry is disabled.")
		return nil
	}

	records, err := a.telemetry.Recent(logRecentN)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No queries logged yet.")
		return nil
	}

	for _, r := range records {
		fmt.Printf("%s  %-6s %s\n", r.At.UTC().Format("2006-01-02 15:04:05"), r.Kind, r.Query)
	}
	return nil
}

func runLogExport(cmd *cobra.Command, args []string) error {
	a, err := buildApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.telemetry == nil {
		fmt.Println("Telemetry is disabled, nothing to export.")
		return nil
	}

	f, err := os.Create(logExportOut)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", logExportOut, err)
	}
	defer f.Close()

	n, err := a.telemetry.ExportCSV(f)
	if err != nil {
		return err
	}
	fmt.Printf("Wrote %d records to %s\n", n, logExportOut)
	return nil
}
