package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"uxguard/internal/compose"
	"uxguard/internal/knowledge"
	"uxguard/internal/telemetry"
)

var phaseCmd = &cobra.Command{
	Use:   "phase [understand|specify|create|evaluate]",
	Short: "Browse the curated risks for one lifecycle phase",
	Long: `Prints the preset risk list for a design lifecycle phase. Presets are
curated and deterministic; no model is involved.`,
	Args: cobra.ExactArgs(1),
	RunE: runPhase,
}

func runPhase(cmd *cobra.Command, args []string) error {
	phase, ok := knowledge.ParsePhase(args[0])
	if !ok {
		return fmt.Errorf("unknown phase %q (valid: %v)", args[0], knowledge.Phases)
	}

	a, err := buildApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	a.telemetry.Note(string(phase), telemetry.KindPhase)

	res, err := a.retriever.RetrievePhase(phase)
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render("Phase: " + phase.Display()))
	fmt.Println()
	renderAnswer(os.Stdout, compose.Fallback(res), false)
	return nil
}
