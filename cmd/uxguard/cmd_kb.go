package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"uxguard/internal/config"
	"uxguard/internal/knowledge"
)

var (
	kbListPhase string
	kbListTopic string
)

var kbCmd = &cobra.Command{
	Use:   "kb",
	Short: "Inspect the curated knowledge base",
}

var kbListCmd = &cobra.Command{
	Use:   "list",
	Short: "List risk entries",
	RunE:  runKBList,
}

var kbValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load the knowledge files and report problems",
	RunE:  runKBValidate,
}

var kbStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print entry counts per phase and priority",
	RunE:  runKBStats,
}

func init() {
	kbListCmd.Flags().StringVar(&kbListPhase, "phase", "", "Only entries for this phase")
	kbListCmd.Flags().StringVar(&kbListTopic, "topic", "", "Only entries overlapping this topic")
	kbCmd.AddCommand(kbListCmd)
	kbCmd.AddCommand(kbValidateCmd)
	kbCmd.AddCommand(kbStatsCmd)
}

func runKBList(cmd *cobra.Command, args []string) error {
	a, err := buildApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	var entries []knowledge.RiskEntry
	switch {
	case kbListTopic != "":
		entries = a.store.LookupByTopic(kbListTopic)
	case kbListPhase != "":
		phase, ok := knowledge.ParsePhase(kbListPhase)
		if !ok {
			return fmt.Errorf("unknown phase %q (valid: %v)", kbListPhase, knowledge.Phases)
		}
		entries = a.store.RisksByPhase(phase)
	default:
		entries = a.store.Risks()
	}

	if len(entries) == 0 {
		fmt.Println("No entries.")
		return nil
	}
	fmt.Printf("%-26s %-10s %-12s %s\n", "ID", "PRIORITY", "PHASE", "TITLE")
	for _, e := range entries {
		fmt.Printf("%-26s %-10s %-12s %s\n", e.ID, e.Priority, e.Phase.Display(), e.Title)
	}
	return nil
}

func runKBValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	risksPath, refsPath := knowledge.Locate(cfg.Knowledge.Dir)
	store, err := knowledge.Load(risksPath, refsPath)
	if err != nil {
		return fmt.Errorf("knowledge base invalid: %w", err)
	}

	if store.IsEmbedded() {
		fmt.Printf("No knowledge files under %s; embedded base is active.\n", cfg.Knowledge.Dir)
	} else {
		fmt.Printf("Loaded %s and %s.\n", risksPath, refsPath)
	}
	fmt.Printf("OK: %d risks, %d references, every reference resolves.\n", store.Len(), store.NumReferences())
	return nil
}

func runKBStats(cmd *cobra.Command, args []string) error {
	a, err := buildApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	fmt.Printf("Risks: %d  References: %d\n\n", a.store.Len(), a.store.NumReferences())

	fmt.Println("By phase:")
	for _, phase := range knowledge.Phases {
		fmt.Printf("  %-12s %d\n", phase.Display(), len(a.store.RisksByPhase(phase)))
	}

	fmt.Println("By priority:")
	counts := map[knowledge.Priority]int{}
	for _, e := range a.store.Risks() {
		counts[e.Priority]++
	}
	for _, p := range knowledge.Priorities {
		fmt.Printf("  %-12s %d\n", p, counts[p])
	}
	return nil
}
