package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"uxguard/internal/compose"
	"uxguard/internal/config"
	"uxguard/internal/knowledge"
	"uxguard/internal/retrieval"
	"uxguard/internal/telemetry"
)

var (
	// Global flags
	configPath string
	verbose    bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "uxguard",
	Short: "uxguard - UX risk lookup for AI products",
	Long: `uxguard answers "what could go wrong" questions about AI product UX.

It searches a curated base of UX risks (bias, oversight, transparency,
dark patterns), annotates them with EU AI Act / GDPR / NIST pointers, and
optionally phrases the answer through a hosted model. Without an API key
every answer comes straight from the curated entries.

Run 'uxguard serve' for the web UI or 'uxguard ask' for the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		cfg := zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		} else {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// app bundles the pipeline for one command invocation.
type app struct {
	cfg       *config.Config
	store     *knowledge.Store
	retriever *retrieval.Retriever
	composer  *compose.Composer
	telemetry *telemetry.Store
}

// buildApp loads config and assembles the pipeline. A corrupt knowledge
// base is fatal here; a missing one falls back to the embedded entries.
func buildApp(ctx context.Context, withComposer bool) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sugar := logger.Sugar()

	risksPath, refsPath := knowledge.Locate(cfg.Knowledge.Dir)
	store, err := knowledge.Load(risksPath, refsPath)
	if err != nil {
		return nil, err
	}
	if store.IsEmbedded() {
		sugar.Debugf("no knowledge files under %s, using embedded base (%d entries)", cfg.Knowledge.Dir, store.Len())
	} else {
		sugar.Debugf("loaded %d risks and %d references from %s", store.Len(), store.NumReferences(), cfg.Knowledge.Dir)
	}

	a := &app{
		cfg:       cfg,
		store:     store,
		retriever: retrieval.New(store, retrieval.DefaultConfig()),
	}

	if withComposer && cfg.ComposerConfigured() {
		client, err := compose.NewClient(ctx, cfg.LLM.Provider, cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.BaseURL)
		if err != nil {
			return nil, err
		}
		a.composer = compose.New(client, cfg.GetLLMTimeout(), sugar)
	} else {
		a.composer = compose.New(nil, 0, sugar)
	}

	if !cfg.Telemetry.Disabled {
		tel, err := telemetry.Open(cfg.Telemetry.Path, sugar)
		if err != nil {
			// Telemetry never blocks the lookup, including at startup.
			sugar.Warnf("telemetry unavailable: %v", err)
		} else {
			a.telemetry = tel
		}
	}

	return a, nil
}

// Close releases the pipeline's resources.
func (a *app) Close() {
	if a.telemetry != nil {
		_ = a.telemetry.Close()
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(phaseCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(kbCmd)
	rootCmd.AddCommand(logCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
