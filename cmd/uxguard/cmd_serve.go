package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"uxguard/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web UI and JSON API",
	Long: `Serves the lookup UI, the JSON API, PDF export, and the recent query
log. Shuts down gracefully on SIGINT/SIGTERM.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := buildApp(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer a.Close()

	addr := serveAddr
	if addr == "" {
		addr = a.cfg.Server.Addr
	}

	srv := server.New(a.cfg, a.store, a.retriever, a.composer, a.telemetry, logger.Sugar())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen(addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		return srv.Shutdown()
	}
}
