package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// API process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring (ports + adapters + use cases).
// 3) Start HTTP server, or apply the schema for `migrate`.
var rootCmd = &cobra.Command{
	Use:           "evote-api",
	Short:         "Voting core API",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("evote api exited",
			"event", "api_exited_with_error",
			"module", "cmd/api",
			"layer", "platform",
			"error", err.Error(),
		)
		stop()
		os.Exit(1)
	}
}
