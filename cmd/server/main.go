// Command server serves the syllable counting HTTP API.
//
// Configuration is read from the YAML file named by CONFIG_PATH (default
// config.yaml) and the environment. SIGINT and SIGTERM trigger a graceful
// shutdown.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/lettergreep/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		slog.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
