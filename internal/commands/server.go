package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ecombase/shopapi/internal/api"
	"github.com/ecombase/shopapi/internal/frontend"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the JSON:API server",
	Long:  `Start the HTTP server exposing the shop resources under /jsonapi`,
	RunE:  runServer,
}

func runServer(cmd *cobra.Command, args []string) error {
	server := api.New(cfg, frontend.NewMemory())

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		fmt.Println("\nShutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			cfg.Server.ShutdownTimeout,
		)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		return nil

	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}
}
