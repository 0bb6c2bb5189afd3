package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gnzgo/MartianRobots/internal/server"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the simulation HTTP API",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)
		// Explicit flags win over the file and environment.
		if cmd.Flags().Changed("host") {
			cfg.Server.Host = serveHost
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}

		srv, err := server.NewServer(&cfg.Server)
		if err != nil {
			logrus.Fatalf("Failed to create server: %v", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				logrus.Fatalf("Server failed: %v", err)
			}
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logrus.Errorf("Shutdown failed: %v", err)
			}
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "Interface to listen on (overrides server.host)")
	serveCmd.Flags().IntVar(&servePort, "port", 5000, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}
