package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/recruitee-mcp/recruitee-mcp/internal/api"
	"github.com/recruitee-mcp/recruitee-mcp/internal/config"
	"github.com/recruitee-mcp/recruitee-mcp/internal/domain/recruitee"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON-RPC endpoint over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("host") {
			cfg.Host = serveHost
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		server, err := api.NewServer(recruitee.New(cfg, logger), logger)
		if err != nil {
			return err
		}

		httpServer := &http.Server{
			Addr:    api.Addr(cfg.Host, cfg.Port),
			Handler: api.NewGateway(server, logger),
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Info("listening", "addr", httpServer.Addr, "company_id", cfg.CompanyID)
			errCh <- httpServer.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server failed: %w", err)
			}
		case <-ctx.Done():
			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown failed: %w", err)
			}
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", config.DefaultHost, "interface to bind")
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "port to listen on")
	rootCmd.AddCommand(serveCmd)
}
