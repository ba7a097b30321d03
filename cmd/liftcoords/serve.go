package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/Townsend-Lab-Yale/lift-coords/infrastructure/api"
	"github.com/Townsend-Lab-Yale/lift-coords/internal/config"
)

func serveCmd(global *globalFlags) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Routes:
  GET  /healthz
  GET  /api/v1/builds
  GET  /api/v1/chains
  GET  /api/v1/chains/{source}/{target}
  POST /api/v1/lift?source=&target=&keep_orig=&build_label=
  GET  /api/v1/runs
  GET  /api/v1/runs/{id}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), global, host, port)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8080)")

	return cmd
}

func runServe(ctx context.Context, global *globalFlags, host string, port int) error {
	cfg, err := loadConfig(global)
	if err != nil {
		return err
	}

	var opts []config.AppConfigOption
	if host != "" {
		opts = append(opts, config.WithHost(host))
	}
	if port != 0 {
		opts = append(opts, config.WithPort(port))
	}
	cfg = cfg.Apply(opts...)

	client, logger, err := newClient(cfg)
	if err != nil {
		return err
	}
	slogger := logger.Slog()
	defer func() {
		if err := client.Close(); err != nil {
			slogger.Error("failed to close client", slog.Any("error", err))
		}
	}()

	if err := client.EnsureReady(ctx); err != nil {
		// Serve anyway; /healthz reports the missing files.
		slogger.Warn("chain files not ready", slog.Any("error", err))
	}

	slogger.Info("starting liftcoords",
		slog.String("version", version),
		slog.String("chain_dir", client.ChainDir()),
		slog.String("work_dir", client.WorkDir()),
	)

	server := api.NewAPIServer(client, cfg.CORSOrigins()).Server(cfg.Addr())

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
