// Package main is the entry point for the liftcoords CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Townsend-Lab-Yale/lift-coords/internal/config"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	envFile string
	dataDir string
	tool    string
}

func rootCmd() *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   "liftcoords",
		Short: "Convert genomic coordinates between reference builds",
		Long: `liftcoords converts the chromosome, start and end columns of tabular data
between the grch37, grch38, hg19 and hg38 reference builds by running UCSC
liftOver over one or more chain files.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  DATA_DIR           Base data directory (default: per-user data dir/lift_coords)
  CHAIN_DIR          Installed chain files (default: {data_dir}/data)
  WORK_DIR           Intermediate interval files (default: {data_dir}/temp)
  CHAIN_SOURCE_DIR   Distributed chain files, plain, .gz or .xz
  LIFTOVER_TOOL      Conversion executable (default: liftOver)
  DB_URL             Run history database (default: sqlite:///{data_dir}/lift_coords.db)
  KEEP_INTERMEDIATE  Keep interval files after each run (default: false)
  COLUMN_STRATEGY    Column matching: substring, exact (default: substring)
  LOG_LEVEL          DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT         pretty, json (default: pretty)
  HOST, PORT         serve bind address (default: 0.0.0.0:8080)
  CORS_ORIGINS       Comma-separated origins allowed by serve`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "Base data directory")
	cmd.PersistentFlags().StringVar(&flags.tool, "tool", "", "Conversion executable name or path")

	cmd.AddCommand(liftCmd(&flags))
	cmd.AddCommand(setupCmd(&flags))
	cmd.AddCommand(chainsCmd(&flags))
	cmd.AddCommand(runsCmd(&flags))
	cmd.AddCommand(serveCmd(&flags))
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from .env file and environment variables,
// then applies global flag overrides.
func loadConfig(flags *globalFlags) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(flags.envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}

	var opts []config.AppConfigOption
	if flags.dataDir != "" {
		opts = append(opts, config.WithDataDir(flags.dataDir))
	}
	if flags.tool != "" {
		opts = append(opts, config.WithTool(flags.tool))
	}
	return cfg.Apply(opts...), nil
}
