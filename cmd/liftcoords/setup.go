package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func setupCmd(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Create the data directories and install chain files",
		Long: `Create the chain and work directories and install every chain file the
registry references from CHAIN_SOURCE_DIR. Compressed sources (.gz, .xz) are
decompressed. Files already installed are left alone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(global)
			if err != nil {
				return err
			}
			client, _, err := newClient(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			if err := client.EnsureReady(cmd.Context()); err != nil {
				return err
			}

			files, err := client.ChainFiles(cmd.Context())
			if err != nil {
				return err
			}
			cyan := color.New(color.FgCyan).SprintFunc()
			_, _ = fmt.Fprintf(os.Stderr, "%d chain files ready in %s\n", len(files), cyan(client.ChainDir()))
			return nil
		},
	}
}
