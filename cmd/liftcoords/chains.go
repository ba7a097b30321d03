package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Townsend-Lab-Yale/lift-coords/domain/chain"
	"github.com/Townsend-Lab-Yale/lift-coords/domain/genome"
)

// installedFile is the YAML shape of an installed chain file.
type installedFile struct {
	Name        string `yaml:"name"`
	Path        string `yaml:"path"`
	Size        int64  `yaml:"size"`
	Checksum    string `yaml:"blake3"`
	Source      string `yaml:"source,omitempty"`
	InstalledAt string `yaml:"installed_at"`
}

func chainsCmd(global *globalFlags) *cobra.Command {
	var installed bool

	cmd := &cobra.Command{
		Use:   "chains [SOURCE TARGET]",
		Short: "Show the chain files used between builds",
		Long: `Print the chain registry as YAML. With SOURCE and TARGET, print only the
ordered chain files for that pair. With --installed, list the chain files
recorded by setup.`,
		Args: cobra.MatchAll(cobra.MaximumNArgs(2), func(_ *cobra.Command, args []string) error {
			if len(args) == 1 {
				return fmt.Errorf("expected SOURCE and TARGET, got one argument")
			}
			return nil
		}),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer func() { _ = enc.Close() }()

			if !installed {
				registry := chain.Default()
				if len(args) == 2 {
					files, err := registry.Resolve(args[0], args[1])
					if err != nil {
						return err
					}
					return enc.Encode(chain.Pair{Source: genome.Build(args[0]), Target: genome.Build(args[1]), Chains: files})
				}
				return enc.Encode(registry.Pairs())
			}

			cfg, err := loadConfig(global)
			if err != nil {
				return err
			}
			client, _, err := newClient(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			files, err := client.ChainFiles(cmd.Context())
			if err != nil {
				return err
			}
			out := make([]installedFile, 0, len(files))
			for _, f := range files {
				out = append(out, installedFile{
					Name:        f.Name(),
					Path:        filepath.Join(client.ChainDir(), f.Name()),
					Size:        f.Size(),
					Checksum:    f.Checksum(),
					Source:      f.Source(),
					InstalledAt: f.InstalledAt().UTC().Format("2006-01-02T15:04:05Z"),
				})
			}
			return enc.Encode(out)
		},
	}

	cmd.Flags().BoolVar(&installed, "installed", false, "List installed chain files")

	return cmd
}
