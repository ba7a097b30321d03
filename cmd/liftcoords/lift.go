package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	liftcoords "github.com/Townsend-Lab-Yale/lift-coords"
	"github.com/Townsend-Lab-Yale/lift-coords/domain/table"
	"github.com/Townsend-Lab-Yale/lift-coords/infrastructure/tabular"
	"github.com/Townsend-Lab-Yale/lift-coords/internal/log"
)

type liftFlags struct {
	source           string
	target           string
	output           string
	unlifted         string
	keepOrig         bool
	keepIntermediate bool
	buildLabel       string
	chromCol         string
	startCol         string
	endCol           string
	buildCol         string
	quiet            bool
}

func liftCmd(global *globalFlags) *cobra.Command {
	var flags liftFlags

	cmd := &cobra.Command{
		Use:   "lift INPUT",
		Short: "Lift a TSV or CSV table to another build",
		Long: `Lift the coordinates of a delimited table to another build.

INPUT is a .tsv or .csv file with a header row, or - for TSV on stdin.
Lifted rows are written to --output (default: INPUT.<target>.<ext>) and rows
that failed to map to --unlifted (default: INPUT.<target>.unlifted.<ext>).
When INPUT is - the lifted table goes to stdout and unlifted rows are only
written when --unlifted is set.`,
		Example: `  liftcoords lift variants.tsv --from hg19 --to grch38
  liftcoords lift calls.csv --from grch37 --to hg38 --keep-orig --build-label hg38
  cat sites.tsv | liftcoords lift - --from hg38 --to hg19 > sites.hg19.tsv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLift(cmd.Context(), global, flags, args[0])
		},
	}

	cmd.Flags().StringVarP(&flags.source, "from", "s", "", "Source build: grch37, grch38, hg19, hg38")
	cmd.Flags().StringVarP(&flags.target, "to", "t", "", "Target build: grch37, grch38, hg19, hg38")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Lifted table path (- for stdout)")
	cmd.Flags().StringVar(&flags.unlifted, "unlifted", "", "Unlifted rows path")
	cmd.Flags().BoolVar(&flags.keepOrig, "keep-orig", false, "Keep original coordinate columns with an _orig suffix")
	cmd.Flags().BoolVar(&flags.keepIntermediate, "keep-intermediate", false, "Keep interval files in the work directory")
	cmd.Flags().StringVar(&flags.buildLabel, "build-label", "", "Value for the build column (default: target build name)")
	cmd.Flags().StringVar(&flags.chromCol, "chrom-col", "", "Chromosome column name")
	cmd.Flags().StringVar(&flags.startCol, "start-col", "", "Start position column name")
	cmd.Flags().StringVar(&flags.endCol, "end-col", "", "End position column name")
	cmd.Flags().StringVar(&flags.buildCol, "build-col", "", "Build column name")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "Disable the progress spinner")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func runLift(ctx context.Context, global *globalFlags, flags liftFlags, input string) error {
	cfg, err := loadConfig(global)
	if err != nil {
		return err
	}

	tbl, err := tabular.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}

	client, logger, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if err := client.EnsurePair(ctx, flags.source, flags.target); err != nil {
		return fmt.Errorf("prepare chain files: %w", err)
	}

	output, unlifted := outputPaths(input, flags.target, flags.output, flags.unlifted)

	var spin *spinner.Spinner
	if !flags.quiet && isatty.IsTerminal(os.Stderr.Fd()) {
		spin = spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		spin.Suffix = fmt.Sprintf(" lifting %d rows %s -> %s", tbl.Len(), flags.source, flags.target)
		spin.Start()
	}
	res, err := client.LiftOver(ctx, tbl, flags.source, flags.target, flags.options()...)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	if err := tabular.WriteFile(output, res.Lifted); err != nil {
		return fmt.Errorf("write lifted rows: %w", err)
	}
	if unlifted != "" {
		if err := tabular.WriteFile(unlifted, res.Unlifted); err != nil {
			return fmt.Errorf("write unlifted rows: %w", err)
		}
	}

	logger.For(log.WithRunID(ctx, res.RunID)).Info("lift written",
		"lifted", res.Lifted.Len(),
		"unlifted", res.Unlifted.Len(),
		"output", output,
	)
	if output != "-" {
		printSummary(os.Stderr, res, output, unlifted)
	}
	return nil
}

func (f liftFlags) options() []liftcoords.LiftOption {
	opts := []liftcoords.LiftOption{
		liftcoords.WithKeepOrig(f.keepOrig),
		liftcoords.WithKeepIntermediateFiles(f.keepIntermediate),
	}
	if f.buildLabel != "" {
		opts = append(opts, liftcoords.WithBuildLabel(f.buildLabel))
	}

	columns := map[string]string{}
	for semantic, name := range map[string]string{
		table.Chrom: f.chromCol,
		table.Start: f.startCol,
		table.End:   f.endCol,
		table.Build: f.buildCol,
	} {
		if name != "" {
			columns[semantic] = name
		}
	}
	if len(columns) > 0 {
		opts = append(opts, liftcoords.WithColumns(columns))
	}
	return opts
}

// outputPaths derives default output paths from the input path:
// variants.tsv lifted to grch38 becomes variants.grch38.tsv and
// variants.grch38.unlifted.tsv.
func outputPaths(input, target, output, unlifted string) (string, string) {
	if input == "-" {
		if output == "" {
			output = "-"
		}
		return output, unlifted
	}

	ext := filepath.Ext(input)
	stem := strings.TrimSuffix(input, ext)
	if ext == "" {
		ext = ".tsv"
	}
	if output == "" {
		output = stem + "." + target + ext
	}
	if unlifted == "" {
		unlifted = stem + "." + target + ".unlifted" + ext
	}
	return output, unlifted
}

func printSummary(w io.Writer, res liftcoords.Result, output, unlifted string) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	_, _ = fmt.Fprintf(w, "%s rows lifted -> %s\n", green(res.Lifted.Len()), cyan(output))
	if unlifted != "" {
		_, _ = fmt.Fprintf(w, "%s rows unlifted -> %s\n", yellow(res.Unlifted.Len()), cyan(unlifted))
	}
	for _, f := range res.Intermediate {
		_, _ = fmt.Fprintf(w, "kept %s\n", f)
	}
}
