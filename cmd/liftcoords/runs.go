package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Townsend-Lab-Yale/lift-coords/domain/run"
)

func runsCmd(global *globalFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent lift runs",
		Args:  cobra.NoArgs,
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

			runs, err := client.Runs(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return printRuns(cmd.OutOrStdout(), runs)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to show (0 for all)")

	return cmd
}

func printRuns(w io.Writer, runs []run.Run) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tSTARTED\tSOURCE\tTARGET\tROWS\tLIFTED\tUNLIFTED\tDURATION\tSTATUS")
	for _, r := range runs {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
			r.ID(),
			r.StartedAt().Local().Format(time.DateTime),
			r.Source(),
			r.Target(),
			r.InputRows(),
			r.Lifted(),
			r.Unlifted(),
			r.Duration().Round(time.Millisecond),
			status(r),
		)
	}
	return tw.Flush()
}

// status is the last column so colour codes do not skew alignment.
func status(r run.Run) string {
	if r.Status() == run.StatusSucceeded {
		return color.GreenString(string(r.Status()))
	}
	msg := r.ErrorText()
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	return color.RedString("%s: %s", r.Status(), msg)
}
