// Package liftover runs the external coordinate conversion tool, one chain
// file per invocation.
package liftover

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Townsend-Lab-Yale/lift-coords/infrastructure/bed"
)

// DefaultTool is the UCSC conversion binary name.
const DefaultTool = "liftOver"

// File kinds used in staged file names.
const (
	KindInput    = "in"
	KindMapped   = "out"
	KindUnmapped = "unlifted"
)

// Hop is the outcome of one tool invocation.
type Hop struct {
	Input    string
	Chain    string
	Mapped   string
	Unmapped string
	// UnmappedCount is the number of regions the tool could not place.
	UnmappedCount int
}

// Files returns the files the hop created.
func (h Hop) Files() []string {
	return []string{h.Mapped, h.Unmapped}
}

// Runner invokes the conversion tool with staged files in a work directory.
type Runner struct {
	tool    string
	workDir string
	logger  *slog.Logger
	now     func() time.Time
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithClock overrides the time source used for file names.
func WithClock(now func() time.Time) RunnerOption {
	return func(r *Runner) {
		r.now = now
	}
}

// NewRunner creates a Runner. An empty tool selects DefaultTool.
func NewRunner(tool, workDir string, logger *slog.Logger, opts ...RunnerOption) Runner {
	if tool == "" {
		tool = DefaultTool
	}
	if logger == nil {
		logger = slog.Default()
	}
	r := Runner{
		tool:    tool,
		workDir: workDir,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Tool returns the configured tool name or path.
func (r Runner) Tool() string { return r.tool }

// WorkDir returns the staging directory.
func (r Runner) WorkDir() string { return r.workDir }

// StagePath returns a fresh, collision-free path in the work directory.
// Names combine a timestamp with a random token:
//
//	lift_20260301T120000.123456789_<uuid>_<kind>
func (r Runner) StagePath(kind string) string {
	ts := r.now().UTC().Format("20060102T150405.000000000")
	return filepath.Join(r.workDir, fmt.Sprintf("lift_%s_%s_%s", ts, uuid.NewString(), kind))
}

// LookPath resolves the tool on PATH.
func (r Runner) LookPath() (string, error) {
	path, err := exec.LookPath(r.tool)
	if err != nil {
		return "", &ExternalToolError{Tool: r.tool, ExitCode: -1, Err: err}
	}
	return path, nil
}

// RunHop converts input through chainPath:
//
//	<tool> <input> <chain> <mapped> <unmapped>
//
// Tool output is forwarded to the logger line by line while the process runs,
// stdout at info and stderr at error. A non-zero exit status is an
// *ExternalToolError.
func (r Runner) RunHop(ctx context.Context, input, chainPath string) (Hop, error) {
	tool, err := r.LookPath()
	if err != nil {
		return Hop{}, err
	}

	hop := Hop{
		Input:    input,
		Chain:    chainPath,
		Mapped:   r.StagePath(KindMapped),
		Unmapped: r.StagePath(KindUnmapped),
	}
	args := []string{hop.Input, hop.Chain, hop.Mapped, hop.Unmapped}
	logger := r.logger.With(slog.String("chain", filepath.Base(chainPath)))

	cmd := exec.CommandContext(ctx, tool, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return hop, &ExternalToolError{Tool: tool, Args: args, ExitCode: -1, Err: err}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return hop, &ExternalToolError{Tool: tool, Args: args, ExitCode: -1, Err: err}
	}

	logger.Debug("starting hop", slog.String("tool", tool), slog.Any("args", args))
	start := time.Now()
	if err := cmd.Start(); err != nil {
		return hop, &ExternalToolError{Tool: tool, Args: args, ExitCode: -1, Err: err}
	}

	var g errgroup.Group
	g.Go(func() error { return forward(stdout, logger, slog.LevelInfo) })
	g.Go(func() error { return forward(stderr, logger, slog.LevelError) })
	streamErr := g.Wait()

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return hop, &ExternalToolError{Tool: tool, Args: args, ExitCode: exitErr.ExitCode(), Err: err}
		}
		return hop, &ExternalToolError{Tool: tool, Args: args, ExitCode: -1, Err: err}
	}
	if streamErr != nil {
		return hop, fmt.Errorf("read tool output: %w", streamErr)
	}

	unmapped, err := bed.CountRecords(hop.Unmapped)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Debug("tool wrote no unmapped file", slog.String("path", hop.Unmapped))
	case err != nil:
		return hop, fmt.Errorf("count unmapped regions: %w", err)
	}
	hop.UnmappedCount = unmapped

	logger.Info("hop finished",
		slog.Int("unmapped", unmapped),
		slog.Duration("duration", time.Since(start)),
	)
	return hop, nil
}

func forward(r io.Reader, logger *slog.Logger, level slog.Level) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		logger.Log(context.Background(), level, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		_, _ = io.Copy(io.Discard, r)
		return err
	}
	return nil
}
