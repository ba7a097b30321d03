// Package liftcoords converts genomic coordinate tables between reference
// builds (grch37, grch38, hg19, hg38) by driving the UCSC liftOver tool with
// the appropriate chain files, one or two hops at a time.
//
// Basic usage:
//
//	client, err := liftcoords.New(
//	    liftcoords.WithChainSourceDir("/opt/chains"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	if err := client.EnsureReady(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	tbl, _ := table.New(
//	    []string{"Chromosome", "Start_Position", "End_Position"},
//	    [][]string{{"chr1", "100", "200"}},
//	)
//	result, err := client.LiftOver(ctx, tbl, "hg19", "grch37")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Lifted.Len(), "lifted,", result.Unlifted.Len(), "unlifted")
package liftcoords

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/Townsend-Lab-Yale/lift-coords/application/service"
	"github.com/Townsend-Lab-Yale/lift-coords/domain/chain"
	"github.com/Townsend-Lab-Yale/lift-coords/domain/run"
	"github.com/Townsend-Lab-Yale/lift-coords/domain/store"
	"github.com/Townsend-Lab-Yale/lift-coords/domain/table"
	"github.com/Townsend-Lab-Yale/lift-coords/infrastructure/liftover"
	"github.com/Townsend-Lab-Yale/lift-coords/infrastructure/persistence"
	"github.com/Townsend-Lab-Yale/lift-coords/internal/config"
	"github.com/Townsend-Lab-Yale/lift-coords/internal/database"
)

// Client lifts coordinate tables and keeps a history of its runs.
type Client struct {
	db          database.Database
	registry    chain.Registry
	lifter      *service.Lifter
	provisioner *service.Provisioner
	runs        persistence.RunStore
	chainFiles  persistence.ChainFileStore
	logger      *slog.Logger
	chainDir    string
	workDir     string
	closed      atomic.Bool
}

// New creates a Client. It opens the run history database, creating the data
// directory when the default SQLite location is used, but installs nothing:
// call EnsureReady before the first lift.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = config.DefaultLogger()
	}

	registry := chain.Default()
	if cfg.registry != nil {
		registry = *cfg.registry
	}

	if cfg.database == databaseSQLite && cfg.dbPath == "" {
		if _, err := config.PrepareDir(cfg.dataDir, "data"); err != nil {
			return nil, err
		}
	}

	ctx := context.Background()
	db, err := database.NewDatabase(ctx, cfg.databaseURL())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := persistence.AutoMigrate(db); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("auto migrate: %w", err), errClose)
	}

	runs := persistence.NewRunStore(db)
	chainFiles := persistence.NewChainFileStore(db)
	chainDir := cfg.resolvedChainDir()
	workDir := cfg.resolvedWorkDir()

	runner := liftover.NewRunner(cfg.tool, workDir, logger)
	lifter := service.NewLifter(registry, chainDir, runner, logger,
		service.WithRunStore(runs),
		service.WithStrategy(cfg.strategy),
		service.WithKeepIntermediate(cfg.keepIntermediate),
	)
	provisioner := service.NewProvisioner(registry, chainDir, workDir, cfg.chainSourceDir, chainFiles, logger)

	return &Client{
		db:          db,
		registry:    registry,
		lifter:      lifter,
		provisioner: provisioner,
		runs:        runs,
		chainFiles:  chainFiles,
		logger:      logger,
		chainDir:    chainDir,
		workDir:     workDir,
	}, nil
}

// EnsureReady creates the chain and work directories and installs any
// missing chain files from the chain source directory. It is idempotent.
func (c *Client) EnsureReady(ctx context.Context) error {
	if c.closed.Load() {
		return ErrClientClosed
	}
	_, err := c.provisioner.EnsureReady(ctx)
	return err
}

// EnsurePair installs only the chain files needed to convert source to
// target. Sources for other pairs may be absent.
func (c *Client) EnsurePair(ctx context.Context, source, target string) error {
	if c.closed.Load() {
		return ErrClientClosed
	}
	_, err := c.provisioner.EnsurePair(ctx, source, target)
	return err
}

// Missing returns the registry chain files not yet installed.
func (c *Client) Missing() ([]string, error) {
	if c.closed.Load() {
		return nil, ErrClientClosed
	}
	return c.provisioner.Missing(), nil
}

// Result is the outcome of LiftOver.
type Result struct {
	// RunID identifies the run in the history.
	RunID string
	// Chains lists the chain files applied, in order.
	Chains []string
	// Lifted holds the rows that mapped through every hop.
	Lifted table.Table
	// Unlifted holds the original rows that did not.
	Unlifted table.Table
	// Intermediate lists staged files kept on disk.
	Intermediate []string
}

// LiftOption configures a single LiftOver call.
type LiftOption func(*service.LiftRequest)

// WithKeepOrig keeps the original coordinate and build columns, suffixed
// with _orig.
func WithKeepOrig(keep bool) LiftOption {
	return func(r *service.LiftRequest) {
		r.KeepOrig = keep
	}
}

// WithKeepIntermediateFiles keeps this call's staged files.
func WithKeepIntermediateFiles(keep bool) LiftOption {
	return func(r *service.LiftRequest) {
		r.KeepIntermediate = keep
	}
}

// WithBuildLabel sets the value written to the build column. Defaults to the
// target build's display name (GRCh37, GRCh38, hg19, hg38).
func WithBuildLabel(label string) LiftOption {
	return func(r *service.LiftRequest) {
		r.BuildLabel = label
	}
}

// WithColumns pins semantic columns (table.Chrom, table.Start, table.End,
// table.Build) to exact header names.
func WithColumns(columns map[string]string) LiftOption {
	return func(r *service.LiftRequest) {
		if r.Columns == nil {
			r.Columns = make(map[string]string, len(columns))
		}
		for k, v := range columns {
			r.Columns[k] = v
		}
	}
}

// LiftOver converts tbl from source to target coordinates. Rows that fail to
// map at any hop are returned in Result.Unlifted; a tool failure aborts the
// call with an error matching ErrExternalTool.
func (c *Client) LiftOver(ctx context.Context, tbl table.Table, source, target string, opts ...LiftOption) (Result, error) {
	if c.closed.Load() {
		return Result{}, ErrClientClosed
	}

	req := service.LiftRequest{Table: tbl, Source: source, Target: target}
	for _, opt := range opts {
		opt(&req)
	}

	res, err := c.lifter.Lift(ctx, req)
	if err != nil {
		return Result{}, err
	}
	return Result{
		RunID:        res.RunID,
		Chains:       res.Chains,
		Lifted:       res.Lifted,
		Unlifted:     res.Unlifted,
		Intermediate: res.Intermediate,
	}, nil
}

// Runs returns the most recent runs, newest first. A limit of zero or less
// returns all runs.
func (c *Client) Runs(ctx context.Context, limit int) ([]run.Run, error) {
	if c.closed.Load() {
		return nil, ErrClientClosed
	}
	opts := []store.Option{run.Newest()}
	if limit > 0 {
		opts = append(opts, store.WithLimit(limit))
	}
	return c.runs.Find(ctx, opts...)
}

// Run returns a single run by ID.
func (c *Client) Run(ctx context.Context, id string) (run.Run, error) {
	if c.closed.Load() {
		return run.Run{}, ErrClientClosed
	}
	return c.runs.FindOne(ctx, run.WithID(id))
}

// ChainFiles returns the chain files installed by EnsureReady.
func (c *Client) ChainFiles(ctx context.Context) ([]chain.File, error) {
	if c.closed.Load() {
		return nil, ErrClientClosed
	}
	return c.chainFiles.Find(ctx, store.WithOrderAsc("name"))
}

// Chains returns the chain registry.
func (c *Client) Chains() chain.Registry {
	return c.registry
}

// ChainDir returns the directory chain files are read from.
func (c *Client) ChainDir() string { return c.chainDir }

// WorkDir returns the directory intermediate files are staged in.
func (c *Client) WorkDir() string { return c.workDir }

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger { return c.logger }

// Close releases the database connection.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClientClosed
	}
	if err := c.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}
