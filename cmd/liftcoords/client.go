package main

import (
	"fmt"
	"strings"

	liftcoords "github.com/Townsend-Lab-Yale/lift-coords"
	"github.com/Townsend-Lab-Yale/lift-coords/domain/table"
	"github.com/Townsend-Lab-Yale/lift-coords/internal/config"
	"github.com/Townsend-Lab-Yale/lift-coords/internal/log"
)

// newClient builds a Client from configuration. The caller closes it.
func newClient(cfg config.AppConfig) (*liftcoords.Client, *log.Logger, error) {
	logger := log.Configure(cfg)

	if err := cfg.EnsureDirs(); err != nil {
		return nil, nil, err
	}

	opts, err := clientOptions(cfg)
	if err != nil {
		return nil, nil, err
	}
	opts = append(opts, liftcoords.WithLogger(logger.Slog()))

	client, err := liftcoords.New(opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("create client: %w", err)
	}
	return client, logger, nil
}

// clientOptions maps AppConfig onto liftcoords options.
func clientOptions(cfg config.AppConfig) ([]liftcoords.Option, error) {
	strategy, err := table.ParseStrategy(cfg.ColumnStrategy())
	if err != nil {
		return nil, err
	}

	opts := []liftcoords.Option{
		liftcoords.WithDataDir(cfg.DataDir()),
		liftcoords.WithChainDir(cfg.ChainDir()),
		liftcoords.WithWorkDir(cfg.WorkDir()),
		liftcoords.WithTool(cfg.Tool()),
		liftcoords.WithColumnStrategy(strategy),
		liftcoords.WithKeepIntermediate(cfg.KeepIntermediate()),
	}
	if dir := cfg.ChainSourceDir(); dir != "" {
		opts = append(opts, liftcoords.WithChainSourceDir(dir))
	}

	storage, err := storageOption(cfg.DBURL())
	if err != nil {
		return nil, err
	}
	return append(opts, storage), nil
}

// storageOption selects the run history backend from a database URL.
func storageOption(dbURL string) (liftcoords.Option, error) {
	switch {
	case strings.HasPrefix(dbURL, "postgres://"), strings.HasPrefix(dbURL, "postgresql://"):
		return liftcoords.WithPostgres(dbURL), nil
	case strings.HasPrefix(dbURL, "sqlite:///"):
		return liftcoords.WithSQLite(strings.TrimPrefix(dbURL, "sqlite:///")), nil
	case strings.HasPrefix(dbURL, "sqlite:"):
		return liftcoords.WithSQLite(strings.TrimPrefix(dbURL, "sqlite:")), nil
	default:
		return nil, fmt.Errorf("unsupported DB_URL %q (want sqlite:/// or postgres://)", dbURL)
	}
}
