package liftcoords

import (
	"log/slog"
	"path/filepath"

	"github.com/Townsend-Lab-Yale/lift-coords/domain/chain"
	"github.com/Townsend-Lab-Yale/lift-coords/domain/table"
	"github.com/Townsend-Lab-Yale/lift-coords/internal/config"
)

// databaseType identifies the run history database.
type databaseType int

const (
	databaseSQLite databaseType = iota
	databasePostgres
)

// clientConfig holds configuration for Client construction.
type clientConfig struct {
	database         databaseType
	dbPath           string
	dbDSN            string
	dataDir          string
	chainDir         string
	workDir          string
	chainSourceDir   string
	tool             string
	logger           *slog.Logger
	registry         *chain.Registry
	strategy         table.Strategy
	keepIntermediate bool
}

func newClientConfig() *clientConfig {
	return &clientConfig{
		database: databaseSQLite,
		dataDir:  config.DefaultDataDir(),
		tool:     config.DefaultTool,
		strategy: table.StrategySubstring,
	}
}

func (c *clientConfig) resolvedChainDir() string {
	if c.chainDir != "" {
		return c.chainDir
	}
	return config.DefaultChainDir(c.dataDir)
}

func (c *clientConfig) resolvedWorkDir() string {
	if c.workDir != "" {
		return c.workDir
	}
	return config.DefaultWorkDir(c.dataDir)
}

func (c *clientConfig) databaseURL() string {
	switch c.database {
	case databasePostgres:
		return c.dbDSN
	default:
		path := c.dbPath
		if path == "" {
			path = filepath.Join(c.dataDir, config.DefaultDBName)
		}
		return "sqlite:///" + path
	}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithDataDir sets the base directory holding data/, temp/ and the default
// SQLite database.
func WithDataDir(dir string) Option {
	return func(c *clientConfig) {
		c.dataDir = dir
	}
}

// WithChainDir sets the directory chain files are read from.
// Defaults to {data dir}/data.
func WithChainDir(dir string) Option {
	return func(c *clientConfig) {
		c.chainDir = dir
	}
}

// WithWorkDir sets the directory intermediate files are staged in.
// Defaults to {data dir}/temp. Concurrent lifts from separate processes
// should use separate work directories.
func WithWorkDir(dir string) Option {
	return func(c *clientConfig) {
		c.workDir = dir
	}
}

// WithChainSourceDir sets where EnsureReady looks for chain files to install.
// Files may be plain, gzip or xz compressed.
func WithChainSourceDir(dir string) Option {
	return func(c *clientConfig) {
		c.chainSourceDir = dir
	}
}

// WithTool sets the conversion tool name or path. Defaults to liftOver.
func WithTool(tool string) Option {
	return func(c *clientConfig) {
		c.tool = tool
	}
}

// WithSQLite stores run history in the SQLite database at path.
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		c.database = databaseSQLite
		c.dbPath = path
	}
}

// WithPostgres stores run history in PostgreSQL.
func WithPostgres(dsn string) Option {
	return func(c *clientConfig) {
		c.database = databasePostgres
		c.dbDSN = dsn
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithRegistry replaces the built-in chain registry.
func WithRegistry(r chain.Registry) Option {
	return func(c *clientConfig) {
		c.registry = &r
	}
}

// WithColumnStrategy sets how coordinate columns are matched by name.
func WithColumnStrategy(s table.Strategy) Option {
	return func(c *clientConfig) {
		c.strategy = s
	}
}

// WithKeepIntermediate keeps staged files for every lift.
func WithKeepIntermediate(keep bool) Option {
	return func(c *clientConfig) {
		c.keepIntermediate = keep
	}
}
