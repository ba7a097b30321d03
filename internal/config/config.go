// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Default configuration values.
const (
	AppName            = "lift_coords"
	DefaultHost        = "0.0.0.0"
	DefaultPort        = 8080
	DefaultLogLevel    = "INFO"
	DefaultTool        = "liftOver"
	DefaultChainSubdir = "data"
	DefaultWorkSubdir  = "temp"
	DefaultDBName      = "lift_coords.db"
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// AppConfig holds the resolved application configuration.
type AppConfig struct {
	host             string
	port             int
	dataDir          string
	chainDir         string
	workDir          string
	chainSourceDir   string
	tool             string
	dbURL            string
	keepIntermediate bool
	columnStrategy   string
	logLevel         string
	logFormat        LogFormat
	corsOrigins      []string
}

// DefaultDataDir returns the per-user application data directory:
// $XDG_DATA_HOME/lift_coords (or ~/.local/share/lift_coords) on Linux,
// ~/Library/Application Support/lift_coords on macOS and
// %LOCALAPPDATA%\lift_coords on Windows.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + AppName
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", AppName)
	case "windows":
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			return filepath.Join(local, AppName)
		}
		return filepath.Join(home, "AppData", "Local", AppName)
	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, AppName)
		}
		return filepath.Join(home, ".local", "share", AppName)
	}
}

// DefaultChainDir returns the chain directory for a data directory.
func DefaultChainDir(dataDir string) string {
	return filepath.Join(dataDir, DefaultChainSubdir)
}

// DefaultWorkDir returns the working directory for a data directory.
func DefaultWorkDir(dataDir string) string {
	return filepath.Join(dataDir, DefaultWorkSubdir)
}

// DefaultDBURL returns the SQLite URL for a data directory.
func DefaultDBURL(dataDir string) string {
	return "sqlite:///" + filepath.Join(dataDir, DefaultDBName)
}

// DefaultLogger returns the default slog logger for library consumers.
func DefaultLogger() *slog.Logger {
	return slog.Default()
}

// PrepareDir creates dir if it does not exist and returns it.
func PrepareDir(dir, what string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s directory: %w", what, err)
	}
	return dir, nil
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	dataDir := DefaultDataDir()
	return AppConfig{
		host:      DefaultHost,
		port:      DefaultPort,
		dataDir:   dataDir,
		tool:      DefaultTool,
		logLevel:  DefaultLogLevel,
		logFormat: LogFormatPretty,
	}
}

// Host returns the server host.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port.
func (c AppConfig) Port() int { return c.port }

// Addr returns host:port.
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.host, c.port)
}

// DataDir returns the base data directory.
func (c AppConfig) DataDir() string { return c.dataDir }

// ChainDir returns the chain file directory, defaulting to {data}/data.
func (c AppConfig) ChainDir() string {
	if c.chainDir == "" {
		return DefaultChainDir(c.dataDir)
	}
	return c.chainDir
}

// WorkDir returns the intermediate file directory, defaulting to {data}/temp.
func (c AppConfig) WorkDir() string {
	if c.workDir == "" {
		return DefaultWorkDir(c.dataDir)
	}
	return c.workDir
}

// ChainSourceDir returns where distributed chain archives are read from.
func (c AppConfig) ChainSourceDir() string { return c.chainSourceDir }

// Tool returns the conversion executable name or path.
func (c AppConfig) Tool() string { return c.tool }

// DBURL returns the database URL, defaulting to SQLite in the data directory.
func (c AppConfig) DBURL() string {
	if c.dbURL == "" {
		return DefaultDBURL(c.dataDir)
	}
	return c.dbURL
}

// KeepIntermediate returns whether intermediate files are retained.
func (c AppConfig) KeepIntermediate() bool { return c.keepIntermediate }

// ColumnStrategy returns the column resolution strategy name.
func (c AppConfig) ColumnStrategy() string { return c.columnStrategy }

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// CORSOrigins returns the allowed CORS origins.
func (c AppConfig) CORSOrigins() []string {
	return append([]string(nil), c.corsOrigins...)
}

// EnsureDirs creates the data, chain and work directories.
func (c AppConfig) EnsureDirs() error {
	for _, d := range []struct{ path, what string }{
		{c.dataDir, "data"},
		{c.ChainDir(), "chain"},
		{c.WorkDir(), "work"},
	} {
		if _, err := PrepareDir(d.path, d.what); err != nil {
			return err
		}
	}
	return nil
}

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithDataDir sets the data directory.
func WithDataDir(dir string) AppConfigOption {
	return func(c *AppConfig) { c.dataDir = dir }
}

// WithChainDir sets the chain directory.
func WithChainDir(dir string) AppConfigOption {
	return func(c *AppConfig) { c.chainDir = dir }
}

// WithWorkDir sets the working directory.
func WithWorkDir(dir string) AppConfigOption {
	return func(c *AppConfig) { c.workDir = dir }
}

// WithChainSourceDir sets the chain archive source directory.
func WithChainSourceDir(dir string) AppConfigOption {
	return func(c *AppConfig) { c.chainSourceDir = dir }
}

// WithTool sets the conversion executable.
func WithTool(tool string) AppConfigOption {
	return func(c *AppConfig) { c.tool = tool }
}

// WithDBURL sets the database URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.dbURL = url }
}

// WithKeepIntermediate sets intermediate file retention.
func WithKeepIntermediate(keep bool) AppConfigOption {
	return func(c *AppConfig) { c.keepIntermediate = keep }
}

// WithColumnStrategy sets the column resolution strategy.
func WithColumnStrategy(s string) AppConfigOption {
	return func(c *AppConfig) { c.columnStrategy = s }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithCORSOrigins sets the allowed CORS origins.
func WithCORSOrigins(origins []string) AppConfigOption {
	return func(c *AppConfig) { c.corsOrigins = append([]string(nil), origins...) }
}

// NewAppConfigWithOptions creates an AppConfig with defaults and applies opts.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	cfg := NewAppConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Apply returns a copy of c with opts applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func parseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}

// ParseList splits a comma-separated list, trimming blanks.
func ParseList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
