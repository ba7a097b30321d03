package config

import (
	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
type EnvConfig struct {
	// Host is the server host to bind to.
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Port is the server port to listen on.
	// Env: PORT (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// DataDir is the base data directory.
	// Env: DATA_DIR
	// Default: the platform per-user data directory for lift_coords
	DataDir string `envconfig:"DATA_DIR"`

	// ChainDir holds installed chain files.
	// Env: CHAIN_DIR (default: {data_dir}/data)
	ChainDir string `envconfig:"CHAIN_DIR"`

	// WorkDir holds intermediate interval files.
	// Env: WORK_DIR (default: {data_dir}/temp)
	WorkDir string `envconfig:"WORK_DIR"`

	// ChainSourceDir holds distributed (possibly compressed) chain files.
	// Env: CHAIN_SOURCE_DIR
	ChainSourceDir string `envconfig:"CHAIN_SOURCE_DIR"`

	// Tool is the conversion executable.
	// Env: LIFTOVER_TOOL (default: liftOver)
	Tool string `envconfig:"LIFTOVER_TOOL" default:"liftOver"`

	// DBURL is the database connection URL.
	// Env: DB_URL (default: sqlite:///{data_dir}/lift_coords.db)
	DBURL string `envconfig:"DB_URL"`

	// KeepIntermediate retains interval files after each run.
	// Env: KEEP_INTERMEDIATE (default: false)
	KeepIntermediate bool `envconfig:"KEEP_INTERMEDIATE" default:"false"`

	// ColumnStrategy is substring or exact.
	// Env: COLUMN_STRATEGY (default: substring)
	ColumnStrategy string `envconfig:"COLUMN_STRATEGY" default:"substring"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// CORSOrigins is a comma-separated list of allowed origins.
	// Env: CORS_ORIGINS
	CORSOrigins string `envconfig:"CORS_ORIGINS"`
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// LoadFromEnvWithPrefix loads configuration with a custom prefix.
// For example, prefix "LIFT" would require LIFT_DATA_DIR instead of DATA_DIR.
func LoadFromEnvWithPrefix(prefix string) (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	cfg := NewAppConfig()

	if e.Host != "" {
		cfg = applyOption(cfg, WithHost(e.Host))
	}
	if e.Port != 0 {
		cfg = applyOption(cfg, WithPort(e.Port))
	}
	if e.DataDir != "" {
		cfg = applyOption(cfg, WithDataDir(e.DataDir))
	}
	if e.ChainDir != "" {
		cfg = applyOption(cfg, WithChainDir(e.ChainDir))
	}
	if e.WorkDir != "" {
		cfg = applyOption(cfg, WithWorkDir(e.WorkDir))
	}
	if e.ChainSourceDir != "" {
		cfg = applyOption(cfg, WithChainSourceDir(e.ChainSourceDir))
	}
	if e.Tool != "" {
		cfg = applyOption(cfg, WithTool(e.Tool))
	}
	if e.DBURL != "" {
		cfg = applyOption(cfg, WithDBURL(e.DBURL))
	}
	if e.LogLevel != "" {
		cfg = applyOption(cfg, WithLogLevel(e.LogLevel))
	}
	if e.LogFormat != "" {
		cfg = applyOption(cfg, WithLogFormat(parseLogFormat(e.LogFormat)))
	}
	cfg = applyOption(cfg, WithKeepIntermediate(e.KeepIntermediate))
	cfg = applyOption(cfg, WithColumnStrategy(e.ColumnStrategy))
	cfg = applyOption(cfg, WithCORSOrigins(ParseList(e.CORSOrigins)))

	return cfg
}

// applyOption applies an option to the config.
func applyOption(cfg AppConfig, opt AppConfigOption) AppConfig {
	opt(&cfg)
	return cfg
}
