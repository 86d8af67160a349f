package assertion

import (
	"fmt"
	"strings"

	"digital.vasic.matchers/pkg/env"
	"digital.vasic.matchers/pkg/logging"
)

// Environment keys read by LoadConfig.
const (
	EnvVerbose   = "MATCHERS_VERBOSE"
	EnvLogFormat = "MATCHERS_LOG_FORMAT"
	EnvLogLevel  = "MATCHERS_LOG_LEVEL"
	EnvLogPath   = "MATCHERS_LOG_PATH"
)

// Log formats understood by Config.
const (
	LogFormatNone    = "none"
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

// Config holds engine configuration.
type Config struct {
	// Verbose makes passing outcomes carry a message.
	Verbose bool `json:"verbose"`

	// LogFormat is "none", "json" or "console".
	LogFormat string `json:"log_format"`

	// LogLevel is the minimum level logged ("debug", "info",
	// "warn", "error").
	LogLevel string `json:"log_level"`

	// LogPath is the JSON log file. With the console format it
	// adds a JSON file next to console output. Empty means
	// stdout for the JSON format.
	LogPath string `json:"log_path"`
}

// DefaultConfig returns a Config with logging disabled.
func DefaultConfig() Config {
	return Config{
		LogFormat: LogFormatNone,
		LogLevel:  "info",
	}
}

// LoadConfig reads a Config from loader, falling back to
// DefaultConfig for unset keys.
func LoadConfig(loader env.Loader) (Config, error) {
	cfg := DefaultConfig()

	verbose, err := loader.GetBool(EnvVerbose, cfg.Verbose)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	cfg.Verbose = verbose
	cfg.LogFormat = strings.ToLower(
		loader.GetWithDefault(EnvLogFormat, cfg.LogFormat),
	)
	cfg.LogLevel = loader.GetWithDefault(EnvLogLevel, cfg.LogLevel)
	cfg.LogPath = loader.Get(EnvLogPath)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// Validate checks the log format and level.
func (c Config) Validate() error {
	switch c.LogFormat {
	case "", LogFormatNone, LogFormatJSON, LogFormatConsole:
	default:
		return fmt.Errorf("unknown log format: %s", c.LogFormat)
	}
	_, err := logging.ParseLevel(c.LogLevel)
	return err
}

// NewLogger builds the logger the Config describes.
func (c Config) NewLogger() (logging.Logger, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	debug := level == logging.LevelDebug

	switch c.LogFormat {
	case "", LogFormatNone:
		return logging.NullLogger{}, nil
	case LogFormatJSON:
		return logging.NewJSONLogger(logging.LoggerConfig{
			OutputPath: c.LogPath,
			Level:      level,
			Verbose:    debug,
		})
	case LogFormatConsole:
		console := logging.NewConsoleLogger(debug)
		if c.LogPath == "" {
			return console, nil
		}
		file, err := logging.NewJSONLogger(logging.LoggerConfig{
			OutputPath: c.LogPath,
			Level:      level,
			Verbose:    debug,
		})
		if err != nil {
			return nil, err
		}
		return logging.NewMultiLogger(console, file), nil
	}
	return nil, fmt.Errorf("unknown log format: %s", c.LogFormat)
}

// NewEngineFromConfig builds a DefaultEngine whose logger and
// verbosity come from cfg. Options are applied after the
// configured ones, so they can override them. Close the engine
// to release its log file.
func NewEngineFromConfig(
	cfg Config,
	opts ...Option,
) (*DefaultEngine, error) {
	logger, err := cfg.NewLogger()
	if err != nil {
		return nil, fmt.Errorf("build engine: %w", err)
	}

	base := []Option{
		WithLogger(logger),
		WithVerbose(cfg.Verbose),
	}
	return NewEngine(append(base, opts...)...), nil
}
