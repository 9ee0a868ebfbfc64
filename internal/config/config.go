package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// LogLevel specifies the logging verbosity.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat specifies the log output format.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  LogLevel  `toml:"level"`
	Format LogFormat `toml:"format"`
	File   string    `toml:"file"`
}

// LimitsConfig bounds the buffers setup may request.
type LimitsConfig struct {
	// MaxAllocation is the largest element count a single buffer request may
	// ask for. Larger requests fail with an allocation error instead of
	// exhausting memory.
	MaxAllocation int `toml:"max_allocation"`
}

// Config is the tool configuration for sedinit. It is separate from the
// model input file that setup reads sections from.
type Config struct {
	Version string        `toml:"version"`
	Logging LoggingConfig `toml:"logging"`
	Limits  LimitsConfig  `toml:"limits"`
}

// DefaultMaxAllocation is the default per-request element cap.
const DefaultMaxAllocation = 1 << 26

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Version: "1",
		Logging: LoggingConfig{
			Level:  LogLevelInfo,
			Format: LogFormatText,
			File:   "",
		},
		Limits: LimitsConfig{
			MaxAllocation: DefaultMaxAllocation,
		},
	}
}

// Load loads configuration from file, merging with defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if no config file
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Version == "" {
		return fmt.Errorf("config version is required")
	}
	if c.Limits.MaxAllocation <= 0 {
		return fmt.Errorf("max_allocation must be positive")
	}
	switch c.Logging.Format {
	case LogFormatJSON, LogFormatText:
	default:
		return fmt.Errorf("unknown log format %q", c.Logging.Format)
	}
	return nil
}

// LogFile returns the absolute log file path.
func (c *Config) LogFile(baseDir string) string {
	if filepath.IsAbs(c.Logging.File) {
		return c.Logging.File
	}
	return filepath.Join(baseDir, c.Logging.File)
}
