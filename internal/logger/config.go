package logger

import "fmt"

// Config represents logging configuration
type Config struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	File       string `mapstructure:"file"`        // log file path; empty disables the file core
	MaxSize    int    `mapstructure:"max_size"`    // MB before rotation
	MaxBackups int    `mapstructure:"max_backups"` // rotated files to retain
}

// DefaultConfig returns the default logging configuration
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		MaxSize:    1,
		MaxBackups: 1,
	}
}

// Validate validates logging configuration
func (cfg *Config) Validate() error {
	if cfg.MaxSize <= 0 {
		return fmt.Errorf("max_size must be positive")
	}
	if cfg.MaxBackups < 0 {
		return fmt.Errorf("max_backups cannot be negative")
	}
	switch cfg.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", cfg.Level)
	}
	return nil
}
