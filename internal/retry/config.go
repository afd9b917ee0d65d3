package retry

import (
	"errors"
	"time"
)

// Config defines the configuration for the retry mechanism.
type Config struct {
	Attempts int           // Total number of attempts, including the first
	Interval time.Duration // Fixed wait between attempts
	Logger   LoggerFunc    // Optional per-failure logging hook
}

// Validate validates the retry configuration.
func (cfg *Config) Validate() error {
	if cfg.Attempts <= 0 {
		return errors.New("attempts must be greater than zero")
	}
	if cfg.Interval < 0 {
		return errors.New("interval cannot be negative")
	}
	return nil
}
