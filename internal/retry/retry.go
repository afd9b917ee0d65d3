package retry

import (
	"context"
	"fmt"
	"time"
)

// Func defines the function signature for a retryable operation.
type Func func(ctx context.Context) error

// LoggerFunc defines a logging function signature.
type LoggerFunc func(format string, args ...interface{})

// Execute performs an operation with a bounded fixed-interval retry.
// The wait between attempts is interruptible by context cancellation.
func Execute(ctx context.Context, cfg *Config, op Func) error {
	if cfg == nil {
		return op(ctx)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid retry configuration: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.Attempts; attempt++ {
		if err := op(ctx); err == nil {
			return nil
		} else {
			lastErr = err
			if cfg.Logger != nil {
				cfg.Logger("attempt %d/%d failed: %v", attempt, cfg.Attempts, err)
			}
		}

		if attempt == cfg.Attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(cfg.Interval):
		}
	}

	return fmt.Errorf("exhausted %d attempts: %w", cfg.Attempts, lastErr)
}
