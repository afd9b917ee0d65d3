package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"volaryddns/internal/config"
	"volaryddns/internal/retry"
	"volaryddns/internal/utils"
	"volaryddns/internal/version"

	"go.uber.org/zap"
)

// ErrNoValidIP indicates that no valid public IPv4 address could be
// obtained after exhausting all attempts.
var ErrNoValidIP = errors.New("no valid public IP obtained")

// Resolver discovers the host's public IPv4 address from an external
// echo service that returns the caller's address as its response body.
type Resolver struct {
	config *config.ResolverConfig
	logger *zap.Logger
	client *http.Client
}

// New creates a new resolver
func New(cfg *config.ResolverConfig, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}

	client := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:       10,
			DisableCompression: true,
		},
	}

	return &Resolver{
		config: cfg,
		logger: logger,
		client: client,
	}
}

// Resolve returns the current public IPv4 address. Transport failures and
// invalid response bodies count as failed attempts; attempts are bounded
// and separated by a fixed interval. On exhaustion no partial value is
// returned.
func (r *Resolver) Resolve(ctx context.Context) (string, error) {
	retryCfg := &retry.Config{
		Attempts: r.config.Attempts,
		Interval: r.config.RetryInterval,
		Logger: func(format string, args ...interface{}) {
			r.logger.Warn(fmt.Sprintf("Public IP lookup "+format, args...))
		},
	}

	var ip string
	err := retry.Execute(ctx, retryCfg, func(ctx context.Context) error {
		got, err := r.query(ctx)
		if err != nil {
			return err
		}
		ip = got
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w after %d attempts: %v", ErrNoValidIP, r.config.Attempts, err)
	}

	r.logger.Info("Successfully retrieved public IP address", zap.String("ip", ip))
	return ip, nil
}

// query performs a single provider request
func (r *Resolver) query(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.config.Provider, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("Accept", "text/plain")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	// An IPv4 literal is at most 15 bytes; anything longer is garbage.
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	ip := strings.TrimSpace(string(body))
	if !utils.IsValidIPv4(ip) {
		return "", fmt.Errorf("invalid IPv4 address in response: %q", ip)
	}

	return ip, nil
}
