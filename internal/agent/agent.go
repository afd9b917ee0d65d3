package agent

import (
	"context"

	"volaryddns/internal/state"
	"volaryddns/internal/updater"

	"go.uber.org/zap"
)

// Resolver discovers the host's current public IPv4 address.
type Resolver interface {
	Resolve(ctx context.Context) (string, error)
}

// Updater submits an address update to the remote API.
type Updater interface {
	Submit(ctx context.Context, ip string) updater.Result
}

// Agent runs one update cycle: resolve the public address, skip if it
// matches the persisted value, otherwise submit it and persist on
// confirmed success.
type Agent struct {
	logger   *zap.Logger
	resolver Resolver
	store    state.Store
	updater  Updater
}

// New creates a new agent
func New(logger *zap.Logger, resolver Resolver, store state.Store, up Updater) *Agent {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Agent{
		logger:   logger,
		resolver: resolver,
		store:    store,
		updater:  up,
	}
}

// Run executes one update cycle and returns the terminal outcome plus a
// human-readable failure reason (empty on success). The persisted state
// is only ever written after the remote API confirmed the update.
func (a *Agent) Run(ctx context.Context) (Outcome, string) {
	ip, err := a.resolver.Resolve(ctx)
	if err != nil {
		return OutcomeResolveFailed, err.Error()
	}

	if last, ok := a.store.Last(); ok && last == ip {
		a.logger.Info("IP address unchanged, skipping update",
			zap.String("ip", ip))
		return OutcomeUnchanged, ""
	}

	result := a.updater.Submit(ctx, ip)
	switch result.Status {
	case updater.StatusTransportError:
		return OutcomeTransportFailed, result.Reason
	case updater.StatusRemoteError:
		return OutcomeRemoteFailed, result.Reason
	}

	a.logger.Info("DNS record updated successfully", zap.String("ip", ip))

	// The remote update is confirmed at this point; a persistence failure
	// is still a hard failure so the scheduler sees it, and the next run
	// re-submits the same address, which the API treats as a no-op.
	if err := a.store.Save(ip); err != nil {
		return OutcomeStoreFailed, err.Error()
	}

	return OutcomeUpdated, ""
}
