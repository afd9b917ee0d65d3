package agent

// Outcome is the terminal state of one update run. It drives the process
// exit code and the final log line.
type Outcome int

const (
	// OutcomeUpdated means the remote API confirmed the new address.
	OutcomeUpdated Outcome = iota
	// OutcomeUnchanged means the address matched the persisted value
	// and the API was not contacted.
	OutcomeUnchanged
	// OutcomeResolveFailed means no valid public IP was obtained.
	OutcomeResolveFailed
	// OutcomeTransportFailed means the update API was unreachable.
	OutcomeTransportFailed
	// OutcomeRemoteFailed means the API responded but reported failure.
	OutcomeRemoteFailed
	// OutcomeStoreFailed means the update was confirmed remotely but the
	// new address could not be persisted locally.
	OutcomeStoreFailed
)

// String returns a short name for the outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeUpdated:
		return "updated"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeResolveFailed:
		return "resolve_failed"
	case OutcomeTransportFailed:
		return "transport_failed"
	case OutcomeRemoteFailed:
		return "remote_failed"
	case OutcomeStoreFailed:
		return "store_failed"
	default:
		return "unknown"
	}
}

// Failed reports whether the outcome is a failure variant
func (o Outcome) Failed() bool {
	return o != OutcomeUpdated && o != OutcomeUnchanged
}

// ExitCode maps the outcome to the process exit code contract:
// 0 for updated or unchanged, 1 for any failure.
func (o Outcome) ExitCode() int {
	if o.Failed() {
		return 1
	}
	return 0
}
