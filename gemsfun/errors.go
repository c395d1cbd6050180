package gemsfun

import "errors"

var (
	// ErrAccountNotFound reports a missing on-chain account, e.g. quoting
	// a mint no curve was ever created for. Not retryable.
	ErrAccountNotFound = errors.New("gemsfun: account not found")

	// ErrUpstreamUnavailable wraps transport failures from the RPC node.
	// Retryable by the caller with backoff; the client does not retry
	// beyond its own configured attempts.
	ErrUpstreamUnavailable = errors.New("gemsfun: upstream unavailable")

	// ErrMissingSigner reports a trade submitted without the user's key.
	// Programmer error.
	ErrMissingSigner = errors.New("gemsfun: missing signer")

	// ErrSimulationFailed reports that the program rejected the trade
	// during preflight simulation, before any funds moved.
	ErrSimulationFailed = errors.New("gemsfun: simulation failed")
)
