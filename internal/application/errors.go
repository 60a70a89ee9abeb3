package application

import "errors"

// Sentinel errors surfaced by the application services. The HTTP adapter
// maps them onto status codes and user-safe messages.
var (
	// ErrAuthRequired means no authenticated caller was presented.
	ErrAuthRequired = errors.New("authentication required")

	// ErrValidation means the request was rejected before any side effect
	// (empty query, empty credential, unknown search mode).
	ErrValidation = errors.New("invalid request")

	// ErrCredentialCorrupt means the stored credential failed authentication
	// on decrypt. The stored bytes are suspect; re-entering the credential is
	// the only recovery.
	ErrCredentialCorrupt = errors.New("stored api credential is corrupt")

	// ErrProviderUnavailable means the external answer provider timed out or
	// failed. Transient; the caller may resubmit, the service never retries.
	ErrProviderUnavailable = errors.New("answer provider unavailable")
)
