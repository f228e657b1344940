package backend

import "errors"

// Error classes, in the order the caller's remediation changes: fix your
// settings, check the server, retry the request.
var (
	// ErrNotConfigured means the PriceLabs API key is missing. Detected
	// locally; no network call was made.
	ErrNotConfigured = errors.New("api key not configured")

	// ErrNoProperty means no listing is selected. Detected locally; no
	// network call was made.
	ErrNoProperty = errors.New("no property selected")

	// ErrUnreachable means no candidate backend answered the health probe.
	ErrUnreachable = errors.New("backend unreachable")

	// ErrValidation is a structured rejection from the backend, carrying a
	// remediation message the user can act on.
	ErrValidation = errors.New("backend rejected request")

	// ErrNotFound means the backend no longer has the addressed resource,
	// typically a conversation id persisted from an earlier session.
	ErrNotFound = errors.New("not found on backend")

	// ErrTransport covers every other non-2xx or network failure.
	ErrTransport = errors.New("backend request failed")
)

// IsConfig reports whether err is in the configuration class, where the UI
// should steer the user to settings instead of offering a retry.
func IsConfig(err error) bool {
	return errors.Is(err, ErrNotConfigured) || errors.Is(err, ErrNoProperty)
}
