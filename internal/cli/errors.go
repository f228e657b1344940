package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nightrate/nightrate/internal/backend"
)

// Exit codes map the error taxonomy to remediations: 3 means fix your
// settings, 4 means the server is not answering, 5 means the request itself
// failed and is worth retrying.
const (
	ExitSuccess        = 0
	ExitGenericFailure = 1
	ExitInvalidUsage   = 2
	ExitConfigRequired = 3
	ExitUnreachable    = 4
	ExitBackendFailure = 5
)

type ExitError struct {
	Code int
	Err  error
}

func (e ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e ExitError) Unwrap() error {
	return e.Err
}

func newExitError(code int, format string, args ...any) error {
	return ExitError{Code: code, Err: fmt.Errorf(format, args...)}
}

func wrapExitError(code int, err error) error {
	if err == nil {
		return nil
	}
	var ex ExitError
	if errors.As(err, &ex) {
		return err
	}
	return ExitError{Code: code, Err: err}
}

func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ex ExitError
	if errors.As(err, &ex) {
		if ex.Code <= 0 {
			return ExitGenericFailure
		}
		return ex.Code
	}
	return ExitGenericFailure
}

// wrapBackendError classifies a client error into an exit code.
func wrapBackendError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case backend.IsConfig(err):
		return wrapExitError(ExitConfigRequired, err)
	case errors.Is(err, backend.ErrUnreachable):
		return wrapExitError(ExitUnreachable, err)
	default:
		return wrapExitError(ExitBackendFailure, err)
	}
}

// ErrorHints suggests the next command for an error, printed by main as
// "next: ..." lines.
func ErrorHints(err error) []string {
	if err == nil {
		return nil
	}
	hints := []string{}
	switch {
	case errors.Is(err, backend.ErrNotConfigured):
		hints = append(hints, "nightrate auth login --api-key <your PriceLabs key>")
	case errors.Is(err, backend.ErrNoProperty):
		hints = append(hints, "nightrate listings", "nightrate property select --id <listing-id>")
	case errors.Is(err, backend.ErrUnreachable):
		hints = append(hints, "nightrate doctor")
	}
	msg := err.Error()
	if strings.Contains(msg, "unknown command") || ExitCode(err) == ExitInvalidUsage {
		hints = append(hints, "nightrate --help")
	}
	return hints
}
