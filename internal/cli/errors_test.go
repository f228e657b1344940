package cli

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/nightrate/nightrate/internal/backend"
)

func TestExitCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitSuccess},
		{name: "generic", err: errors.New("boom"), want: ExitGenericFailure},
		{name: "usage", err: newExitError(ExitInvalidUsage, "bad args"), want: ExitInvalidUsage},
		{name: "backend", err: wrapExitError(ExitBackendFailure, errors.New("http")), want: ExitBackendFailure},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExitCode(tc.err); got != tc.want {
				t.Fatalf("ExitCode() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestWrapBackendErrorTaxonomy(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{name: "missing key", err: fmt.Errorf("wrapped: %w", backend.ErrNotConfigured), want: ExitConfigRequired},
		{name: "no property", err: backend.ErrNoProperty, want: ExitConfigRequired},
		{name: "unreachable", err: backend.ErrUnreachable, want: ExitUnreachable},
		{name: "validation", err: backend.ErrValidation, want: ExitBackendFailure},
		{name: "transport", err: backend.ErrTransport, want: ExitBackendFailure},
		{name: "not found", err: backend.ErrNotFound, want: ExitBackendFailure},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExitCode(wrapBackendError(tc.err)); got != tc.want {
				t.Fatalf("exit code = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestWrapBackendErrorKeepsSentinel(t *testing.T) {
	err := wrapBackendError(fmt.Errorf("context: %w", backend.ErrUnreachable))
	if !errors.Is(err, backend.ErrUnreachable) {
		t.Fatalf("sentinel lost through wrapping: %v", err)
	}
}

func TestErrorHints(t *testing.T) {
	hints := ErrorHints(backend.ErrNotConfigured)
	if len(hints) == 0 || !strings.Contains(hints[0], "auth login") {
		t.Fatalf("expected auth login hint, got %v", hints)
	}
	hints = ErrorHints(backend.ErrNoProperty)
	if len(hints) < 2 || !strings.Contains(hints[0], "listings") {
		t.Fatalf("expected listings hint, got %v", hints)
	}
	hints = ErrorHints(backend.ErrUnreachable)
	if len(hints) == 0 || !strings.Contains(hints[0], "doctor") {
		t.Fatalf("expected doctor hint, got %v", hints)
	}
	hints = ErrorHints(newExitError(ExitInvalidUsage, "unknown command %q", "prcing"))
	if len(hints) == 0 || !strings.Contains(hints[len(hints)-1], "--help") {
		t.Fatalf("expected help hint, got %v", hints)
	}
	if hints := ErrorHints(nil); hints != nil {
		t.Fatalf("nil error should yield no hints, got %v", hints)
	}
}
