package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func healthyServer(t *testing.T, probes *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if probes != nil {
			atomic.AddInt32(probes, 1)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestResolverSkipsUnhealthyCandidates(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer down.Close()
	notHealthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"starting"}`))
	}))
	defer notHealthy.Close()
	up := healthyServer(t, nil)

	r := &Resolver{Candidates: []string{down.URL, notHealthy.URL, up.URL}}
	base, err := r.Resolve(context.Background())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if base != up.URL {
		t.Fatalf("resolved %q, want %q", base, up.URL)
	}
}

func TestResolverCachesAcrossCalls(t *testing.T) {
	var probes int32
	up := healthyServer(t, &probes)

	r := &Resolver{Candidates: []string{up.URL}}
	for i := 0; i < 3; i++ {
		if _, err := r.Resolve(context.Background()); err != nil {
			t.Fatalf("resolve %d: %v", i, err)
		}
	}
	if got := atomic.LoadInt32(&probes); got != 1 {
		t.Fatalf("expected 1 probe, got %d", got)
	}
}

func TestResolverInvalidateForcesReprobe(t *testing.T) {
	var probes int32
	up := healthyServer(t, &probes)

	r := &Resolver{Candidates: []string{up.URL}}
	if _, err := r.Resolve(context.Background()); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	r.Invalidate()
	if _, err := r.Resolve(context.Background()); err != nil {
		t.Fatalf("resolve after invalidate: %v", err)
	}
	if got := atomic.LoadInt32(&probes); got != 2 {
		t.Fatalf("expected 2 probes, got %d", got)
	}
}

func TestResolverAllCandidatesDown(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer down.Close()

	r := &Resolver{Candidates: []string{down.URL, "http://127.0.0.1:1"}}
	_, err := r.Resolve(context.Background())
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
}

func TestResolverTrimsTrailingSlash(t *testing.T) {
	up := healthyServer(t, nil)
	r := &Resolver{Candidates: []string{up.URL + "/"}}
	base, err := r.Resolve(context.Background())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if base != up.URL {
		t.Fatalf("resolved %q, want %q", base, up.URL)
	}
}
