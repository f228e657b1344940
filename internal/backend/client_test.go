package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nightrate/nightrate/internal/model"
)

// newTestClient wires a client to a server that answers the health probe
// itself and hands every other request to h. calls counts non-probe requests.
func newTestClient(t *testing.T, calls *int32, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"healthy"}`))
			return
		}
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return &Client{
		Resolver:   &Resolver{Candidates: []string{srv.URL}},
		APIKey:     "test-api-key-1234",
		Property:   &model.SelectedProperty{ID: "listing-1", Name: "Seaside Loft", Location: "Santa Cruz, CA", NoOfBedrooms: 2},
		ChunkDelay: time.Millisecond,
		Timeout:    2 * time.Second,
	}
}

func TestDoClassifiesStatusCodes(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{name: "bad request", status: http.StatusBadRequest, body: `{"detail":"date is malformed"}`, want: ErrValidation},
		{name: "unprocessable", status: http.StatusUnprocessableEntity, body: `{"detail":[{"msg":"field required"}]}`, want: ErrValidation},
		{name: "not found", status: http.StatusNotFound, body: `{"detail":"conversation not found"}`, want: ErrNotFound},
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"boom"}`, want: ErrTransport},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, nil, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})
			err := c.postJSON(context.Background(), "/listings", listingsRequest{APIKey: c.APIKey}, nil)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{name: "detail string", raw: `{"detail":"api_key is required"}`, want: "api_key is required"},
		{name: "detail list", raw: `{"detail":[{"msg":"value is not a valid date"}]}`, want: "value is not a valid date"},
		{name: "message field", raw: `{"message":"nope"}`, want: "nope"},
		{name: "error field", raw: `{"error":"denied"}`, want: "denied"},
		{name: "raw text", raw: `gateway exploded`, want: "gateway exploded"},
		{name: "empty body", raw: ``, want: "502 Bad Gateway"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := errorMessage([]byte(tc.raw), "502 Bad Gateway"); got != tc.want {
				t.Fatalf("errorMessage() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRequireKeyMakesNoRequest(t *testing.T) {
	var calls int32
	c := newTestClient(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	c.APIKey = "   "

	if _, err := c.Listings(context.Background()); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if _, err := c.FetchPricing(context.Background(), DateRange{}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 0 {
		t.Fatalf("expected no backend calls, got %d", got)
	}
}

func TestRequirePropertyMakesNoRequest(t *testing.T) {
	var calls int32
	c := newTestClient(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	c.Property = nil

	if _, err := c.FetchPricing(context.Background(), DateRange{}); !errors.Is(err, ErrNoProperty) {
		t.Fatalf("expected ErrNoProperty, got %v", err)
	}
	if _, err := c.UpdatePrice(context.Background(), UpdateRequest{Date: "2026-09-01", Price: 150}); !errors.Is(err, ErrNoProperty) {
		t.Fatalf("expected ErrNoProperty, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 0 {
		t.Fatalf("expected no backend calls, got %d", got)
	}
}
