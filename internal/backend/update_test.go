package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/nightrate/nightrate/internal/model"
)

func TestUpdatePriceFillsDefaults(t *testing.T) {
	var got updatePayload
	c := newTestClient(t, nil, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/update-single-price" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(model.UpdateResult{Success: true, UpdatedDate: got.Date})
	})

	result, err := c.UpdatePrice(context.Background(), UpdateRequest{Date: "2026-09-05", Price: 210})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.PriceType != "fixed" || got.Currency != "USD" {
		t.Fatalf("defaults not applied: price_type=%q currency=%q", got.PriceType, got.Currency)
	}
	if got.ListingID != "listing-1" || got.Price != 210 {
		t.Fatalf("payload identity wrong: %+v", got)
	}
	if !result.Success || result.UpdatedDate != "2026-09-05" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestUpdatePriceRequiresDate(t *testing.T) {
	var calls int32
	c := newTestClient(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	_, err := c.UpdatePrice(context.Background(), UpdateRequest{Price: 150})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no request, got %d", calls)
	}
}

func TestUpdatePriceBackendRejection(t *testing.T) {
	c := newTestClient(t, nil, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"price must be positive"}`))
	})
	_, err := c.UpdatePrice(context.Background(), UpdateRequest{Date: "2026-09-05", Price: -1})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
