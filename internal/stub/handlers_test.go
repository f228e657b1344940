package stub

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nightrate/nightrate/internal/model"
)

func newStub(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	s := NewServer()
	s.Today = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return s, srv
}

func post(t *testing.T, srv *httptest.Server, path string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(srv.URL+path, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	_, srv := newStub(t)
	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()

	var health map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if health["status"] != "healthy" {
		t.Fatalf("status = %q", health["status"])
	}
}

func TestFetchPricingHonorsRange(t *testing.T) {
	_, srv := newStub(t)
	resp := post(t, srv, "/fetch-pricing-data", map[string]string{
		"api_key":    "stub-key-1234567890",
		"listing_id": "listing-1",
		"date_from":  "2026-09-01",
		"date_to":    "2026-09-03",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var nights []model.NightData
	if err := json.NewDecoder(resp.Body).Decode(&nights); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(nights) != 3 {
		t.Fatalf("expected 3 nights, got %d", len(nights))
	}
	if nights[0].Date != "2026-09-01" || nights[2].Date != "2026-09-03" {
		t.Fatalf("range wrong: %s..%s", nights[0].Date, nights[2].Date)
	}
}

func TestFetchPricingRequiresKey(t *testing.T) {
	_, srv := newStub(t)
	resp := post(t, srv, "/fetch-pricing-data", map[string]string{"listing_id": "listing-1"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestAnalyzeEnforcesChunkLimit(t *testing.T) {
	s, srv := newStub(t)
	nights := s.nights("2026-09-01", "", 6)
	resp := post(t, srv, "/analyze-pricing", map[string]any{"nights": nights})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("oversized chunk should be rejected, status = %d", resp.StatusCode)
	}

	resp = post(t, srv, "/analyze-pricing", map[string]any{"nights": nights[:5]})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var results []model.AIResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("expected a result per night, got %d", len(results))
	}
}

func TestChatConversationLifecycle(t *testing.T) {
	_, srv := newStub(t)

	// New conversation mints an id.
	resp := post(t, srv, "/chat", map[string]string{"message": "hello"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("chat status = %d", resp.StatusCode)
	}
	var reply model.ChatReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if reply.ConversationID == "" {
		t.Fatalf("expected minted conversation id")
	}

	// Resuming appends; history shows both rounds.
	resp = post(t, srv, "/chat", map[string]string{"message": "second", "conversation_id": reply.ConversationID})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("resume status = %d", resp.StatusCode)
	}
	resp = post(t, srv, "/get-conversation", map[string]string{"conversation_id": reply.ConversationID})
	var history model.ConversationHistory
	if err := json.NewDecoder(resp.Body).Decode(&history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(history.Messages) != 4 {
		t.Fatalf("expected 4 messages after two rounds, got %d", len(history.Messages))
	}

	// Unknown id is a 404, not a silent new conversation.
	resp = post(t, srv, "/chat", map[string]string{"message": "x", "conversation_id": "missing"})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown conversation should 404, got %d", resp.StatusCode)
	}

	// Delete, then the id is gone.
	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/conversation/"+reply.ConversationID, nil)
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	delResp.Body.Close()
	if delResp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d", delResp.StatusCode)
	}
	resp = post(t, srv, "/get-conversation", map[string]string{"conversation_id": reply.ConversationID})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("deleted conversation should 404, got %d", resp.StatusCode)
	}
}

func TestListingsFixtureIncludesHidden(t *testing.T) {
	_, srv := newStub(t)
	resp := post(t, srv, "/listings", map[string]string{"api_key": "stub-key-1234567890"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var payload struct {
		Listings []model.ListingData `json:"listings"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Listings) != 3 {
		t.Fatalf("expected 3 listings, got %d", len(payload.Listings))
	}
	hidden := 0
	for _, l := range payload.Listings {
		if l.IsHidden {
			hidden++
		}
	}
	if hidden != 1 {
		t.Fatalf("expected exactly one hidden listing, got %d", hidden)
	}
}

func TestUpdatePriceValidation(t *testing.T) {
	_, srv := newStub(t)
	resp := post(t, srv, "/update-single-price", map[string]any{
		"api_key": "stub-key-1234567890", "listing_id": "listing-1", "date": "2026-09-05",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing price should 400, got %d", resp.StatusCode)
	}

	resp = post(t, srv, "/update-single-price", map[string]any{
		"api_key": "stub-key-1234567890", "listing_id": "listing-1", "date": "2026-09-05", "price": 240,
	})
	var result model.UpdateResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !result.Success || result.UpdatedDate != "2026-09-05" {
		t.Fatalf("unexpected result: %+v", result)
	}
}
