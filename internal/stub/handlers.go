package stub

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/nightrate/nightrate/internal/model"
)

// Handler builds the stub's router with the same paths the production
// backend serves.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)

	r.Get("/", s.handleHealth)
	r.Post("/fetch-pricing-data", s.handleFetchPricing)
	r.Post("/analyze-pricing", s.handleAnalyze)
	r.Post("/update-single-price", s.handleUpdatePrice)
	r.Post("/chat", s.handleChat)
	r.Post("/get-conversation", s.handleGetConversation)
	r.Get("/conversations", s.handleListConversations)
	r.Delete("/conversation/{conversationID}", s.handleDeleteConversation)
	r.Post("/listings", s.handleListings)

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

type pricingRequest struct {
	APIKey    string `json:"api_key"`
	ListingID string `json:"listing_id"`
	PMS       string `json:"pms"`
	DateFrom  string `json:"date_from"`
	DateTo    string `json:"date_to"`
}

func (s *Server) handleFetchPricing(w http.ResponseWriter, r *http.Request) {
	var req pricingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.APIKey) == "" {
		writeDetail(w, http.StatusBadRequest, "api_key is required")
		return
	}
	if req.ListingID == "" {
		writeDetail(w, http.StatusBadRequest, "listing_id is required")
		return
	}
	writeJSON(w, http.StatusOK, s.nights(req.DateFrom, req.DateTo, 14))
}

type analyzeRequest struct {
	Nights []model.NightData `json:"nights"`
	Model  string            `json:"model"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Nights) > 5 {
		writeDetail(w, http.StatusBadRequest, "analyze accepts at most 5 nights per request")
		return
	}
	writeJSON(w, http.StatusOK, s.analyze(req.Nights))
}

type updateRequest struct {
	APIKey    string   `json:"api_key"`
	ListingID string   `json:"listing_id"`
	Date      string   `json:"date"`
	Price     *float64 `json:"price"`
}

func (s *Server) handleUpdatePrice(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	switch {
	case strings.TrimSpace(req.APIKey) == "":
		writeDetail(w, http.StatusBadRequest, "api_key is required")
	case req.ListingID == "":
		writeDetail(w, http.StatusBadRequest, "listing_id is required")
	case req.Date == "":
		writeDetail(w, http.StatusBadRequest, "date is required")
	case req.Price == nil || *req.Price <= 0:
		writeDetail(w, http.StatusBadRequest, "price must be positive")
	default:
		writeJSON(w, http.StatusOK, model.UpdateResult{
			Success:     true,
			Message:     "Price updated",
			UpdatedDate: req.Date,
		})
	}
}

type chatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeDetail(w, http.StatusBadRequest, "message is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[req.ConversationID]
	if !ok {
		if req.ConversationID != "" {
			writeDetail(w, http.StatusNotFound, "conversation not found")
			return
		}
		conv = &conversation{ID: uuid.NewString(), CreatedAt: time.Now().UTC()}
		s.conversations[conv.ID] = conv
	}
	now := time.Now().UTC().Format(time.RFC3339)
	reply := "Looking at your calendar, keeping weekend rates near market average is the safest move."
	conv.Messages = append(conv.Messages,
		model.ChatMessage{Role: "user", Content: req.Message, Timestamp: now},
		model.ChatMessage{Role: "assistant", Content: reply, Timestamp: now},
	)
	writeJSON(w, http.StatusOK, model.ChatReply{Response: reply, ConversationID: conv.ID})
}

type getConversationRequest struct {
	ConversationID string `json:"conversation_id"`
}

func (s *Server) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	var req getConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[req.ConversationID]
	if !ok {
		writeDetail(w, http.StatusNotFound, "conversation not found")
		return
	}
	writeJSON(w, http.StatusOK, model.ConversationHistory{
		ConversationID: conv.ID,
		Messages:       conv.Messages,
	})
}

func (s *Server) handleListConversations(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	infos := []model.ConversationInfo{}
	for _, conv := range s.conversations {
		info := model.ConversationInfo{
			ConversationID: conv.ID,
			CreatedAt:      conv.CreatedAt.Format(time.RFC3339),
			MessageCount:   len(conv.Messages),
		}
		if n := len(conv.Messages); n > 0 {
			info.LastMessageAt = conv.Messages[n-1].Timestamp
		}
		infos = append(infos, info)
	}
	writeJSON(w, http.StatusOK, infos)
}

func (s *Server) handleDeleteConversation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "conversationID")
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.conversations[id]; !ok {
		writeDetail(w, http.StatusNotFound, "conversation not found")
		return
	}
	delete(s.conversations, id)
	w.WriteHeader(http.StatusNoContent)
}

type listingsRequest struct {
	APIKey string `json:"api_key"`
}

func (s *Server) handleListings(w http.ResponseWriter, r *http.Request) {
	var req listingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.APIKey) == "" {
		writeDetail(w, http.StatusBadRequest, "api_key is required")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]model.ListingData{"listings": s.listings()})
}
