// Package stub is an in-process emulation of the pricing-assistant backend.
// It serves the same nine endpoints with deterministic fixtures and
// in-memory conversation state, so the CLI can be developed and integration
// tested without the real service.
package stub

import (
	"sync"
	"time"

	"github.com/nightrate/nightrate/internal/model"
)

type conversation struct {
	ID        string
	CreatedAt time.Time
	Messages  []model.ChatMessage
}

// Server holds the stub's mutable state.
type Server struct {
	mu            sync.Mutex
	conversations map[string]*conversation

	// Today anchors the generated pricing horizon; tests pin it.
	Today time.Time
}

func NewServer() *Server {
	return &Server{conversations: map[string]*conversation{}}
}

func (s *Server) today() time.Time {
	if !s.Today.IsZero() {
		return s.Today
	}
	return time.Now()
}

func f64(v float64) *float64 { return &v }

// nights generates a deterministic horizon of priced nights starting at the
// stub's anchor date.
func (s *Server) nights(from, to string, count int) []model.NightData {
	start := s.today()
	if from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			start = t
		}
	}
	if from != "" && to != "" {
		if end, err := time.Parse("2006-01-02", to); err == nil {
			span := int(end.Sub(start).Hours()/24) + 1
			if span > 0 {
				count = span
			}
		}
	}
	out := make([]model.NightData, 0, count)
	for i := 0; i < count; i++ {
		day := start.AddDate(0, 0, i)
		base := 180.0 + float64(i%7)*15
		market := base * 1.08
		lead := i
		n := model.NightData{
			Date:           day.Format("2006-01-02"),
			YourPrice:      f64(base),
			MarketAvgPrice: f64(market),
			Occupancy:      f64(0.55 + float64(i%5)*0.08),
			DayOfWeek:      day.Weekday().String(),
			LeadTime:       &lead,
		}
		if day.Weekday() == time.Saturday {
			n.Event = "Weekend demand"
		}
		out = append(out, n)
	}
	return out
}

// listings is the fixed account fixture: two visible listings and one hidden.
func (s *Server) listings() []model.ListingData {
	return []model.ListingData{
		{
			ID: "listing-1", PMS: "airbnb", Name: "Seaside Loft",
			CityName: "Santa Cruz", State: "CA", Country: "US",
			NoOfBedrooms: 2, Min: f64(120), Base: f64(185), Max: f64(420),
			Occupancy: f64(0.72), Revenue: f64(4180),
		},
		{
			ID: "listing-2", PMS: "airbnb", Name: "Old Town Studio",
			CityName: "Sacramento", State: "CA", Country: "US",
			NoOfBedrooms: 1, Min: f64(80), Base: f64(110), Max: f64(240),
			Occupancy: f64(0.61), Revenue: f64(1930),
		},
		{
			ID: "listing-3", PMS: "vrbo", Name: "Archived Cabin",
			CityName: "Tahoe City", State: "CA", Country: "US",
			NoOfBedrooms: 3, IsHidden: true,
		},
	}
}

// analyze produces one suggestion per night: nudge toward market with a
// weekend premium, confidence decaying with lead time.
func (s *Server) analyze(nights []model.NightData) []model.AIResult {
	out := make([]model.AIResult, 0, len(nights))
	for i, n := range nights {
		price := 200.0
		if n.YourPrice != nil {
			price = *n.YourPrice * 1.06
		}
		if n.MarketAvgPrice != nil && *n.MarketAvgPrice > price {
			price = *n.MarketAvgPrice
		}
		tag := "Hold steady"
		if n.YourPrice != nil && price > *n.YourPrice*1.04 {
			tag = "Raise price"
		}
		confidence := 88.0 - float64(i)*1.5
		if confidence < 50 {
			confidence = 50
		}
		out = append(out, model.AIResult{
			Date:           n.Date,
			SuggestedPrice: f64(float64(int(price))),
			Confidence:     f64(confidence),
			Explanation:    "Market average is trending above your rate for this night.",
			InsightTag:     tag,
		})
	}
	return out
}
