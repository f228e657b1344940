package model

import (
	"fmt"
	"time"
)

// NightData is one calendar night of pricing data for the selected listing.
// Everything except the date is optional on the wire; the backend enriches
// nights with whatever PriceLabs data it has.
type NightData struct {
	Date               string   `json:"date"`
	YourPrice          *float64 `json:"your_price,omitempty"`
	MarketAvgPrice     *float64 `json:"market_avg_price,omitempty"`
	Occupancy          *float64 `json:"occupancy,omitempty"`
	Event              string   `json:"event,omitempty"`
	DayOfWeek          string   `json:"day_of_week,omitempty"`
	LeadTime           *int     `json:"lead_time,omitempty"`
	ADRLastYear        *float64 `json:"adr_last_year,omitempty"`
	NeighborhoodDemand string   `json:"neighborhood_demand,omitempty"`
	MinPriceLimit      *float64 `json:"min_price_limit,omitempty"`
	AvgLOSLastYear     *float64 `json:"avg_los_last_year,omitempty"`
	SeasonalProfile    string   `json:"seasonal_profile,omitempty"`
}

// AIResult is one AI price recommendation, correlated to a NightData row by
// exact date-string match.
type AIResult struct {
	Date           string   `json:"date"`
	SuggestedPrice *float64 `json:"suggested_price,omitempty"`
	Confidence     *float64 `json:"confidence,omitempty"`
	Explanation    string   `json:"explanation,omitempty"`
	InsightTag     string   `json:"insight_tag,omitempty"`
}

// Suggestion is a night joined with its AI recommendation. When no AIResult
// matched the night, SuggestedPrice falls back to the night's own price and
// FromAI is false.
type Suggestion struct {
	Date           string  `json:"date"`
	DayOfWeek      string  `json:"day_of_week,omitempty"`
	CurrentPrice   float64 `json:"current_price"`
	MarketAvgPrice float64 `json:"market_avg_price"`
	SuggestedPrice float64 `json:"suggested_price"`
	Confidence     float64 `json:"confidence"`
	Explanation    string  `json:"explanation"`
	InsightTag     string  `json:"insight_tag,omitempty"`
	FromAI         bool    `json:"from_ai"`
}

// ListingData is one property under the user's PriceLabs account. Hidden
// listings still appear in raw payloads and are filtered before selection.
type ListingData struct {
	ID           string   `json:"id"`
	PMS          string   `json:"pms"`
	Name         string   `json:"name"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Country      string   `json:"country,omitempty"`
	CityName     string   `json:"city_name,omitempty"`
	State        string   `json:"state,omitempty"`
	NoOfBedrooms int      `json:"no_of_bedrooms"`
	Min          *float64 `json:"min,omitempty"`
	Base         *float64 `json:"base,omitempty"`
	Max          *float64 `json:"max,omitempty"`
	Occupancy    *float64 `json:"occupancy,omitempty"`
	Revenue      *float64 `json:"revenue,omitempty"`
	IsHidden     bool     `json:"isHidden"`
}

// Location renders the "city, state" string the backend expects in
// selected_property payloads.
func (l ListingData) Location() string {
	if l.CityName == "" {
		return l.State
	}
	if l.State == "" {
		return l.CityName
	}
	return fmt.Sprintf("%s, %s", l.CityName, l.State)
}

// SelectedProperty is the locally chosen active listing. It drives the
// listing_id on every pricing and update request.
type SelectedProperty struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Location     string    `json:"location"`
	NoOfBedrooms int       `json:"no_of_bedrooms"`
	SelectedAt   time.Time `json:"selectedAt"`
}

// Select builds the persisted selection record from a raw listing.
func Select(l ListingData, now time.Time) SelectedProperty {
	return SelectedProperty{
		ID:           l.ID,
		Name:         l.Name,
		Location:     l.Location(),
		NoOfBedrooms: l.NoOfBedrooms,
		SelectedAt:   now.UTC(),
	}
}

// PropertyContext holds the onboarding answers that personalize AI prompts.
// It is stored locally and sent verbatim to the backend.
type PropertyContext struct {
	MainGuest             string            `json:"mainGuest"`
	SpecialFeature        []string          `json:"specialFeature"`
	PricingGoal           []string          `json:"pricingGoal"`
	SpecialFeatureDetails map[string]string `json:"specialFeatureDetails,omitempty"`
	CreatedAt             time.Time         `json:"createdAt"`
}

// Configured reports whether the context has enough substance to be worth
// attaching to requests.
func (c PropertyContext) Configured() bool {
	return c.MainGuest != "" || len(c.SpecialFeature) > 0 || len(c.PricingGoal) > 0
}

// PriceLabsConfig is the credential half of the local configuration.
type PriceLabsConfig struct {
	APIKey string `json:"apiKey"`
	PMS    string `json:"pms,omitempty"`
}

// OpenAIConfig is carried for compatibility with the stored record; the
// client itself never reads it.
type OpenAIConfig struct {
	APIKey string `json:"apiKey,omitempty"`
}

// APIConfig is the locally persisted credential bundle.
type APIConfig struct {
	PriceLabs PriceLabsConfig `json:"priceLabs"`
	OpenAI    *OpenAIConfig   `json:"openAI,omitempty"`
}

// ChatMessage is one turn of a backend-persisted conversation.
type ChatMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

// ConversationInfo is the metadata row returned by the conversations listing.
type ConversationInfo struct {
	ConversationID string `json:"conversation_id"`
	CreatedAt      string `json:"created_at,omitempty"`
	LastMessageAt  string `json:"last_message_at,omitempty"`
	MessageCount   int    `json:"message_count"`
}

// ConversationHistory is a full transcript for one conversation id.
type ConversationHistory struct {
	ConversationID  string           `json:"conversation_id"`
	Messages        []ChatMessage    `json:"messages"`
	PropertyContext *PropertyContext `json:"property_context,omitempty"`
}

// ChatReply is the response to one chat round trip.
type ChatReply struct {
	Response       string `json:"response"`
	ConversationID string `json:"conversation_id"`
}

// UpdateResult is the backend's answer to a single-date price update.
type UpdateResult struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	UpdatedDate  string `json:"updated_date,omitempty"`
	ErrorDetails string `json:"error_details,omitempty"`
}
