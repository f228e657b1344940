package backend

import (
	"context"

	"github.com/nightrate/nightrate/internal/model"
)

// DateRange bounds a pricing fetch. The zero value means the backend's
// default horizon.
type DateRange struct {
	From string
	To   string
}

type pricingRequest struct {
	APIKey           string                   `json:"api_key"`
	ListingID        string                   `json:"listing_id"`
	PMS              string                   `json:"pms"`
	DateFrom         string                   `json:"date_from,omitempty"`
	DateTo           string                   `json:"date_to,omitempty"`
	SelectedProperty *selectedPropertyPayload `json:"selected_property,omitempty"`
}

// FetchPricing returns the nights the backend knows about for the selected
// listing. An empty slice is a valid answer; it is never conflated with a
// transport failure.
func (c *Client) FetchPricing(ctx context.Context, r DateRange) ([]model.NightData, error) {
	if err := c.requireKey(); err != nil {
		return nil, err
	}
	if err := c.requireProperty(); err != nil {
		return nil, err
	}
	req := pricingRequest{
		APIKey:           c.APIKey,
		ListingID:        c.Property.ID,
		PMS:              c.pms(),
		DateFrom:         r.From,
		DateTo:           r.To,
		SelectedProperty: c.propertyPayload(),
	}
	nights := []model.NightData{}
	if err := c.postJSON(ctx, "/fetch-pricing-data", req, &nights); err != nil {
		return nil, err
	}
	return nights, nil
}
