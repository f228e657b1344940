package backend

import (
	"context"

	"github.com/nightrate/nightrate/internal/model"
)

type listingsRequest struct {
	APIKey string `json:"api_key"`
}

type listingsResponse struct {
	Listings []model.ListingData `json:"listings"`
}

// Listings returns every listing under the account, hidden ones included.
// Only the API key is required — this call is how a property gets selected
// in the first place.
func (c *Client) Listings(ctx context.Context) ([]model.ListingData, error) {
	if err := c.requireKey(); err != nil {
		return nil, err
	}
	var resp listingsResponse
	if err := c.postJSON(ctx, "/listings", listingsRequest{APIKey: c.APIKey}, &resp); err != nil {
		return nil, err
	}
	if resp.Listings == nil {
		resp.Listings = []model.ListingData{}
	}
	return resp.Listings, nil
}

// Selectable filters out hidden listings; raw payloads may still carry them.
func Selectable(listings []model.ListingData) []model.ListingData {
	out := make([]model.ListingData, 0, len(listings))
	for _, l := range listings {
		if l.IsHidden {
			continue
		}
		out = append(out, l)
	}
	return out
}
