package backend

import (
	"context"
	"fmt"

	"github.com/nightrate/nightrate/internal/model"
)

// UpdateRequest is a single-date price write. Zero-value PriceType and
// Currency fall back to the backend defaults.
type UpdateRequest struct {
	Date           string
	Price          float64
	PriceType      string
	Currency       string
	UpdateChildren bool
}

type updatePayload struct {
	APIKey         string  `json:"api_key"`
	ListingID      string  `json:"listing_id"`
	PMS            string  `json:"pms"`
	Date           string  `json:"date"`
	Price          float64 `json:"price"`
	PriceType      string  `json:"price_type"`
	Currency       string  `json:"currency"`
	UpdateChildren bool    `json:"update_children"`
}

// UpdatePrice sets the price for one night. Each call is a fresh write; the
// client performs no deduplication and no automatic retry — a failed update
// is the caller's to resubmit.
func (c *Client) UpdatePrice(ctx context.Context, r UpdateRequest) (model.UpdateResult, error) {
	var result model.UpdateResult
	if err := c.requireKey(); err != nil {
		return result, err
	}
	if err := c.requireProperty(); err != nil {
		return result, err
	}
	if r.Date == "" {
		return result, fmt.Errorf("%w: update needs a date", ErrValidation)
	}
	payload := updatePayload{
		APIKey:         c.APIKey,
		ListingID:      c.Property.ID,
		PMS:            c.pms(),
		Date:           r.Date,
		Price:          r.Price,
		PriceType:      r.PriceType,
		Currency:       r.Currency,
		UpdateChildren: r.UpdateChildren,
	}
	if payload.PriceType == "" {
		payload.PriceType = "fixed"
	}
	if payload.Currency == "" {
		payload.Currency = "USD"
	}
	if err := c.postJSON(ctx, "/update-single-price", payload, &result); err != nil {
		return model.UpdateResult{}, err
	}
	return result, nil
}
