package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/nightrate/nightrate/internal/model"
)

// chunkSize is a hard backend constraint on a single analyze request.
const chunkSize = 5

// Analysis is the outcome of a batched analyze call. Results concatenates
// the successful chunks in input order; failed chunks are dropped from
// Results but counted and kept in ChunkErrors so callers can tell a partial
// answer from a complete one.
type Analysis struct {
	Results      []model.AIResult
	Chunks       int
	FailedChunks int
	ChunkErrors  []error
}

// Partial reports whether any chunk failed.
func (a Analysis) Partial() bool {
	return a.FailedChunks > 0
}

type analyzeRequest struct {
	Nights           []model.NightData        `json:"nights"`
	Model            string                   `json:"model"`
	SelectedProperty *selectedPropertyPayload `json:"selected_property,omitempty"`
}

// Analyze runs the AI analysis over nights, chunked at most chunkSize per
// request. Chunks go out strictly one at a time with a pause before every
// chunk after the first; that pacing bounds the call rate to the upstream AI
// provider and is a correctness requirement, not an optimization. A chunk
// failure does not abort the remaining chunks.
func (c *Client) Analyze(ctx context.Context, nights []model.NightData) (Analysis, error) {
	analysis := Analysis{Results: []model.AIResult{}}
	if len(nights) == 0 {
		return analysis, nil
	}
	delay := c.ChunkDelay
	if delay <= 0 {
		delay = time.Second
	}
	modelName := c.Model
	if modelName == "" {
		modelName = "gpt-4"
	}
	for start := 0; start < len(nights); start += chunkSize {
		if start > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return analysis, ctx.Err()
			}
		}
		end := start + chunkSize
		if end > len(nights) {
			end = len(nights)
		}
		analysis.Chunks++
		req := analyzeRequest{
			Nights:           nights[start:end],
			Model:            modelName,
			SelectedProperty: c.propertyPayload(),
		}
		results := []model.AIResult{}
		if err := c.postJSON(ctx, "/analyze-pricing", req, &results); err != nil {
			analysis.FailedChunks++
			analysis.ChunkErrors = append(analysis.ChunkErrors,
				fmt.Errorf("chunk %d (%s..%s): %w", analysis.Chunks, nights[start].Date, nights[end-1].Date, err))
			continue
		}
		analysis.Results = append(analysis.Results, results...)
	}
	return analysis, nil
}

// fallbackExplanation fills suggestion rows for nights the AI skipped.
const fallbackExplanation = "No AI analysis available for this night yet."

// MergeSuggestions joins nights with AI results by exact date-string
// equality. Every night yields a row: unmatched nights keep their own price
// as the suggestion with a placeholder explanation, so a partial analysis
// never drops a night from the output.
func MergeSuggestions(nights []model.NightData, results []model.AIResult) []model.Suggestion {
	byDate := make(map[string]model.AIResult, len(results))
	for _, r := range results {
		byDate[r.Date] = r
	}
	out := make([]model.Suggestion, 0, len(nights))
	for _, n := range nights {
		s := model.Suggestion{
			Date:        n.Date,
			DayOfWeek:   n.DayOfWeek,
			Explanation: fallbackExplanation,
		}
		if n.YourPrice != nil {
			s.CurrentPrice = *n.YourPrice
			s.SuggestedPrice = *n.YourPrice
		}
		if n.MarketAvgPrice != nil {
			s.MarketAvgPrice = *n.MarketAvgPrice
		}
		if r, ok := byDate[n.Date]; ok {
			s.FromAI = true
			s.InsightTag = r.InsightTag
			if r.Explanation != "" {
				s.Explanation = r.Explanation
			}
			if r.SuggestedPrice != nil {
				s.SuggestedPrice = *r.SuggestedPrice
			}
			if r.Confidence != nil {
				s.Confidence = *r.Confidence
			}
		}
		out = append(out, s)
	}
	return out
}
