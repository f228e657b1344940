package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nightrate/nightrate/internal/model"
)

// defaultResolver backs clients that were not handed their own resolver, so
// the discovered URL is shared process-wide as the backend contract expects.
var defaultResolver = &Resolver{}

// Client issues typed requests against the resolved backend. Credentials and
// the current property selection are plain fields so the caller decides where
// they come from; the CLI loads them from the secure store.
type Client struct {
	Resolver *Resolver
	HTTP     *http.Client
	Timeout  time.Duration

	APIKey string
	PMS    string

	// Optional enrichment, attached to requests when present.
	Property *model.SelectedProperty
	Context  *model.PropertyContext

	// Model named in analyze requests. Defaults to "gpt-4".
	Model string

	// ChunkDelay is the pause between consecutive analyze chunks.
	// Defaults to one second; tests shrink it.
	ChunkDelay time.Duration
}

// selectedPropertyPayload is the identifying subset the backend uses to
// ground AI suggestions.
type selectedPropertyPayload struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Location     string `json:"location,omitempty"`
	NoOfBedrooms int    `json:"no_of_bedrooms"`
}

func (c *Client) propertyPayload() *selectedPropertyPayload {
	if c.Property == nil || c.Property.ID == "" {
		return nil
	}
	return &selectedPropertyPayload{
		ID:           c.Property.ID,
		Name:         c.Property.Name,
		Location:     c.Property.Location,
		NoOfBedrooms: c.Property.NoOfBedrooms,
	}
}

func (c *Client) requireKey() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: set a PriceLabs API key first", ErrNotConfigured)
	}
	return nil
}

func (c *Client) requireProperty() error {
	if c.Property == nil || c.Property.ID == "" {
		return fmt.Errorf("%w: pick a listing first", ErrNoProperty)
	}
	return nil
}

func (c *Client) resolver() *Resolver {
	if c.Resolver != nil {
		return c.Resolver
	}
	return defaultResolver
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

func (c *Client) pms() string {
	if c.PMS == "" {
		return "airbnb"
	}
	return c.PMS
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	base, err := c.resolver().Resolve(ctx)
	if err != nil {
		return err
	}
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", path, err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		msg := errorMessage(raw, resp.Status)
		if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity {
			return fmt.Errorf("%w: %s", ErrValidation, msg)
		}
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s", ErrNotFound, msg)
		}
		return fmt.Errorf("%w: %s: %s", ErrTransport, resp.Status, msg)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// errorMessage digs a human-readable message out of an error body: the
// FastAPI "detail" field first (string or validation list), then common
// message/error fields, then the raw text, then the HTTP status.
func errorMessage(raw []byte, status string) string {
	var envelope struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if len(envelope.Detail) > 0 {
			var s string
			if json.Unmarshal(envelope.Detail, &s) == nil && s != "" {
				return s
			}
			var items []struct {
				Msg string `json:"msg"`
			}
			if json.Unmarshal(envelope.Detail, &items) == nil && len(items) > 0 && items[0].Msg != "" {
				return items[0].Msg
			}
		}
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	if text := strings.TrimSpace(string(raw)); text != "" {
		return text
	}
	return status
}
