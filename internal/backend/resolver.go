package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"
)

// DefaultCandidates is the ordered probe list: production first, then the
// local-development variants on port 8000.
var DefaultCandidates = []string{
	"https://web-production-31791.up.railway.app",
	"http://172.16.17.32:8000",
	"http://127.0.0.1:8000",
	"http://localhost:8000",
}

// Resolver finds one reachable backend base URL from an ordered candidate
// list and caches it for the remainder of the process. Resolution is safe to
// race: the cached value is a single atomically replaced string and the last
// successful probe wins.
type Resolver struct {
	Candidates []string
	Client     *http.Client
	Timeout    time.Duration

	cached atomic.Value // string
}

type healthResponse struct {
	Status string `json:"status"`
}

// Resolve returns the cached base URL, probing the candidates in order on
// first use. A candidate is accepted when GET / answers 2xx with a body
// reporting status "healthy".
func (r *Resolver) Resolve(ctx context.Context) (string, error) {
	if v, ok := r.cached.Load().(string); ok && v != "" {
		return v, nil
	}
	candidates := r.Candidates
	if len(candidates) == 0 {
		candidates = DefaultCandidates
	}
	client := r.Client
	if client == nil {
		client = &http.Client{Timeout: r.probeTimeout()}
	}
	for _, base := range candidates {
		base = strings.TrimRight(base, "/")
		if r.probe(ctx, client, base) {
			r.cached.Store(base)
			return base, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
	return "", fmt.Errorf("%w: no healthy candidate among %d url(s)", ErrUnreachable, len(candidates))
}

func (r *Resolver) probe(ctx context.Context, client *http.Client, base string) bool {
	ctx, cancel := context.WithTimeout(ctx, r.probeTimeout())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/", nil)
	if err != nil {
		return false
	}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false
	}
	var health healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return false
	}
	return health.Status == "healthy"
}

// Invalidate drops the cached URL so the next call re-probes. Nothing calls
// this automatically; it exists for callers that know the backend moved.
func (r *Resolver) Invalidate() {
	r.cached.Store("")
}

func (r *Resolver) probeTimeout() time.Duration {
	if r.Timeout > 0 {
		return r.Timeout
	}
	return 5 * time.Second
}
