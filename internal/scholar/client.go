// Package scholar looks up bibliometric metadata for research papers from a
// Semantic Scholar compatible API.
package scholar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/accordhq/accord/internal/model"
)

const defaultBaseURL = "https://api.semanticscholar.org/graph/v1"

// searchFields are the paper attributes the credibility scorers consume
const searchFields = "citationCount,year,venue,authors.hIndex,isOpenAccess,publicationTypes"

// Author carries the per-author metrics returned by the paper search
type Author struct {
	HIndex *int `json:"hIndex"`
}

// PaperMeta is the bibliometric record for one paper. Pointer fields
// distinguish "zero" from "not reported": a paper with no citationCount is
// not the same as a paper cited zero times.
type PaperMeta struct {
	CitationCount    *int     `json:"citationCount"`
	Year             *int     `json:"year"`
	Venue            string   `json:"venue"`
	Authors          []Author `json:"authors"`
	IsOpenAccess     bool     `json:"isOpenAccess"`
	PublicationTypes []string `json:"publicationTypes"`
}

// PeerReviewed reports whether the publication types or venue indicate a
// peer-reviewed publication
func (m *PaperMeta) PeerReviewed() bool {
	for _, t := range m.PublicationTypes {
		if t == "JournalArticle" || t == "Conference" {
			return true
		}
	}
	return strings.Contains(strings.ToLower(m.Venue), "journal")
}

// MaxHIndex returns the highest author h-index, or (0, false) when no author
// metrics were reported
func (m *PaperMeta) MaxHIndex() (int, bool) {
	found := false
	best := 0
	for _, a := range m.Authors {
		if a.HIndex == nil {
			continue
		}
		if !found || *a.HIndex > best {
			best = *a.HIndex
		}
		found = true
	}
	return best, found
}

// Client queries the paper-search endpoint. Lookups are best-effort: any
// transport, status, or decode failure is reported as a miss, never an error,
// so a flaky bibliometric API degrades scoring instead of failing the job.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a bibliometric client from configuration
func NewClient(cfg model.ScholarConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type searchResponse struct {
	Data []PaperMeta `json:"data"`
}

// Lookup searches for the best-matching paper by title. A miss means the API
// was unreachable, errored, or found nothing.
func (c *Client) Lookup(ctx context.Context, title string) (*PaperMeta, bool) {
	if title == "" {
		return nil, false
	}

	endpoint := fmt.Sprintf("%s/paper/search?%s", c.baseURL, url.Values{
		"query":  []string{title},
		"limit":  []string{"1"},
		"fields": []string{searchFields},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false
	}
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, false
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, false
	}
	if len(parsed.Data) == 0 {
		return nil, false
	}
	return &parsed.Data[0], true
}
