package authority

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// PopularityIndex resolves a registrable domain to a normalized 0-1 score.
// A false return is a miss, never an error: the resolver falls through.
type PopularityIndex interface {
	DomainRank(ctx context.Context, domain string) (float64, bool)
}

// PageRankClient queries an OpenPageRank-compatible endpoint that returns a
// 0-10 domain rank and normalizes it onto 0-1
type PageRankClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewPageRankClient creates a popularity-index client. The timeout applies
// per request; transport failures and malformed payloads are misses.
func NewPageRankClient(baseURL, apiKey string, timeout time.Duration) *PageRankClient {
	if timeout == 0 {
		timeout = 8 * time.Second
	}
	return &PageRankClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(5), 5),
	}
}

type pageRankResponse struct {
	Response []struct {
		PageRankDecimal *float64 `json:"page_rank_decimal"`
	} `json:"response"`
}

// DomainRank looks up the domain's popularity rank and maps it through the
// calibrated curve 0.20 + 0.70*(1 - e^(-0.35*rank)), so rank 9 lands near
// 0.90 and rank 2 near 0.38.
func (c *PageRankClient) DomainRank(ctx context.Context, domain string) (float64, bool) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, false
	}

	reqURL := fmt.Sprintf("%s?domains[]=%s", c.baseURL, url.QueryEscape(domain))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, false
	}
	if c.apiKey != "" {
		req.Header.Set("API-OPR", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, false
	}

	var parsed pageRankResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, false
	}
	if len(parsed.Response) == 0 || parsed.Response[0].PageRankDecimal == nil {
		return 0, false
	}

	raw := *parsed.Response[0].PageRankDecimal
	normalized := 0.20 + 0.70*(1-math.Exp(-0.35*raw))
	return round4(normalized), true
}

func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}
