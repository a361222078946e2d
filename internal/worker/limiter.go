package worker

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/accordhq/accord/internal/authority"
)

// Limiter rate-limits outbound requests per registrable domain, so fetching
// many documents from one host stays polite while unrelated hosts proceed in
// parallel.
type Limiter struct {
	mu           sync.RWMutex
	limiters     map[string]*rate.Limiter
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a per-domain limiter with the given requests/sec and
// burst defaults
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 2
	}
	if burst <= 0 {
		burst = 5
	}
	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(requestsPerSecond),
		defaultBurst: burst,
	}
}

// Wait blocks until the URL's domain has request budget or ctx is canceled
func (l *Limiter) Wait(ctx context.Context, rawURL string) error {
	return l.forDomain(authority.RegistrableDomain(rawURL)).Wait(ctx)
}

// Allow reports whether a request to the URL's domain may proceed right now
func (l *Limiter) Allow(rawURL string) bool {
	return l.forDomain(authority.RegistrableDomain(rawURL)).Allow()
}

func (l *Limiter) forDomain(domain string) *rate.Limiter {
	l.mu.RLock()
	limiter, ok := l.limiters[domain]
	l.mu.RUnlock()
	if ok {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if limiter, ok := l.limiters[domain]; ok {
		return limiter
	}
	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[domain] = limiter
	return limiter
}
