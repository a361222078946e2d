package authority

import (
	"encoding/json"
	"time"

	"github.com/accordhq/accord/internal/cache"
	"github.com/accordhq/accord/internal/model"
)

// TrustStore persists resolved domain-trust entries, keyed by registrable
// domain. Concurrent first-time lookups of one domain may both write; last
// write wins, which is acceptable because scores are approximations.
type TrustStore struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewTrustStore wraps a cache as a domain-trust store
func NewTrustStore(c cache.Cache, ttl time.Duration) *TrustStore {
	return &TrustStore{cache: c, ttl: ttl}
}

// Get returns the cached entry for a domain, if present and unexpired
func (s *TrustStore) Get(domain string) (*model.TrustEntry, bool) {
	raw, found := s.cache.Get(s.key(domain))
	if !found {
		return nil, false
	}

	var entry model.TrustEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, false
	}
	return &entry, true
}

// Put writes or overwrites the entry for a domain, recording provenance
func (s *TrustStore) Put(domain string, score float64, method model.TrustMethod) {
	entry := model.TrustEntry{
		Domain:    domain,
		Score:     score,
		Method:    method,
		UpdatedAt: time.Now().UTC(),
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return
	}
	// Cache failures are non-fatal: the score was already resolved
	_ = s.cache.Set(s.key(domain), raw, s.ttl)
}

func (s *TrustStore) key(domain string) string {
	return cache.CacheKey("trust:" + domain)
}
