package model

import "time"

// TrustMethod records which resolver tier produced a cached domain score
type TrustMethod string

const (
	MethodStatic       TrustMethod = "static"
	MethodTLDPattern   TrustMethod = "tld_pattern"
	MethodOpenPageRank TrustMethod = "openpagerank"
	MethodLLM          TrustMethod = "llm"
	MethodDefault      TrustMethod = "default"
)

// TrustEntry is a cached source-authority score keyed by registrable domain
// (e.g. "bbc.com"). Re-resolution of the same domain overwrites the entry.
type TrustEntry struct {
	Domain    string      `json:"domain"`
	Score     float64     `json:"score"` // 0-1
	Method    TrustMethod `json:"method"`
	UpdatedAt time.Time   `json:"updated_at"`
}
