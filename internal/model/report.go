package model

import "time"

// DocScore summarizes one document's credibility inside a report
type DocScore struct {
	DocID     string  `json:"doc_id"`
	DocType   DocType `json:"doc_type"`
	Title     string  `json:"title,omitempty"`
	SourceURL string  `json:"source_url,omitempty"`
	Overall   float64 `json:"overall"`
}

// Report is the final output of a reconciliation job: one resolved narrative
// built from every document's claims, plus the conflicts encountered on the way.
type Report struct {
	Strategy        string     `json:"strategy"`
	DocTypesPresent []DocType  `json:"doc_types_present"`
	Documents       []DocScore `json:"documents"`

	ResolvedClaims []Claim    `json:"resolved_claims"`
	Conflicts      []Conflict `json:"conflicts"`

	// Summary is the optional LLM narrative (never affects scores or resolution)
	Summary *Summary `json:"summary,omitempty"`

	GeneratedAt time.Time `json:"generated_at"`
}

// Summary contains the optional LLM-generated narrative of the resolved claims
type Summary struct {
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
	Text     string `json:"text,omitempty"`
}
