package model

import (
	"time"

	"github.com/google/uuid"
)

// DocType identifies the kind of document being analyzed
type DocType string

const (
	DocTypeResearchPaper DocType = "research_paper"
	DocTypeNewsArticle   DocType = "news_article"
	DocTypeBlogPost      DocType = "blog_post"
	DocTypeLegalDocument DocType = "legal_document"
	DocTypeUnknown       DocType = "unknown"
)

// DocTypes lists every recognized document type
var DocTypes = []DocType{
	DocTypeResearchPaper,
	DocTypeNewsArticle,
	DocTypeBlogPost,
	DocTypeLegalDocument,
	DocTypeUnknown,
}

// ParseDocType converts a label into a DocType, defaulting to unknown
func ParseDocType(label string) DocType {
	for _, dt := range DocTypes {
		if string(dt) == label {
			return dt
		}
	}
	return DocTypeUnknown
}

// Document represents a single ingested document
type Document struct {
	ID          string            `json:"id"`
	DocType     DocType           `json:"doc_type"`
	Title       string            `json:"title,omitempty"`
	SourceURL   string            `json:"source_url,omitempty"`
	RawText     string            `json:"raw_text"`
	Credibility *CredibilityScore `json:"credibility_score,omitempty"`
	Claims      []Claim           `json:"claims,omitempty"`
	// Type-specific metadata stored flexibly (venue, publisher, dates, etc.)
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// NewDocument creates a document with a fresh ID and an empty metadata map
func NewDocument(text string) *Document {
	return &Document{
		ID:        uuid.NewString(),
		DocType:   DocTypeUnknown,
		RawText:   text,
		Metadata:  make(map[string]any),
		CreatedAt: time.Now().UTC(),
	}
}

// CredibilityScore is a 0-1 composite trust estimate with transparent breakdown
type CredibilityScore struct {
	Overall float64 `json:"overall"` // weighted sum of breakdown entries

	// Breakdown maps signal name to its 0-1 sub-score
	Breakdown map[string]float64 `json:"breakdown,omitempty"`

	// Explanations holds a human-readable line per breakdown key
	Explanations map[string]string `json:"explanations,omitempty"`

	// Signals holds raw inputs used for scoring (URLs, counts, dates)
	Signals map[string]any `json:"signals,omitempty"`
}

// Claim represents an atomic factual assertion attributed to one document
type Claim struct {
	ID          string  `json:"id"`
	Text        string  `json:"text"`
	SourceDocID string  `json:"source_doc_id"`
	Confidence  float64 `json:"confidence"`
}

// NewClaim creates a claim with a fresh ID and full confidence
func NewClaim(text, sourceDocID string) Claim {
	return Claim{
		ID:          uuid.NewString(),
		Text:        text,
		SourceDocID: sourceDocID,
		Confidence:  1.0,
	}
}

// ConflictStatus marks whether a disputed cluster was resolved
type ConflictStatus string

const (
	StatusResolved   ConflictStatus = "resolved"
	StatusUnresolved ConflictStatus = "unresolved"
)

// Conflict captures a claim cluster spanning two or more documents
type Conflict struct {
	Claims     []Claim        `json:"claims"`
	Topic      string         `json:"topic"`
	Resolution string         `json:"resolution,omitempty"` // winning claim text, empty if unresolved
	Status     ConflictStatus `json:"status"`
	Confidence float64        `json:"confidence"`
}
