package authority

import "regexp"

// DomainScore pairs a domain substring with a curated trust score
type DomainScore struct {
	Domain string
	Score  float64
}

// staticOverrides is the curated override table, checked by substring
// containment against the raw URL in declared order (first match wins).
// Bias corrections come first: domains with high raw popularity but known
// credibility issues must not fall through to the popularity index.
var staticOverrides = []DomainScore{
	// Manual bias corrections
	{"rt.com", 0.20},
	{"sputniknews.com", 0.18},
	{"globalresearch.ca", 0.15},
	{"zerohedge.com", 0.28},
	{"dailywire.com", 0.45},
	{"thedailybeast.com", 0.58},
	{"huffpost.com", 0.65},
	{"buzzfeednews.com", 0.68},

	// Wire services and public broadcasters
	{"reuters.com", 0.94},
	{"apnews.com", 0.94},
	{"bbc.com", 0.91},
	{"npr.org", 0.88},
	{"theguardian.com", 0.87},
	{"nytimes.com", 0.86},

	// International organizations and agencies
	{"who.int", 0.97},
	{"un.org", 0.97},
	{"unep.org", 0.97},
	{"nih.gov", 0.97},
	{"cdc.gov", 0.96},

	// Scientific publishers
	{"nature.com", 0.97},
	{"science.org", 0.96},

	// Known low-trust outlets
	{"foxnews.com", 0.65},
	{"breitbart.com", 0.35},
	{"infowars.com", 0.10},
}

// tldPattern pairs a compiled TLD/domain pattern with its score
type tldPattern struct {
	pattern *regexp.Regexp
	score   float64
}

// tldPatterns covers government, international-organization and academic
// top-level domains; checked in order, first match wins.
var tldPatterns = []tldPattern{
	{regexp.MustCompile(`\.gov(/|$|\.)`), 0.93},
	{regexp.MustCompile(`\.gov\.[a-z]{2}(/|$)`), 0.92},
	{regexp.MustCompile(`\.int(/|$|\.)`), 0.94},
	{regexp.MustCompile(`\.un\.org`), 0.97},
	{regexp.MustCompile(`\.edu(/|$|\.)`), 0.88},
	{regexp.MustCompile(`\.edu\.[a-z]{2}(/|$)`), 0.87},
	{regexp.MustCompile(`\.ac\.[a-z]{2}(/|$)`), 0.87},
}
