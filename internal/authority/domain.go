package authority

import (
	"net/url"
	"strings"
)

// compoundSuffixes are second-level labels that form a registrable suffix with
// the country TLD (co.uk, gov.au, ac.jp and similar)
var compoundSuffixes = map[string]bool{
	"gov": true,
	"ac":  true,
	"co":  true,
	"edu": true,
	"org": true,
	"net": true,
}

// RegistrableDomain extracts the registrable domain from a URL,
// e.g. "https://eaps.mit.edu/research" → "mit.edu". Subdomains collapse to the
// last two labels, except compound country suffixes which keep three
// ("news.bbc.co.uk" → "bbc.co.uk"). Unparseable input is returned as-is.
func RegistrableDomain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return rawURL
	}

	host := strings.ToLower(parsed.Hostname())
	host = strings.TrimPrefix(host, "www.")

	parts := strings.Split(host, ".")
	if len(parts) >= 3 && compoundSuffixes[parts[len(parts)-2]] {
		return strings.Join(parts[len(parts)-3:], ".")
	}
	if len(parts) >= 2 {
		return strings.Join(parts[len(parts)-2:], ".")
	}
	return host
}
