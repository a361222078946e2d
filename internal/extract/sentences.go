package extract

import "strings"

const (
	minSentenceLen = 40
	maxSentenceLen = 500
)

// splitSentences splits prose into sentences on terminators followed by
// whitespace, filtering fragments too short or too long to be a standalone
// claim. terminators varies by document type: legal text also breaks on
// semicolons, which separate provisions.
func splitSentences(text string, terminators string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder

	flush := func() {
		sentence := strings.TrimSpace(current.String())
		if len(sentence) > minSentenceLen && len(sentence) <= maxSentenceLen {
			sentences = append(sentences, sentence)
		}
		current.Reset()
	}

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)
		if strings.ContainsRune(terminators, r) {
			// require trailing whitespace so abbreviations like
			// "U.S.C." don't split
			if i+1 < len(runes) && (runes[i+1] == ' ' || runes[i+1] == '\t') {
				flush()
			}
		}
	}
	if current.Len() > 0 {
		flush()
	}

	return sentences
}

// firstSentences returns up to n sentences as fallback claims
func firstSentences(text string, terminators string, n int) []string {
	sentences := splitSentences(text, terminators)
	if len(sentences) > n {
		sentences = sentences[:n]
	}
	return sentences
}
