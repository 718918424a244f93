package search

import "strings"

const (
	maxHighlightLen = 200
	maxHighlights   = 3
)

// Highlights extracts up to three sentence snippets from content that
// contain at least one query term. Long sentences are truncated. Returns nil
// when the query carries no terms or nothing matches.
func Highlights(content, query string) []string {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return nil
	}

	var highlights []string
	for _, sentence := range splitSentences(content) {
		lowered := strings.ToLower(sentence)
		for _, term := range terms {
			if !strings.Contains(lowered, term) {
				continue
			}
			if len(sentence) > maxHighlightLen {
				sentence = sentence[:maxHighlightLen] + "..."
			}
			highlights = append(highlights, sentence)
			break
		}
		if len(highlights) >= maxHighlights {
			break
		}
	}
	return highlights
}

// splitSentences splits content on common sentence terminators, including
// the CJK full stop.
func splitSentences(content string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	for _, r := range content {
		current.WriteRune(r)
		switch r {
		case '.', '!', '?', '\n', '。', '！', '？':
			flush()
		}
	}
	flush()
	return sentences
}
