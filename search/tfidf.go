package search

import "math"

// CorpusStats holds document frequencies for TF-IDF scoring. It is built
// once from the tokenized corpus and read-only afterwards.
type CorpusStats struct {
	totalDocs int
	docFreq   map[string]int
}

// NewCorpusStats computes document frequencies from tokenized documents.
func NewCorpusStats(docs [][]string) *CorpusStats {
	stats := &CorpusStats{
		totalDocs: len(docs),
		docFreq:   make(map[string]int),
	}
	for _, tokens := range docs {
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			stats.docFreq[tok]++
		}
	}
	return stats
}

// TotalDocs returns the number of documents the stats were built from.
func (s *CorpusStats) TotalDocs() int { return s.totalDocs }

// DocFreq returns how many documents contain the term.
func (s *CorpusStats) DocFreq(term string) int { return s.docFreq[term] }

// TFIDF scores a term against one tokenized document: term frequency
// (count / total tokens) times smoothed inverse document frequency
// ln(totalDocs / (docsContainingTerm + 1)) + 1.
func (s *CorpusStats) TFIDF(term string, docTokens []string) float64 {
	if len(docTokens) == 0 || s.totalDocs == 0 {
		return 0
	}

	count := 0
	for _, tok := range docTokens {
		if tok == term {
			count++
		}
	}
	if count == 0 {
		return 0
	}

	tf := float64(count) / float64(len(docTokens))
	idf := math.Log(float64(s.totalDocs)/float64(s.docFreq[term]+1)) + 1
	return tf * idf
}

// Vector embeds a tokenized document into the term space of the given
// vocabulary, one TF-IDF weight per vocabulary entry. Useful together with
// Cosine for ranking experiments off the primary query path.
func (s *CorpusStats) Vector(docTokens []string, vocabulary []string) []float64 {
	vec := make([]float64, len(vocabulary))
	for i, term := range vocabulary {
		vec[i] = s.TFIDF(term, docTokens)
	}
	return vec
}
