package search

import (
	"math"
	"regexp"
	"strings"
	"sync"
)

const maxPatternCache = 512

var (
	patternMu    sync.Mutex
	patternCache = make(map[string]*regexp.Regexp, maxPatternCache)
)

// Levenshtein computes the classic edit distance between two strings,
// operating on runes. It is a building block for FuzzyScore and is not
// intended for hot paths over the whole corpus.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// FuzzyScore returns a similarity score in [0,1] between a query term and a
// candidate string. Cheap exact and containment checks short-circuit before
// the O(n*m) edit-distance computation:
//
//	exact match            -> 1.0
//	substring containment  -> 0.9
//	word-boundary match    -> 0.8
//	edit similarity > 0.7  -> similarity * 0.7
//	otherwise              -> 0
func FuzzyScore(term, candidate string) float64 {
	term = strings.ToLower(strings.TrimSpace(term))
	candidate = strings.ToLower(strings.TrimSpace(candidate))
	if term == "" || candidate == "" {
		return 0
	}
	if term == candidate {
		return 1.0
	}
	if strings.Contains(candidate, term) || strings.Contains(term, candidate) {
		return 0.9
	}
	if boundaryPattern(term).MatchString(candidate) {
		return 0.8
	}

	longest := len([]rune(term))
	if l := len([]rune(candidate)); l > longest {
		longest = l
	}
	similarity := 1 - float64(Levenshtein(term, candidate))/float64(longest)
	if similarity > 0.7 {
		return similarity * 0.7
	}
	return 0
}

// Jaccard computes |A∩B| / |A∪B| over two token slices treated as sets.
// Defined as 0 when the union is empty.
func Jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	setA := make(map[string]struct{}, len(a))
	for _, t := range a {
		setA[t] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, t := range b {
		setB[t] = struct{}{}
	}

	intersection := 0
	for t := range setA {
		if _, ok := setB[t]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// Cosine computes the cosine similarity of two equal-length vectors.
// Returns 0 when either norm is zero or the lengths differ.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// boundaryPattern compiles a case-insensitive word-boundary pattern for the
// given literal term. Compilation results are memoized per term.
func boundaryPattern(term string) *regexp.Regexp {
	patternMu.Lock()
	defer patternMu.Unlock()
	if re, ok := patternCache[term]; ok {
		return re
	}
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
	if len(patternCache) > maxPatternCache {
		patternCache = make(map[string]*regexp.Regexp, maxPatternCache)
	}
	patternCache[term] = re
	return re
}
