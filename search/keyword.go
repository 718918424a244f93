package search

import (
	"strings"

	"github.com/poiesic/knowbase/core"
)

// FieldWeights configures how much each searchable field contributes to a
// relevance score. Two named default sets exist in the system and serve
// different call paths; they are intentionally distinct configurations.
type FieldWeights struct {
	Title    float64
	Author   float64
	Topics   float64
	Summary  float64
	Content  float64
	Category float64
}

// DefaultKeywordWeights returns the weights driving the main search path.
func DefaultKeywordWeights() FieldWeights {
	return FieldWeights{Title: 3, Author: 2, Topics: 2, Summary: 1}
}

// DefaultWeightedJaccardWeights returns the weights for the multi-field
// Jaccard strategy.
func DefaultWeightedJaccardWeights() FieldWeights {
	return FieldWeights{Title: 5, Author: 3, Topics: 3, Summary: 2, Content: 1, Category: 2}
}

// Match tier points. Each (keyword, field) pair is classified into exactly
// one tier; only the highest-priority applicable tier is scored.
const (
	exactPoints     = 10
	substringPoints = 5
	boundaryPoints  = 3
)

// FieldMatch records one scored (field, keyword) contribution for
// explainability.
type FieldMatch struct {
	Field   string
	Keyword string
	Points  float64
}

// Strategy names a scoring strategy.
type Strategy string

const (
	// StrategyKeyword is the tiered keyword scorer driving the main
	// search path.
	StrategyKeyword Strategy = "keyword"
	// StrategyWeightedJaccard is the per-field weighted Jaccard scorer.
	StrategyWeightedJaccard Strategy = "weighted-jaccard"
)

// Scorer computes a relevance score for one resource against a query and
// reports the per-field contributions behind it.
type Scorer interface {
	Score(resource *core.Resource, query core.SearchQuery) (float64, []FieldMatch)
}

// NewScorer returns the scorer for a named strategy with its default
// weights. Unknown strategies fall back to the keyword scorer.
func NewScorer(strategy Strategy) Scorer {
	if strategy == StrategyWeightedJaccard {
		return NewWeightedJaccardScorer()
	}
	return NewKeywordScorer()
}

// KeywordScorer scores documents by classifying each (keyword, field) pair
// into a match tier:
//
//	exact field-value match (normalized)  -> 10 x field weight
//	substring containment                 ->  5 x field weight
//	word-boundary match: every keyword
//	word appears as a whole word, though
//	not necessarily contiguously          ->  3 x field weight
//
// A keyword with no match in a field contributes nothing for that field.
type KeywordScorer struct {
	weights FieldWeights
}

// NewKeywordScorer creates a keyword scorer with the default weights.
func NewKeywordScorer() *KeywordScorer {
	return NewKeywordScorerWithWeights(DefaultKeywordWeights())
}

// NewKeywordScorerWithWeights creates a keyword scorer with custom weights.
func NewKeywordScorerWithWeights(weights FieldWeights) *KeywordScorer {
	return &KeywordScorer{weights: weights}
}

var _ Scorer = (*KeywordScorer)(nil)

// Score sums the tier points of every (keyword, field) pair. Keyword order
// is irrelevant.
func (s *KeywordScorer) Score(resource *core.Resource, query core.SearchQuery) (float64, []FieldMatch) {
	return s.ScoreKeywords(resource, query.Keywords)
}

// ScoreKeywords scores a document against an explicit keyword set.
func (s *KeywordScorer) ScoreKeywords(resource *core.Resource, keywords []string) (float64, []FieldMatch) {
	var total float64
	var matches []FieldMatch

	for _, keyword := range keywords {
		keyword = strings.TrimSpace(keyword)
		if keyword == "" {
			continue
		}

		fields := []struct {
			name   string
			weight float64
			tier   int
		}{
			{"title", s.weights.Title, matchTier(keyword, resource.Title)},
			{"author", s.weights.Author, matchTier(keyword, resource.Author)},
			{"topics", s.weights.Topics, bestTier(keyword, resource.Topics)},
			{"summary", s.weights.Summary, matchTier(keyword, resource.Summary)},
		}

		for _, f := range fields {
			if f.tier == 0 || f.weight == 0 {
				continue
			}
			points := float64(f.tier) * f.weight
			total += points
			matches = append(matches, FieldMatch{Field: f.name, Keyword: keyword, Points: points})
		}
	}

	return total, matches
}

// matchTier classifies a single (keyword, field value) pair. Returns the
// tier points before weighting, or 0 for no match.
func matchTier(keyword, value string) int {
	if value == "" {
		return 0
	}
	k := normalize(keyword)
	v := normalize(value)
	if k == "" {
		return 0
	}
	if k == v {
		return exactPoints
	}
	if strings.Contains(v, k) {
		return substringPoints
	}
	if wordsMatchAtBoundaries(k, value) {
		return boundaryPoints
	}
	return 0
}

// bestTier classifies a keyword against a multi-value field, keeping the
// strongest tier across values.
func bestTier(keyword string, values []string) int {
	best := 0
	for _, v := range values {
		if tier := matchTier(keyword, v); tier > best {
			best = tier
			if best == exactPoints {
				break
			}
		}
	}
	return best
}

// wordsMatchAtBoundaries reports whether every word of the keyword appears
// as a whole word in the value, though not necessarily contiguously.
func wordsMatchAtBoundaries(keyword, value string) bool {
	words := strings.Fields(keyword)
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		if !boundaryPattern(w).MatchString(value) {
			return false
		}
	}
	return true
}

// normalize lowercases, trims, and collapses whitespace runs.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
