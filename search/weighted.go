package search

import (
	"strings"

	"github.com/poiesic/knowbase/core"
)

// WeightedJaccardScorer computes a multi-field relevance score from the raw
// query string: per-field Jaccard similarity of the token sets, weighted per
// field, plus a flat category bonus when one of the document's topic tags
// appears verbatim in the lowercased query.
//
// This is the pluggable alternative to KeywordScorer; the keyword scorer
// remains the primary strategy on the main search path.
type WeightedJaccardScorer struct {
	weights   FieldWeights
	tokenizer *Tokenizer
}

// NewWeightedJaccardScorer creates a scorer with the default weights.
func NewWeightedJaccardScorer() *WeightedJaccardScorer {
	return NewWeightedJaccardScorerWithWeights(DefaultWeightedJaccardWeights())
}

// NewWeightedJaccardScorerWithWeights creates a scorer with custom weights.
func NewWeightedJaccardScorerWithWeights(weights FieldWeights) *WeightedJaccardScorer {
	return &WeightedJaccardScorer{weights: weights, tokenizer: NewCJKTokenizer()}
}

var _ Scorer = (*WeightedJaccardScorer)(nil)

// Score computes the weighted sum of per-field similarities against the raw
// query, with the per-field breakdown exposed for explainability.
func (s *WeightedJaccardScorer) Score(resource *core.Resource, query core.SearchQuery) (float64, []FieldMatch) {
	return s.ScoreContent(resource, "", query.RawQuery)
}

// ScoreContent additionally scores the loaded body text under the content
// weight. Pass an empty body when content is not loaded.
func (s *WeightedJaccardScorer) ScoreContent(resource *core.Resource, body, rawQuery string) (float64, []FieldMatch) {
	queryTokens := s.tokenizer.Tokenize(rawQuery)
	if len(queryTokens) == 0 && strings.TrimSpace(rawQuery) == "" {
		return 0, nil
	}

	var total float64
	var matches []FieldMatch

	add := func(field, value string, weight float64) {
		if value == "" || weight == 0 {
			return
		}
		similarity := Jaccard(queryTokens, s.tokenizer.Tokenize(value))
		if similarity == 0 {
			return
		}
		points := similarity * weight
		total += points
		matches = append(matches, FieldMatch{Field: field, Keyword: rawQuery, Points: points})
	}

	add("title", resource.Title, s.weights.Title)
	add("author", resource.Author, s.weights.Author)
	add("topics", strings.Join(resource.Topics, " "), s.weights.Topics)
	add("summary", resource.Summary, s.weights.Summary)
	add("content", body, s.weights.Content)

	// Flat bonus when a topic tag appears verbatim in the query.
	lowered := strings.ToLower(rawQuery)
	for _, topic := range resource.Topics {
		if topic != "" && strings.Contains(lowered, strings.ToLower(topic)) {
			total += s.weights.Category
			matches = append(matches, FieldMatch{Field: "category", Keyword: topic, Points: s.weights.Category})
			break
		}
	}

	return total, matches
}
