package search

import "github.com/poiesic/knowbase/core"

// AggregateFacets computes per-tag document counts over a result set. Every
// document contributes to every tag it carries: topics and stages are
// multi-value, author and type are single-value. Pure aggregation, no
// ranking.
func AggregateFacets(resources []*core.Resource) core.Facets {
	facets := core.NewFacets()
	for _, r := range resources {
		for _, topic := range r.Topics {
			facets.Categories[topic]++
		}
		for _, stage := range r.Stages {
			facets.Stages[stage]++
		}
		if r.Author != "" {
			facets.Authors[r.Author]++
		}
		facets.Types[r.Type]++
	}
	return facets
}
