package search

import "github.com/poiesic/knowbase/core"

// ApplyFilters returns the order-preserving subset of resources matching the
// structured filters. Values within one dimension are ORed; a document must
// pass every configured dimension. Empty dimensions exclude nothing.
func ApplyFilters(resources []*core.Resource, filters core.Filters) []*core.Resource {
	if filters.Empty() {
		return resources
	}

	matched := make([]*core.Resource, 0, len(resources))
	for _, r := range resources {
		if matchesFilters(r, filters) {
			matched = append(matched, r)
		}
	}
	return matched
}

func matchesFilters(r *core.Resource, f core.Filters) bool {
	if len(f.Categories) > 0 && !hasAnyTopic(r, f.Categories) {
		return false
	}
	if len(f.Stages) > 0 && !hasAnyStage(r, f.Stages) {
		return false
	}
	if len(f.Authors) > 0 && !containsString(f.Authors, r.Author) {
		return false
	}
	if len(f.Types) > 0 && !containsType(f.Types, r.Type) {
		return false
	}
	if f.MinLines > 0 && r.Lines < f.MinLines {
		return false
	}
	if f.MaxLines > 0 && r.Lines > f.MaxLines {
		return false
	}
	return true
}

func hasAnyTopic(r *core.Resource, topics []string) bool {
	for _, t := range topics {
		if r.HasTopic(t) {
			return true
		}
	}
	return false
}

func hasAnyStage(r *core.Resource, stages []core.FounderStage) bool {
	for _, s := range stages {
		if r.HasStage(s) {
			return true
		}
	}
	return false
}

func containsString(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}

func containsType(values []core.ResourceType, v core.ResourceType) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
