package index

import (
	"sort"

	"github.com/poiesic/knowbase/core"
)

// Index is the whole-corpus structure: resources in corpus order plus
// inverted maps from category, author, type, stage, and keyword to resource
// codes. It is built once by a Builder and read-only afterwards, which makes
// concurrent reads safe without locking.
type Index struct {
	resources  []*core.Resource
	byCode     map[string]*core.Resource
	byCategory map[string][]string
	byAuthor   map[string][]string
	byType     map[core.ResourceType][]string
	byStage    map[core.FounderStage][]string
	byKeyword  map[string][]string
}

// Resources returns all resources in corpus order. Callers must not mutate
// the returned slice.
func (ix *Index) Resources() []*core.Resource {
	return ix.resources
}

// Len returns the number of indexed resources.
func (ix *Index) Len() int {
	return len(ix.resources)
}

// ByCode returns the resource with the given code, or nil.
func (ix *Index) ByCode(code string) *core.Resource {
	return ix.byCode[code]
}

// ByCodes resolves codes to resources, skipping unknown codes.
func (ix *Index) ByCodes(codes []string) []*core.Resource {
	resources := make([]*core.Resource, 0, len(codes))
	for _, code := range codes {
		if r := ix.byCode[code]; r != nil {
			resources = append(resources, r)
		}
	}
	return resources
}

// ByCategory returns all resources tagged with the category. Unknown
// categories yield an empty list, never an error.
func (ix *Index) ByCategory(category string) []*core.Resource {
	return ix.ByCodes(ix.byCategory[category])
}

// ByAuthor returns all resources by the author.
func (ix *Index) ByAuthor(author string) []*core.Resource {
	return ix.ByCodes(ix.byAuthor[author])
}

// ByType returns all resources of the given type.
func (ix *Index) ByType(resourceType core.ResourceType) []*core.Resource {
	return ix.ByCodes(ix.byType[resourceType])
}

// ByStage returns all resources applicable to the founder stage.
func (ix *Index) ByStage(stage core.FounderStage) []*core.Resource {
	return ix.ByCodes(ix.byStage[stage])
}

// ByKeyword returns all resources whose indexed text contains the token.
func (ix *Index) ByKeyword(token string) []*core.Resource {
	return ix.ByCodes(ix.byKeyword[token])
}

// Categories returns the category vocabulary sorted alphabetically.
func (ix *Index) Categories() []string {
	categories := make([]string, 0, len(ix.byCategory))
	for c := range ix.byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories
}

// CategoryCount returns the number of resources tagged with the category.
func (ix *Index) CategoryCount(category string) int {
	return len(ix.byCategory[category])
}

// Authors returns the author vocabulary sorted alphabetically.
func (ix *Index) Authors() []string {
	authors := make([]string, 0, len(ix.byAuthor))
	for a := range ix.byAuthor {
		authors = append(authors, a)
	}
	sort.Strings(authors)
	return authors
}

// CountByType returns per-type resource counts.
func (ix *Index) CountByType() map[core.ResourceType]int {
	counts := make(map[core.ResourceType]int, len(ix.byType))
	for t, codes := range ix.byType {
		counts[t] = len(codes)
	}
	return counts
}
