package core

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// ResourceType classifies the medium of a library resource.
type ResourceType string

const (
	// ResourceTypeEssay is a written article or essay.
	ResourceTypeEssay ResourceType = "essay"
	// ResourceTypeVideo is a talk or lecture recording.
	ResourceTypeVideo ResourceType = "video"
	// ResourceTypePodcast is an audio episode.
	ResourceTypePodcast ResourceType = "podcast"
)

// FounderStage classifies which company lifecycle stage a resource applies to.
type FounderStage string

const (
	StagePreIdea  FounderStage = "pre-idea"
	StageIdea     FounderStage = "idea"
	StageBuilding FounderStage = "building"
	StageLaunched FounderStage = "launched"
	StageScaling  FounderStage = "scaling"
	StageAll      FounderStage = "all"
)

// Resource is one catalog entry in the library.
// Resources are immutable after the index is built; the body text is loaded
// lazily through a corpus.ContentLoader.
type Resource struct {
	Code          string         `json:"code" yaml:"code"`
	Title         string         `json:"title" yaml:"title"`
	Author        string         `json:"author" yaml:"author"`
	Type          ResourceType   `json:"type" yaml:"type"`
	Topics        []string       `json:"topics" yaml:"topics"`
	Stages        []FounderStage `json:"stages" yaml:"stages"`
	Lines         int            `json:"lines" yaml:"lines"`
	FilePath      string         `json:"filePath" yaml:"filePath"`
	HasTranscript bool           `json:"hasTranscript" yaml:"hasTranscript"`
	Related       []string       `json:"related,omitempty" yaml:"related,omitempty"`
	Summary       string         `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// HasTopic reports whether the resource carries the given category tag.
func (r *Resource) HasTopic(topic string) bool {
	for _, t := range r.Topics {
		if t == topic {
			return true
		}
	}
	return false
}

// HasStage reports whether the resource applies to the given founder stage.
func (r *Resource) HasStage(stage FounderStage) bool {
	for _, s := range r.Stages {
		if s == stage {
			return true
		}
	}
	return false
}

// Content is a resource together with its loaded body text and resolved
// related resources.
type Content struct {
	Resource *Resource
	Body     string
	Related  []*Resource
}

// PlaceholderBody is substituted when the content loader fails.
// LoadResource always returns something displayable.
const PlaceholderBody = "Content is currently unavailable. Please try again later."

// SortOrder selects how search results are ordered.
type SortOrder string

const (
	// SortByRelevance orders by descending score (default).
	SortByRelevance SortOrder = "relevance"
	// SortByLines orders by ascending line count.
	SortByLines SortOrder = "lines"
	// SortByTitle orders lexicographically by title.
	SortByTitle SortOrder = "title"
)

// Filters restricts search candidates by structured metadata.
// Within a dimension values are ORed; across dimensions they are ANDed.
// A nil or empty dimension is a no-op. Line bounds are inclusive and a
// non-positive bound means "no bound".
type Filters struct {
	Categories []string
	Stages     []FounderStage
	Authors    []string
	Types      []ResourceType
	MinLines   int
	MaxLines   int
}

// Empty reports whether no filter dimension is set.
func (f Filters) Empty() bool {
	return len(f.Categories) == 0 && len(f.Stages) == 0 &&
		len(f.Authors) == 0 && len(f.Types) == 0 &&
		f.MinLines <= 0 && f.MaxLines <= 0
}

// SearchQuery is a per-request value object. It is never persisted; its
// canonical serialization doubles as the result cache key.
type SearchQuery struct {
	RawQuery string
	Keywords []string
	Filters  Filters
	Sort     SortOrder
	Limit    int
	Offset   int
}

// CacheKey returns a stable key for the query. List fields are sorted in a
// copy first so that logically equal queries share a cache entry.
func (q SearchQuery) CacheKey() string {
	var b strings.Builder
	b.WriteString("q=")
	b.WriteString(strings.ToLower(strings.TrimSpace(q.RawQuery)))
	b.WriteString("|k=")
	b.WriteString(strings.Join(sortedCopy(q.Keywords), ","))
	b.WriteString("|c=")
	b.WriteString(strings.Join(sortedCopy(q.Filters.Categories), ","))
	b.WriteString("|s=")
	stages := make([]string, 0, len(q.Filters.Stages))
	for _, s := range q.Filters.Stages {
		stages = append(stages, string(s))
	}
	b.WriteString(strings.Join(sortedCopy(stages), ","))
	b.WriteString("|a=")
	b.WriteString(strings.Join(sortedCopy(q.Filters.Authors), ","))
	b.WriteString("|t=")
	types := make([]string, 0, len(q.Filters.Types))
	for _, t := range q.Filters.Types {
		types = append(types, string(t))
	}
	b.WriteString(strings.Join(sortedCopy(types), ","))
	b.WriteString("|l=")
	b.WriteString(strconv.Itoa(q.Filters.MinLines))
	b.WriteByte('-')
	b.WriteString(strconv.Itoa(q.Filters.MaxLines))
	b.WriteString("|o=")
	b.WriteString(string(q.Sort))
	b.WriteByte('/')
	b.WriteString(strconv.Itoa(q.Limit))
	b.WriteByte('/')
	b.WriteString(strconv.Itoa(q.Offset))
	return KeyFromContent(b.String())
}

// Facets holds per-tag document counts over a matched set.
// Counts cover the full matched set, not the returned page.
type Facets struct {
	Categories map[string]int
	Authors    map[string]int
	Stages     map[FounderStage]int
	Types      map[ResourceType]int
}

// NewFacets returns a Facets value with all maps allocated.
func NewFacets() Facets {
	return Facets{
		Categories: make(map[string]int),
		Authors:    make(map[string]int),
		Stages:     make(map[FounderStage]int),
		Types:      make(map[ResourceType]int),
	}
}

// SearchResult is a ranked page of resources plus aggregates.
type SearchResult struct {
	// Resources is the requested page, in rank order.
	Resources []*Resource
	// Total is the matched count before offset/limit slicing.
	Total int
	// Facets is computed over the full matched set.
	Facets Facets
	// ExecutionTime is how long the search took to compute.
	ExecutionTime time.Duration
	// Cached is true when the result was served from the result cache.
	Cached bool
}

// CategoryInfo is one entry of a category listing.
type CategoryInfo struct {
	ID    string
	Name  string
	Count int
}

// CategoryListing summarizes the category vocabulary of the loaded index.
type CategoryListing struct {
	Categories     []CategoryInfo
	TotalResources int
}

// Stats summarizes the loaded index and cache occupancy.
type Stats struct {
	TotalResources   int
	ByType           map[ResourceType]int
	Categories       int
	Authors          int
	ResultCacheSize  int
	ContentCacheSize int
}

func sortedCopy(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	sort.Strings(out)
	return out
}
