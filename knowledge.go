package knowbase

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/poiesic/knowbase/cache"
	"github.com/poiesic/knowbase/core"
	"github.com/poiesic/knowbase/corpus"
	"github.com/poiesic/knowbase/index"
	"github.com/poiesic/knowbase/search"
)

// Defaults for the facade.
const (
	DefaultLimit            = 20
	DefaultResultCacheSize  = 100
	DefaultContentCacheSize = 50
	DefaultCacheTTL         = 5 * time.Minute
)

// KnowledgeBase owns the loaded index and composes filtering, scoring,
// faceting, and caching into a single search call.
//
// Lifecycle: uninitialized -> initializing -> ready. Initialize loads the
// index exactly once; every other operation fails fast with
// core.ErrNotInitialized before that. After initialization the index is
// read-only, so concurrent searches are safe; the two LRU caches serialize
// their own mutations internally.
type KnowledgeBase struct {
	source   corpus.Source
	loader   corpus.ContentLoader
	scorer   search.Scorer
	strategy search.Strategy
	logger   *slog.Logger

	resultCacheSize  int
	contentCacheSize int
	cacheTTL         time.Duration
	buildOpts        []index.Option

	initOnce sync.Once
	initErr  error
	ready    atomic.Bool
	index    *index.Index

	resultCache  *cache.LRU[*core.SearchResult]
	contentCache *cache.LRU[string]
}

// Option configures a KnowledgeBase.
type Option func(*KnowledgeBase) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(kb *KnowledgeBase) error {
		if logger == nil {
			logger = slog.Default()
		}
		kb.logger = logger
		return nil
	}
}

// WithScoringStrategy selects the scoring strategy for the search path.
// Default is search.StrategyKeyword.
func WithScoringStrategy(strategy search.Strategy) Option {
	return func(kb *KnowledgeBase) error {
		kb.strategy = strategy
		kb.scorer = search.NewScorer(strategy)
		return nil
	}
}

// WithResultCacheSize bounds the search-result cache.
func WithResultCacheSize(size int) Option {
	return func(kb *KnowledgeBase) error {
		kb.resultCacheSize = size
		return nil
	}
}

// WithContentCacheSize bounds the document-body cache.
func WithContentCacheSize(size int) Option {
	return func(kb *KnowledgeBase) error {
		kb.contentCacheSize = size
		return nil
	}
}

// WithCacheTTL sets the default TTL for both caches.
func WithCacheTTL(ttl time.Duration) Option {
	return func(kb *KnowledgeBase) error {
		kb.cacheTTL = ttl
		return nil
	}
}

// WithIndexOptions forwards options to the index builder.
func WithIndexOptions(opts ...index.Option) Option {
	return func(kb *KnowledgeBase) error {
		kb.buildOpts = append(kb.buildOpts, opts...)
		return nil
	}
}

// New creates a knowledge base over the given corpus collaborators.
// Call Initialize before querying.
func New(source corpus.Source, loader corpus.ContentLoader, opts ...Option) (*KnowledgeBase, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}
	if loader == nil {
		return nil, ErrLoaderRequired
	}

	kb := &KnowledgeBase{
		source:           source,
		loader:           loader,
		scorer:           search.NewKeywordScorer(),
		strategy:         search.StrategyKeyword,
		logger:           slog.Default(),
		resultCacheSize:  DefaultResultCacheSize,
		contentCacheSize: DefaultContentCacheSize,
		cacheTTL:         DefaultCacheTTL,
	}
	for _, opt := range opts {
		if err := opt(kb); err != nil {
			return nil, err
		}
	}

	// Two independent caches; their keyspaces are never shared.
	kb.resultCache = cache.New[*core.SearchResult](kb.resultCacheSize, kb.cacheTTL)
	kb.contentCache = cache.New[string](kb.contentCacheSize, kb.cacheTTL)
	return kb, nil
}

// Initialize loads the whole index into memory exactly once. Concurrent
// callers coalesce into one in-flight load; repeat calls after success are
// no-ops. A load failure poisons this instance — construct a fresh one to
// retry rather than patching in place.
func (kb *KnowledgeBase) Initialize(ctx context.Context) error {
	kb.initOnce.Do(func() {
		start := time.Now()

		resources, err := kb.source.Resources(ctx)
		if err != nil {
			kb.initErr = err
			return
		}

		builder, err := index.NewBuilder(append([]index.Option{index.WithLogger(kb.logger)}, kb.buildOpts...)...)
		if err != nil {
			kb.initErr = err
			return
		}

		ix, err := builder.Build(ctx, resources)
		if err != nil {
			kb.initErr = err
			return
		}

		kb.index = ix
		kb.ready.Store(true)
		kb.logger.Info("knowledge base initialized",
			"resources", ix.Len(),
			"elapsed", time.Since(start))
	})
	return kb.initErr
}

// Ready reports whether initialization has completed successfully.
func (kb *KnowledgeBase) Ready() bool {
	return kb.ready.Load()
}

func (kb *KnowledgeBase) requireReady() error {
	if !kb.ready.Load() {
		return core.ErrNotInitialized
	}
	return nil
}

// scored pairs a resource with its relevance score during ranking.
type scored struct {
	resource *core.Resource
	score    float64
}

// Search runs one query through the full pipeline: validate, check the
// result cache, filter, score, sort, paginate, facet, cache, return.
func (kb *KnowledgeBase) Search(ctx context.Context, query core.SearchQuery) (*core.SearchResult, error) {
	if err := kb.requireReady(); err != nil {
		return nil, err
	}

	kb.normalizeQuery(&query)
	if err := core.ValidateQuery(&query); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := query.CacheKey()
	if cached, ok := kb.resultCache.Get(key); ok {
		kb.logger.Debug("search cache hit", "key", key)
		hit := *cached
		hit.Cached = true
		return &hit, nil
	}

	start := time.Now()

	candidates := kb.index.Resources()
	if !query.Filters.Empty() {
		candidates = search.ApplyFilters(candidates, query.Filters)
	}

	matched := kb.scoreCandidates(candidates, query)
	kb.sortHits(matched, query.Sort)

	total := len(matched)
	page := paginate(matched, query.Offset, query.Limit)

	resources := make([]*core.Resource, len(page))
	for i, hit := range page {
		resources[i] = hit.resource
	}

	// Facets cover the full matched set, not the returned page, so filter
	// widgets show true global counts.
	full := make([]*core.Resource, len(matched))
	for i, hit := range matched {
		full[i] = hit.resource
	}

	result := &core.SearchResult{
		Resources:     resources,
		Total:         total,
		Facets:        search.AggregateFacets(full),
		ExecutionTime: time.Since(start),
	}

	kb.resultCache.Set(key, result)
	kb.logger.Debug("search executed",
		"keywords", len(query.Keywords),
		"total", total,
		"returned", len(resources),
		"elapsed", result.ExecutionTime)
	return result, nil
}

// normalizeQuery fills defaults before validation: the default page size,
// the default sort order, and keywords derived from the raw query when none
// were supplied.
func (kb *KnowledgeBase) normalizeQuery(query *core.SearchQuery) {
	if query.Limit <= 0 {
		query.Limit = DefaultLimit
	}
	if query.Sort == "" {
		query.Sort = core.SortByRelevance
	}
	if len(query.Keywords) == 0 && query.RawQuery != "" && kb.strategy == search.StrategyKeyword {
		query.Keywords = search.Tokenize(query.RawQuery)
	}
}

// scoreCandidates scores the filtered candidates. Documents scoring zero are
// excluded when the query carries terms; without terms every candidate
// passes through with score zero in corpus order.
func (kb *KnowledgeBase) scoreCandidates(candidates []*core.Resource, query core.SearchQuery) []scored {
	hasTerms := len(query.Keywords) > 0 ||
		(kb.strategy == search.StrategyWeightedJaccard && query.RawQuery != "")

	hits := make([]scored, 0, len(candidates))
	for _, r := range candidates {
		if !hasTerms {
			hits = append(hits, scored{resource: r})
			continue
		}
		score, _ := kb.scorer.Score(r, query)
		if score > 0 {
			hits = append(hits, scored{resource: r, score: score})
		}
	}
	return hits
}

// sortHits orders hits per the sort directive. Relevance sorts by
// descending score with shorter documents winning ties, then code for a
// stable total order.
func (kb *KnowledgeBase) sortHits(hits []scored, order core.SortOrder) {
	switch order {
	case core.SortByLines:
		sort.SliceStable(hits, func(i, j int) bool {
			return hits[i].resource.Lines < hits[j].resource.Lines
		})
	case core.SortByTitle:
		sort.SliceStable(hits, func(i, j int) bool {
			return hits[i].resource.Title < hits[j].resource.Title
		})
	default:
		sort.SliceStable(hits, func(i, j int) bool {
			if hits[i].score != hits[j].score {
				return hits[i].score > hits[j].score
			}
			if hits[i].resource.Lines != hits[j].resource.Lines {
				return hits[i].resource.Lines < hits[j].resource.Lines
			}
			return hits[i].resource.Code < hits[j].resource.Code
		})
	}
}

func paginate(hits []scored, offset, limit int) []scored {
	if offset >= len(hits) {
		return nil
	}
	end := offset + limit
	if end > len(hits) {
		end = len(hits)
	}
	return hits[offset:end]
}

// LoadResource returns a resource with its body text, loading and caching
// the body on first access. A loader failure degrades to a placeholder body
// rather than propagating: the contract is "always return something
// displayable". Unknown codes return a typed not-found error.
func (kb *KnowledgeBase) LoadResource(ctx context.Context, code string) (*core.Content, error) {
	if err := kb.requireReady(); err != nil {
		return nil, err
	}

	resource := kb.index.ByCode(code)
	if resource == nil {
		return nil, &core.NotFoundError{Code: code}
	}

	content := &core.Content{
		Resource: resource,
		Related:  kb.index.ByCodes(resource.Related),
	}

	if body, ok := kb.contentCache.Get(code); ok {
		content.Body = body
		return content, nil
	}

	body, err := kb.loader.LoadContent(ctx, resource.FilePath)
	if err != nil {
		kb.logger.Warn("content load failed, serving placeholder",
			"code", code, "locator", resource.FilePath, "err", err)
		content.Body = core.PlaceholderBody
		return content, nil
	}

	kb.contentCache.Set(code, body)
	content.Body = body
	return content, nil
}

// GetResourcesByCodes resolves codes to resources, skipping unknown codes.
func (kb *KnowledgeBase) GetResourcesByCodes(codes []string) ([]*core.Resource, error) {
	if err := kb.requireReady(); err != nil {
		return nil, err
	}
	return kb.index.ByCodes(codes), nil
}

// GetResourcesByCategory returns all resources tagged with the category.
// Unknown categories yield an empty list, never an error.
func (kb *KnowledgeBase) GetResourcesByCategory(category string) ([]*core.Resource, error) {
	if err := kb.requireReady(); err != nil {
		return nil, err
	}
	return kb.index.ByCategory(category), nil
}

// GetResourcesByAuthor returns all resources by the author.
func (kb *KnowledgeBase) GetResourcesByAuthor(author string) ([]*core.Resource, error) {
	if err := kb.requireReady(); err != nil {
		return nil, err
	}
	return kb.index.ByAuthor(author), nil
}

// GetResourcesByType returns all resources of the given type.
func (kb *KnowledgeBase) GetResourcesByType(resourceType core.ResourceType) ([]*core.Resource, error) {
	if err := kb.requireReady(); err != nil {
		return nil, err
	}
	return kb.index.ByType(resourceType), nil
}

// GetResourcesByStage returns all resources applicable to the stage.
func (kb *KnowledgeBase) GetResourcesByStage(stage core.FounderStage) ([]*core.Resource, error) {
	if err := kb.requireReady(); err != nil {
		return nil, err
	}
	return kb.index.ByStage(stage), nil
}

// GetCategories lists the category vocabulary with per-category counts.
func (kb *KnowledgeBase) GetCategories() (*core.CategoryListing, error) {
	if err := kb.requireReady(); err != nil {
		return nil, err
	}

	categories := kb.index.Categories()
	listing := &core.CategoryListing{
		Categories:     make([]core.CategoryInfo, 0, len(categories)),
		TotalResources: kb.index.Len(),
	}
	for _, c := range categories {
		listing.Categories = append(listing.Categories, core.CategoryInfo{
			ID:    c,
			Name:  c,
			Count: kb.index.CategoryCount(c),
		})
	}
	return listing, nil
}

// GetStats summarizes the loaded index and cache occupancy.
func (kb *KnowledgeBase) GetStats() (*core.Stats, error) {
	if err := kb.requireReady(); err != nil {
		return nil, err
	}
	return &core.Stats{
		TotalResources:   kb.index.Len(),
		ByType:           kb.index.CountByType(),
		Categories:       len(kb.index.Categories()),
		Authors:          len(kb.index.Authors()),
		ResultCacheSize:  kb.resultCache.Len(),
		ContentCacheSize: kb.contentCache.Len(),
	}, nil
}

// ClearCache empties both LRU caches. The loaded index is untouched.
func (kb *KnowledgeBase) ClearCache() {
	kb.resultCache.Clear()
	kb.contentCache.Clear()
}
