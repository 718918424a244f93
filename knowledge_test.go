package knowbase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/knowbase/core"
	"github.com/poiesic/knowbase/corpus"
	"github.com/poiesic/knowbase/search"
)

func testCorpus() *corpus.Static {
	src := corpus.NewStatic(
		&core.Resource{
			Code:     "8z",
			Title:    "How to Get Startup Ideas",
			Author:   "Paul Graham",
			Type:     core.ResourceTypeEssay,
			Topics:   []string{"idea"},
			Stages:   []core.FounderStage{core.StagePreIdea, core.StageIdea},
			Lines:    420,
			FilePath: "essays/8z.md",
			Related:  []string{"8g", "zz"},
		},
		&core.Resource{
			Code:     "8g",
			Title:    "How to get startup ideas",
			Author:   "Jared Friedman",
			Type:     core.ResourceTypeVideo,
			Topics:   []string{"idea"},
			Stages:   []core.FounderStage{core.StageIdea},
			Lines:    210,
			FilePath: "transcripts/8g.md",
		},
		&core.Resource{
			Code:     "DU",
			Title:    "Where do great startup ideas come from",
			Author:   "Courtland Allen",
			Type:     core.ResourceTypePodcast,
			Topics:   []string{"idea", "founders"},
			Stages:   []core.FounderStage{core.StagePreIdea},
			Lines:    980,
			FilePath: "podcasts/DU.md",
		},
		&core.Resource{
			Code:     "91",
			Title:    "Why smart people have bad ideas",
			Author:   "Paul Graham",
			Type:     core.ResourceTypeEssay,
			Topics:   []string{"mindset"},
			Stages:   []core.FounderStage{core.StageAll},
			Lines:    160,
			FilePath: "essays/91.md",
		},
	)
	src.SetBody("essays/8z.md", "The way to get startup ideas is to notice problems.")
	src.SetBody("transcripts/8g.md", "Welcome to the lecture on startup ideas.")
	src.SetBody("podcasts/DU.md", "Today we ask where great ideas come from.")
	src.SetBody("essays/91.md", "Smart people can rationalize bad ideas.")
	return src
}

func newTestKB(t *testing.T, opts ...Option) *KnowledgeBase {
	t.Helper()
	kb, err := New(testCorpus(), testCorpus(), opts...)
	require.NoError(t, err)
	require.NoError(t, kb.Initialize(context.Background()))
	return kb
}

func TestNew(t *testing.T) {
	src := testCorpus()

	t.Run("valid configuration", func(t *testing.T) {
		kb, err := New(src, src)
		require.NoError(t, err)
		assert.NotNil(t, kb)
		assert.False(t, kb.Ready())
	})

	t.Run("nil source", func(t *testing.T) {
		_, err := New(nil, src)
		assert.Equal(t, ErrSourceRequired, err)
	})

	t.Run("nil loader", func(t *testing.T) {
		_, err := New(src, nil)
		assert.Equal(t, ErrLoaderRequired, err)
	})

	t.Run("with options", func(t *testing.T) {
		kb, err := New(src, src,
			WithScoringStrategy(search.StrategyWeightedJaccard),
			WithResultCacheSize(10),
			WithContentCacheSize(5),
			WithCacheTTL(time.Minute),
		)
		require.NoError(t, err)
		assert.NotNil(t, kb)
	})
}

func TestInitialize(t *testing.T) {
	t.Run("operations before initialize fail fast", func(t *testing.T) {
		src := testCorpus()
		kb, err := New(src, src)
		require.NoError(t, err)

		_, err = kb.Search(context.Background(), core.SearchQuery{RawQuery: "startup"})
		assert.ErrorIs(t, err, core.ErrNotInitialized)

		_, err = kb.LoadResource(context.Background(), "8z")
		assert.ErrorIs(t, err, core.ErrNotInitialized)

		_, err = kb.GetStats()
		assert.ErrorIs(t, err, core.ErrNotInitialized)
	})

	t.Run("repeat initialize is a no-op", func(t *testing.T) {
		kb := newTestKB(t)
		require.NoError(t, kb.Initialize(context.Background()))
		assert.True(t, kb.Ready())
	})

	t.Run("source failure poisons the instance", func(t *testing.T) {
		src := testCorpus()
		fail := &failingSource{err: errors.New("corpus unreachable")}
		kb, err := New(fail, src)
		require.NoError(t, err)

		require.Error(t, kb.Initialize(context.Background()))
		assert.False(t, kb.Ready())

		// The failure is sticky.
		assert.Error(t, kb.Initialize(context.Background()))
	})
}

type failingSource struct{ err error }

func (f *failingSource) Resources(context.Context) ([]*core.Resource, error) {
	return nil, f.err
}

func TestSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("ranks title relevance", func(t *testing.T) {
		kb := newTestKB(t)
		result, err := kb.Search(ctx, core.SearchQuery{
			Keywords: []string{"startup", "ideas"},
			Limit:    3,
		})
		require.NoError(t, err)

		assert.Equal(t, 4, result.Total)
		require.Len(t, result.Resources, 3)

		// The two near-exact titles outrank the partial matches; the
		// shorter document wins their tie.
		assert.Equal(t, "8g", result.Resources[0].Code)
		assert.Equal(t, "8z", result.Resources[1].Code)

		codes := []string{result.Resources[0].Code, result.Resources[1].Code, result.Resources[2].Code}
		assert.NotContains(t, codes, "91")
	})

	t.Run("facets cover the full matched set", func(t *testing.T) {
		kb := newTestKB(t)
		result, err := kb.Search(ctx, core.SearchQuery{
			Keywords: []string{"startup", "ideas"},
			Limit:    2,
		})
		require.NoError(t, err)

		assert.Len(t, result.Resources, 2)
		assert.Equal(t, 3, result.Facets.Categories["idea"])
		assert.Equal(t, 1, result.Facets.Categories["founders"])
		assert.Equal(t, 1, result.Facets.Categories["mindset"])
	})

	t.Run("raw query derives keywords", func(t *testing.T) {
		kb := newTestKB(t)
		result, err := kb.Search(ctx, core.SearchQuery{RawQuery: "How to get startup ideas?"})
		require.NoError(t, err)
		assert.Equal(t, 4, result.Total)
	})

	t.Run("empty query returns the whole corpus", func(t *testing.T) {
		kb := newTestKB(t)
		result, err := kb.Search(ctx, core.SearchQuery{})
		require.NoError(t, err)
		assert.Equal(t, 4, result.Total)
		assert.Len(t, result.Resources, 4)
	})

	t.Run("filters narrow before scoring", func(t *testing.T) {
		kb := newTestKB(t)
		result, err := kb.Search(ctx, core.SearchQuery{
			Keywords: []string{"startup", "ideas"},
			Filters:  core.Filters{Types: []core.ResourceType{core.ResourceTypeEssay}},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, result.Total)
		assert.Equal(t, "8z", result.Resources[0].Code)
		assert.Equal(t, "91", result.Resources[1].Code)
	})

	t.Run("filter only search orders by length then code", func(t *testing.T) {
		kb := newTestKB(t)
		result, err := kb.Search(ctx, core.SearchQuery{
			Filters: core.Filters{Categories: []string{"idea"}},
		})
		require.NoError(t, err)
		assert.Equal(t, 3, result.Total)
		assert.Equal(t, "8g", result.Resources[0].Code)
		assert.Equal(t, "8z", result.Resources[1].Code)
		assert.Equal(t, "DU", result.Resources[2].Code)
	})

	t.Run("pagination", func(t *testing.T) {
		kb := newTestKB(t)
		result, err := kb.Search(ctx, core.SearchQuery{Limit: 2, Offset: 2})
		require.NoError(t, err)
		assert.Equal(t, 4, result.Total)
		assert.Len(t, result.Resources, 2)
	})

	t.Run("offset past the end", func(t *testing.T) {
		kb := newTestKB(t)
		result, err := kb.Search(ctx, core.SearchQuery{Offset: 10})
		require.NoError(t, err)
		assert.Equal(t, 4, result.Total)
		assert.Empty(t, result.Resources)
	})

	t.Run("sort by lines", func(t *testing.T) {
		kb := newTestKB(t)
		result, err := kb.Search(ctx, core.SearchQuery{Sort: core.SortByLines})
		require.NoError(t, err)
		assert.Equal(t, "91", result.Resources[0].Code)
		assert.Equal(t, "DU", result.Resources[3].Code)
	})

	t.Run("sort by title", func(t *testing.T) {
		kb := newTestKB(t)
		result, err := kb.Search(ctx, core.SearchQuery{Sort: core.SortByTitle})
		require.NoError(t, err)
		assert.Equal(t, "How to Get Startup Ideas", result.Resources[0].Title)
	})

	t.Run("invalid query", func(t *testing.T) {
		kb := newTestKB(t)
		_, err := kb.Search(ctx, core.SearchQuery{Offset: -1})
		assert.ErrorIs(t, err, core.ErrInvalidQuery)

		var iqe *core.InvalidQueryError
		assert.ErrorAs(t, err, &iqe)
	})

	t.Run("unknown filter type rejected", func(t *testing.T) {
		kb := newTestKB(t)
		_, err := kb.Search(ctx, core.SearchQuery{
			Filters: core.Filters{Types: []core.ResourceType{"webinar"}},
		})
		assert.ErrorIs(t, err, core.ErrInvalidQuery)
	})

	t.Run("idempotent", func(t *testing.T) {
		kb := newTestKB(t)
		query := core.SearchQuery{Keywords: []string{"startup", "ideas"}}

		first, err := kb.Search(ctx, query)
		require.NoError(t, err)
		second, err := kb.Search(ctx, query)
		require.NoError(t, err)

		assert.Equal(t, first.Total, second.Total)
		require.Equal(t, len(first.Resources), len(second.Resources))
		for i := range first.Resources {
			assert.Equal(t, first.Resources[i].Code, second.Resources[i].Code)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		kb := newTestKB(t)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := kb.Search(cancelled, core.SearchQuery{Keywords: []string{"startup"}})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestSearchCaching(t *testing.T) {
	ctx := context.Background()
	kb := newTestKB(t)
	query := core.SearchQuery{Keywords: []string{"startup", "ideas"}}

	first, err := kb.Search(ctx, query)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := kb.Search(ctx, query)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Total, second.Total)

	t.Run("different pagination misses", func(t *testing.T) {
		paged := query
		paged.Offset = 1
		result, err := kb.Search(ctx, paged)
		require.NoError(t, err)
		assert.False(t, result.Cached)
	})

	t.Run("clear cache forgets results", func(t *testing.T) {
		kb.ClearCache()
		result, err := kb.Search(ctx, query)
		require.NoError(t, err)
		assert.False(t, result.Cached)
	})
}

func TestSearchWeightedJaccardStrategy(t *testing.T) {
	kb := newTestKB(t, WithScoringStrategy(search.StrategyWeightedJaccard))

	result, err := kb.Search(context.Background(), core.SearchQuery{RawQuery: "startup ideas"})
	require.NoError(t, err)

	assert.NotZero(t, result.Total)
	top := result.Resources[0]
	assert.Contains(t, []string{"8z", "8g"}, top.Code)
}

func TestLoadResource(t *testing.T) {
	ctx := context.Background()

	t.Run("loads body and related", func(t *testing.T) {
		kb := newTestKB(t)
		content, err := kb.LoadResource(ctx, "8z")
		require.NoError(t, err)

		assert.Equal(t, "8z", content.Resource.Code)
		assert.Equal(t, "The way to get startup ideas is to notice problems.", content.Body)

		// "zz" dangles and is silently skipped.
		require.Len(t, content.Related, 1)
		assert.Equal(t, "8g", content.Related[0].Code)
	})

	t.Run("unknown code", func(t *testing.T) {
		kb := newTestKB(t)
		_, err := kb.LoadResource(ctx, "zz")
		assert.ErrorIs(t, err, core.ErrNotFound)

		var nfe *core.NotFoundError
		require.ErrorAs(t, err, &nfe)
		assert.Equal(t, "zz", nfe.Code)
	})

	t.Run("loader failure degrades to placeholder", func(t *testing.T) {
		src := testCorpus()
		boom := errors.New("disk on fire")
		src.LoadFunc = func(ctx context.Context, locator string) (string, error) {
			return "", boom
		}

		kb, err := New(src, src)
		require.NoError(t, err)
		require.NoError(t, kb.Initialize(ctx))

		content, err := kb.LoadResource(ctx, "8z")
		require.NoError(t, err)
		assert.Equal(t, core.PlaceholderBody, content.Body)

		// Placeholders are not cached; recovery serves real content.
		src.LoadFunc = nil
		content, err = kb.LoadResource(ctx, "8z")
		require.NoError(t, err)
		assert.NotEqual(t, core.PlaceholderBody, content.Body)
	})

	t.Run("second load hits the content cache", func(t *testing.T) {
		src := testCorpus()
		calls := 0
		inner := testCorpus()
		src.LoadFunc = func(ctx context.Context, locator string) (string, error) {
			calls++
			return inner.LoadContent(ctx, locator)
		}

		kb, err := New(src, src)
		require.NoError(t, err)
		require.NoError(t, kb.Initialize(ctx))

		_, err = kb.LoadResource(ctx, "8z")
		require.NoError(t, err)
		_, err = kb.LoadResource(ctx, "8z")
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})
}

func TestLookupAccessors(t *testing.T) {
	kb := newTestKB(t)

	t.Run("by codes", func(t *testing.T) {
		resources, err := kb.GetResourcesByCodes([]string{"8z", "zz", "91"})
		require.NoError(t, err)
		assert.Len(t, resources, 2)
	})

	t.Run("by category", func(t *testing.T) {
		resources, err := kb.GetResourcesByCategory("idea")
		require.NoError(t, err)
		assert.Len(t, resources, 3)

		resources, err = kb.GetResourcesByCategory("nonexistent")
		require.NoError(t, err)
		assert.Empty(t, resources)
	})

	t.Run("by author", func(t *testing.T) {
		resources, err := kb.GetResourcesByAuthor("Paul Graham")
		require.NoError(t, err)
		assert.Len(t, resources, 2)
	})

	t.Run("by type", func(t *testing.T) {
		resources, err := kb.GetResourcesByType(core.ResourceTypePodcast)
		require.NoError(t, err)
		assert.Len(t, resources, 1)
		assert.Equal(t, "DU", resources[0].Code)
	})

	t.Run("by stage", func(t *testing.T) {
		resources, err := kb.GetResourcesByStage(core.StagePreIdea)
		require.NoError(t, err)
		assert.Len(t, resources, 2)
	})
}

func TestGetCategories(t *testing.T) {
	kb := newTestKB(t)

	listing, err := kb.GetCategories()
	require.NoError(t, err)

	assert.Equal(t, 4, listing.TotalResources)
	require.Len(t, listing.Categories, 3)
	assert.Equal(t, "founders", listing.Categories[0].Name)
	assert.Equal(t, "idea", listing.Categories[1].Name)
	assert.Equal(t, 3, listing.Categories[1].Count)
	assert.Equal(t, "mindset", listing.Categories[2].Name)
}

func TestGetStats(t *testing.T) {
	ctx := context.Background()
	kb := newTestKB(t)

	stats, err := kb.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalResources)
	assert.Equal(t, 3, stats.Categories)
	assert.Equal(t, 3, stats.Authors)
	assert.Equal(t, 2, stats.ByType[core.ResourceTypeEssay])
	assert.Equal(t, 0, stats.ResultCacheSize)

	_, err = kb.Search(ctx, core.SearchQuery{Keywords: []string{"startup"}})
	require.NoError(t, err)

	stats, err = kb.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ResultCacheSize)
}

func TestConcurrentSearches(t *testing.T) {
	ctx := context.Background()
	kb := newTestKB(t)

	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			_, err := kb.Search(ctx, core.SearchQuery{Keywords: []string{"startup", "ideas"}})
			done <- err
		}()
	}
	for i := 0; i < 8; i++ {
		assert.NoError(t, <-done)
	}
}
