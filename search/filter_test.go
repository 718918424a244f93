package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poiesic/knowbase/core"
)

func filterFixtures() []*core.Resource {
	return []*core.Resource{
		{
			Code:   "8z",
			Title:  "How to Get Startup Ideas",
			Author: "Paul Graham",
			Type:   core.ResourceTypeEssay,
			Topics: []string{"idea"},
			Stages: []core.FounderStage{core.StagePreIdea, core.StageIdea},
			Lines:  420,
		},
		{
			Code:   "8g",
			Title:  "How to get startup ideas",
			Author: "Jared Friedman",
			Type:   core.ResourceTypeVideo,
			Topics: []string{"idea"},
			Stages: []core.FounderStage{core.StageIdea},
			Lines:  210,
		},
		{
			Code:   "91",
			Title:  "Why smart people have bad ideas",
			Author: "Paul Graham",
			Type:   core.ResourceTypeEssay,
			Topics: []string{"mindset"},
			Stages: []core.FounderStage{core.StageAll},
			Lines:  160,
		},
	}
}

func TestApplyFilters(t *testing.T) {
	resources := filterFixtures()

	t.Run("empty filters match everything", func(t *testing.T) {
		matched := ApplyFilters(resources, core.Filters{})
		assert.Len(t, matched, 3)
	})

	t.Run("category filter", func(t *testing.T) {
		matched := ApplyFilters(resources, core.Filters{Categories: []string{"idea"}})
		assert.Len(t, matched, 2)
	})

	t.Run("values within a dimension are ORed", func(t *testing.T) {
		matched := ApplyFilters(resources, core.Filters{Categories: []string{"idea", "mindset"}})
		assert.Len(t, matched, 3)
	})

	t.Run("dimensions are ANDed", func(t *testing.T) {
		matched := ApplyFilters(resources, core.Filters{
			Categories: []string{"idea"},
			Authors:    []string{"Paul Graham"},
		})
		assert.Len(t, matched, 1)
		assert.Equal(t, "8z", matched[0].Code)
	})

	t.Run("type filter", func(t *testing.T) {
		matched := ApplyFilters(resources, core.Filters{Types: []core.ResourceType{core.ResourceTypeVideo}})
		assert.Len(t, matched, 1)
		assert.Equal(t, "8g", matched[0].Code)
	})

	t.Run("stage filter", func(t *testing.T) {
		matched := ApplyFilters(resources, core.Filters{Stages: []core.FounderStage{core.StagePreIdea}})
		assert.Len(t, matched, 1)
		assert.Equal(t, "8z", matched[0].Code)
	})

	t.Run("line range", func(t *testing.T) {
		matched := ApplyFilters(resources, core.Filters{MinLines: 200, MaxLines: 300})
		assert.Len(t, matched, 1)
		assert.Equal(t, "8g", matched[0].Code)
	})

	t.Run("min lines only", func(t *testing.T) {
		matched := ApplyFilters(resources, core.Filters{MinLines: 200})
		assert.Len(t, matched, 2)
	})

	t.Run("no match yields empty not nil error", func(t *testing.T) {
		matched := ApplyFilters(resources, core.Filters{Authors: []string{"Sam Altman"}})
		assert.Empty(t, matched)
	})

	t.Run("preserves input order", func(t *testing.T) {
		matched := ApplyFilters(resources, core.Filters{Authors: []string{"Paul Graham"}})
		assert.Equal(t, "8z", matched[0].Code)
		assert.Equal(t, "91", matched[1].Code)
	})

	t.Run("adding a dimension never grows the result", func(t *testing.T) {
		base := ApplyFilters(resources, core.Filters{Categories: []string{"idea"}})
		narrowed := ApplyFilters(resources, core.Filters{
			Categories: []string{"idea"},
			Types:      []core.ResourceType{core.ResourceTypeEssay},
		})
		assert.LessOrEqual(t, len(narrowed), len(base))
		for _, r := range narrowed {
			assert.Contains(t, base, r)
		}
	})
}
