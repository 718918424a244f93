package index

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/knowbase/core"
	"github.com/poiesic/knowbase/search"
)

// Builder constructs an Index from a flat resource list. Tokenization of the
// searchable fields runs concurrently on a worker pool; the inverted maps
// are assembled sequentially afterwards.
type Builder struct {
	poolSize  int
	tokenizer *search.Tokenizer
	logger    *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder) error

// WithPoolSize sets the tokenization worker pool size.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(b *Builder) error {
		if size < 1 {
			size = 1
		}
		b.poolSize = size
		return nil
	}
}

// WithTokenizer sets a custom tokenizer.
// Default is the CJK-aware tokenizer, since the corpus carries Chinese text.
func WithTokenizer(tokenizer *search.Tokenizer) Option {
	return func(b *Builder) error {
		if tokenizer == nil {
			return fmt.Errorf("tokenizer must not be nil")
		}
		b.tokenizer = tokenizer
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBuilder creates an index builder.
func NewBuilder(opts ...Option) (*Builder, error) {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	b := &Builder{
		poolSize:  poolSize,
		tokenizer: search.NewCJKTokenizer(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Build validates every record and assembles the inverted indices. Any
// invalid record or duplicate code fails the whole build: a partial index is
// never returned.
func (b *Builder) Build(ctx context.Context, resources []*core.Resource) (*Index, error) {
	ix := &Index{
		resources:  make([]*core.Resource, 0, len(resources)),
		byCode:     make(map[string]*core.Resource, len(resources)),
		byCategory: make(map[string][]string),
		byAuthor:   make(map[string][]string),
		byType:     make(map[core.ResourceType][]string),
		byStage:    make(map[core.FounderStage][]string),
		byKeyword:  make(map[string][]string),
	}

	for _, r := range resources {
		if err := core.ValidateResource(r); err != nil {
			return nil, err
		}
		if _, exists := ix.byCode[r.Code]; exists {
			return nil, fmt.Errorf("%w: %q", core.ErrDuplicateCode, r.Code)
		}
		ix.byCode[r.Code] = r
		ix.resources = append(ix.resources, r)

		for _, topic := range r.Topics {
			ix.byCategory[topic] = append(ix.byCategory[topic], r.Code)
		}
		if r.Author != "" {
			ix.byAuthor[r.Author] = append(ix.byAuthor[r.Author], r.Code)
		}
		ix.byType[r.Type] = append(ix.byType[r.Type], r.Code)
		for _, stage := range r.Stages {
			ix.byStage[stage] = append(ix.byStage[stage], r.Code)
		}
	}

	tokens, err := b.tokenizeAll(ctx, ix.resources)
	if err != nil {
		return nil, err
	}

	for i, r := range ix.resources {
		seen := make(map[string]struct{}, len(tokens[i]))
		for _, tok := range tokens[i] {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			ix.byKeyword[tok] = append(ix.byKeyword[tok], r.Code)
		}
	}

	b.logger.Debug("index built",
		"resources", len(ix.resources),
		"categories", len(ix.byCategory),
		"keywords", len(ix.byKeyword))
	return ix, nil
}

// tokenizeAll tokenizes the searchable fields of every resource on the
// worker pool. Each worker writes only its own slot, so no locking is
// needed around the results slice.
func (b *Builder) tokenizeAll(ctx context.Context, resources []*core.Resource) ([][]string, error) {
	pool, err := ants.NewPool(b.poolSize)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	tokens := make([][]string, len(resources))
	var wg sync.WaitGroup

	for i, r := range resources {
		if err := ctx.Err(); err != nil {
			break
		}

		wg.Add(1)
		i, r := i, r
		if submitErr := pool.Submit(func() {
			defer wg.Done()
			tokens[i] = b.tokenizer.Tokenize(searchableText(r))
		}); submitErr != nil {
			wg.Done()
			wg.Wait()
			return nil, submitErr
		}
	}

	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}

func searchableText(r *core.Resource) string {
	parts := []string{r.Title, r.Author, strings.Join(r.Topics, " "), r.Summary}
	return strings.Join(parts, " ")
}
