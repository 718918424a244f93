package corpus

import (
	"context"
	"fmt"
	"sync"

	"github.com/poiesic/knowbase/core"
)

// Static is an in-memory Source and ContentLoader. It backs tests and small
// embedded corpora.
//
// LoadFunc, when set, replaces the body lookup entirely; tests use it to
// inject loader failures.
type Static struct {
	LoadFunc func(ctx context.Context, locator string) (string, error)

	mu        sync.RWMutex
	resources []*core.Resource
	bodies    map[string]string
}

var (
	_ Source        = (*Static)(nil)
	_ ContentLoader = (*Static)(nil)
)

// NewStatic creates a static corpus over the given records.
func NewStatic(resources ...*core.Resource) *Static {
	return &Static{
		resources: resources,
		bodies:    make(map[string]string),
	}
}

// SetBody registers body text under a locator.
func (s *Static) SetBody(locator, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bodies[locator] = body
}

// Resources returns the configured records.
func (s *Static) Resources(_ context.Context) ([]*core.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resources, nil
}

// LoadContent returns the registered body for the locator.
func (s *Static) LoadContent(ctx context.Context, locator string) (string, error) {
	if s.LoadFunc != nil {
		return s.LoadFunc(ctx, locator)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	body, ok := s.bodies[locator]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrContentNotFound, locator)
	}
	return body, nil
}
