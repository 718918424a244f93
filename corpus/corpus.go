package corpus

import (
	"context"
	"errors"

	"github.com/poiesic/knowbase/core"
)

var (
	// ErrContentNotFound indicates a locator resolved to no content.
	ErrContentNotFound = errors.New("content not found")

	// ErrManifestInvalid indicates a corpus manifest failed to parse.
	ErrManifestInvalid = errors.New("invalid corpus manifest")
)

// Source supplies the parsed resource records the knowledge base indexes at
// initialization time. How the records were produced (file parsing, packed
// library, network fetch) is the implementation's concern.
type Source interface {
	// Resources returns the full flat resource list.
	Resources(ctx context.Context) ([]*core.Resource, error)
}

// ContentLoader resolves a resource's opaque locator to its raw body text.
// Loading is fallible; any timeout or retry policy belongs to the
// implementation, the knowledge base only awaits the result.
type ContentLoader interface {
	// LoadContent returns the body text behind the locator.
	LoadContent(ctx context.Context, locator string) (string, error)
}
