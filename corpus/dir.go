package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/poiesic/knowbase/core"
	"gopkg.in/yaml.v3"
)

// ManifestName is the catalog file a corpus directory must contain.
const ManifestName = "manifest.yaml"

// Dir reads a corpus from a directory: a YAML manifest listing the resource
// records, with body files alongside addressed by each record's FilePath.
type Dir struct {
	root   string
	logger *slog.Logger
}

var (
	_ Source        = (*Dir)(nil)
	_ ContentLoader = (*Dir)(nil)
)

// DirOption configures a Dir.
type DirOption func(*Dir)

// WithDirLogger sets a custom logger. Default is slog.Default().
func WithDirLogger(logger *slog.Logger) DirOption {
	return func(d *Dir) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDir creates a directory corpus rooted at root.
func NewDir(root string, opts ...DirOption) *Dir {
	d := &Dir{root: root, logger: slog.Default()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type manifest struct {
	Resources []*core.Resource `yaml:"resources"`
}

// Resources parses the manifest and returns its records.
func (d *Dir) Resources(_ context.Context) ([]*core.Resource, error) {
	path := filepath.Join(d.root, ManifestName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifestInvalid, err)
	}

	d.logger.Debug("corpus manifest loaded", "root", d.root, "resources", len(m.Resources))
	return m.Resources, nil
}

// LoadContent reads the body file behind the locator. Locators escaping the
// corpus root are rejected.
func (d *Dir) LoadContent(_ context.Context, locator string) (string, error) {
	cleaned := filepath.Clean(locator)
	if filepath.IsAbs(cleaned) || strings.HasPrefix(cleaned, "..") {
		return "", fmt.Errorf("%w: locator %q escapes corpus root", ErrContentNotFound, locator)
	}

	data, err := os.ReadFile(filepath.Join(d.root, cleaned))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %q", ErrContentNotFound, locator)
		}
		return "", fmt.Errorf("read content: %w", err)
	}
	return string(data), nil
}
