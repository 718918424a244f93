package badgerdb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/poiesic/knowbase/core"
	"github.com/poiesic/knowbase/corpus"
)

// Key prefixes for the two record kinds.
const (
	resourcePrefix = "res:"
	bodyPrefix     = "body:"
)

func resourceKey(code string) []byte {
	return []byte(resourcePrefix + code)
}

func bodyKey(locator string) []byte {
	return []byte(bodyPrefix + locator)
}

// Store is a BadgerDB-backed packed library.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

var (
	_ corpus.Source        = (*Store)(nil)
	_ corpus.ContentLoader = (*Store)(nil)
)

// badgerLoggerAdapter adapts slog.Logger to badger.Logger.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// Open opens a packed library at the given directory, creating it if needed.
func Open(path string, inMemory bool) (*Store, error) {
	var opts badger.Options

	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(path, 0755); err != nil {
					return nil, err
				}
				info, err = os.Stat(path)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", path)
		}
		opts = badger.DefaultOptions(path)
	}

	opts.Logger = &badgerLoggerAdapter{logger: slog.Default()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Store{db: db, logger: slog.Default()}, nil
}

// OpenMemory opens an in-memory store, used by tests.
func OpenMemory() (*Store, error) {
	return Open("", true)
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Resources iterates the resource prefix and returns every record, sorted by
// code for a deterministic corpus order.
func (s *Store) Resources(ctx context.Context) ([]*core.Resource, error) {
	var resources []*core.Resource

	err := s.db.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(resourcePrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var r core.Resource
			if err := iter.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			}); err != nil {
				return fmt.Errorf("unmarshal resource %q: %w", iter.Item().Key(), err)
			}
			resources = append(resources, &r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(resources, func(i, j int) bool {
		return resources[i].Code < resources[j].Code
	})

	s.logger.Debug("packed library read", "resources", len(resources))
	return resources, nil
}

// LoadContent returns the body text stored under the locator.
func (s *Store) LoadContent(_ context.Context, locator string) (string, error) {
	var body string
	err := s.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get(bodyKey(locator))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return fmt.Errorf("%w: %q", corpus.ErrContentNotFound, locator)
			}
			return err
		}
		return item.Value(func(val []byte) error {
			body = string(val)
			return nil
		})
	})
	return body, err
}

// PutResource stores one resource record. Used while packing a library.
func (s *Store) PutResource(_ context.Context, resource *core.Resource) error {
	if err := core.ValidateResource(resource); err != nil {
		return err
	}
	data, err := json.Marshal(resource)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *badger.Txn) error {
		return tx.Set(resourceKey(resource.Code), data)
	})
}

// PutContent stores body text under a locator. Used while packing a library.
func (s *Store) PutContent(_ context.Context, locator, body string) error {
	return s.db.Update(func(tx *badger.Txn) error {
		return tx.Set(bodyKey(locator), []byte(body))
	})
}
