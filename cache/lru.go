package cache

import (
	"container/list"
	"sync"
	"time"
)

// LRU is a bounded in-memory cache with per-entry TTL and least-recently-used
// eviction. All operations are serialized by an internal mutex, so a single
// instance is safe for concurrent use.
//
// The knowledge base owns two independent instances: one for loaded document
// bodies and one for whole search-result pages. The two keyspaces are never
// shared.
type LRU[V any] struct {
	mu         sync.Mutex
	maxSize    int
	defaultTTL time.Duration
	order      *list.List // front = most recently used
	entries    map[string]*list.Element
}

type entry[V any] struct {
	key       string
	value     V
	writtenAt time.Time
	ttl       time.Duration
}

// New creates an LRU cache bounded to maxSize entries. Entries written
// without an explicit TTL expire after defaultTTL. A maxSize below one is
// clamped to one.
func New[V any](maxSize int, defaultTTL time.Duration) *LRU[V] {
	if maxSize < 1 {
		maxSize = 1
	}
	return &LRU[V]{
		maxSize:    maxSize,
		defaultTTL: defaultTTL,
		order:      list.New(),
		entries:    make(map[string]*list.Element, maxSize),
	}
}

// Get returns the cached value for key. An expired entry is evicted and
// reported as a miss. A hit refreshes the entry's recency.
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	el, ok := c.entries[key]
	if !ok {
		return zero, false
	}

	e := el.Value.(*entry[V])
	if time.Since(e.writtenAt) >= e.ttl {
		c.order.Remove(el)
		delete(c.entries, key)
		return zero, false
	}

	c.order.MoveToFront(el)
	return e.value, true
}

// Set stores value under key with the cache's default TTL.
func (c *LRU[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.defaultTTL)
}

// SetWithTTL stores value under key with an entry-specific TTL. A zero or
// negative TTL expires the entry immediately. When the cache is at capacity
// and the key is new, the least-recently-used entry is evicted first.
func (c *LRU[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		e := el.Value.(*entry[V])
		e.value = value
		e.writtenAt = time.Now()
		e.ttl = ttl
		c.order.MoveToFront(el)
		return
	}

	if c.order.Len() >= c.maxSize {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*entry[V]).key)
		}
	}

	c.entries[key] = c.order.PushFront(&entry[V]{
		key:       key,
		value:     value,
		writtenAt: time.Now(),
		ttl:       ttl,
	})
}

// Len returns the number of entries currently held, including entries whose
// TTL has elapsed but which have not been touched since.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear empties the cache.
func (c *LRU[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	clear(c.entries)
}
