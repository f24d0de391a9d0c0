package refcache

import (
	"container/list"
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"longbox/internal/textutil"
)

// DefaultMaxEntries bounds the cache when no explicit cap is supplied.
const DefaultMaxEntries = 512

// NormalizeKey folds case and collapses whitespace so trivially different
// search terms share one cache slot.
func NormalizeKey(terms string) string {
	return textutil.CollapseWhitespace(strings.ToLower(terms))
}

// Cache is a bounded, fetch-coalescing memoization cache. The zero value is
// not usable; construct with New.
type Cache[V any] struct {
	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List // front is most recently used
	max     int
	group   singleflight.Group
}

type cacheEntry[V any] struct {
	key   string
	value V
}

// New creates a cache bounded to maxEntries. Zero or negative applies
// DefaultMaxEntries.
func New[V any](maxEntries int) *Cache[V] {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Cache[V]{
		entries: make(map[string]*list.Element),
		order:   list.New(),
		max:     maxEntries,
	}
}

// GetOrFetch returns the cached value for key, invoking fetch on a miss.
// Successful fetch results are stored; errors are returned to every waiting
// caller and nothing is cached, so transient failures stay retryable.
// Concurrent callers for one key share a single in-flight fetch.
func (c *Cache[V]) GetOrFetch(ctx context.Context, key string, fetch func(ctx context.Context) (V, error)) (V, error) {
	if value, ok := c.lookup(key); ok {
		return value, nil
	}

	result, err, _ := c.group.Do(key, func() (any, error) {
		// A concurrent caller may have populated the slot while this
		// caller was queueing behind the flight group.
		if value, ok := c.lookup(key); ok {
			return value, nil
		}
		value, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.store(key, value)
		return value, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return result.(V), nil
}

// Lookup returns the cached value without fetching.
func (c *Cache[V]) Lookup(key string) (V, bool) {
	return c.lookup(key)
}

// Len returns the number of cached entries.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear drops every cached entry.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*list.Element)
	c.order.Init()
}

func (c *Cache[V]) lookup(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	elem, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*cacheEntry[V]).value, true
}

func (c *Cache[V]) store(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.entries[key]; ok {
		elem.Value.(*cacheEntry[V]).value = value
		c.order.MoveToFront(elem)
		return
	}
	c.entries[key] = c.order.PushFront(&cacheEntry[V]{key: key, value: value})
	for len(c.entries) > c.max {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry[V]).key)
	}
}
