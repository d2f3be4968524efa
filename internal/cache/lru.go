// Package cache provides caching utilities for repeated scans.
package cache

import (
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/usestring/jsonlscan/pkg/shape"
)

// Key identifies one file's partial aggregate. A file that changes size or
// modification time, or is read with a different line cap, misses.
type Key struct {
	Path     string
	Size     int64
	ModTime  time.Time
	MaxLines int
}

func (k Key) normalized() Key {
	// Monotonic clock readings and locations must not affect equality.
	k.ModTime = k.ModTime.UTC().Round(0)
	return k
}

// Entry is the cached result of reading one file.
type Entry struct {
	Aggregate  *shape.Aggregator
	LinesRead  int
	ErrorLines *roaring.Bitmap
}

func (e Entry) clone() Entry {
	out := Entry{LinesRead: e.LinesRead, Aggregate: e.Aggregate.Clone()}
	if e.ErrorLines != nil {
		out.ErrorLines = e.ErrorLines.Clone()
	} else {
		out.ErrorLines = roaring.New()
	}
	return out
}

// AggregateCache provides thread-safe LRU caching of per-file aggregates.
// Stored and returned entries are copies, so callers may merge into them freely.
type AggregateCache struct {
	cache *lru.Cache[Key, Entry]
}

// NewAggregateCache creates a new LRU cache with the specified maximum number of items.
func NewAggregateCache(maxItems int) (*AggregateCache, error) {
	c, err := lru.New[Key, Entry](maxItems)
	if err != nil {
		return nil, err
	}
	return &AggregateCache{cache: c}, nil
}

// Get returns a copy of the entry cached under key.
func (c *AggregateCache) Get(key Key) (Entry, bool) {
	e, ok := c.cache.Get(key.normalized())
	if !ok {
		return Entry{}, false
	}
	return e.clone(), true
}

// Put stores a copy of e under key.
func (c *AggregateCache) Put(key Key, e Entry) {
	c.cache.Add(key.normalized(), e.clone())
}

// Len returns the current number of items in the cache.
func (c *AggregateCache) Len() int {
	return c.cache.Len()
}

// Purge removes every cached aggregate.
func (c *AggregateCache) Purge() {
	c.cache.Purge()
}
