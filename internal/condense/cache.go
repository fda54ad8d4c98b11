package condense

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the memo table when no size is configured.
const DefaultCacheSize = 1024

// Cache memoizes condensed formulas by their exact input text. It evicts
// the least recently used entry once full and is safe for concurrent use.
type Cache struct {
	entries *lru.Cache[string, string]
	hits    atomic.Int64
	misses  atomic.Int64
}

// NewCache returns a cache holding at most size entries.
func NewCache(size int) (*Cache, error) {
	entries, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create condense cache: %w", err)
	}
	return &Cache{entries: entries}, nil
}

func (c *Cache) Get(formula string) (string, bool) {
	condensed, ok := c.entries.Get(formula)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return condensed, ok
}

func (c *Cache) Set(formula, condensed string) {
	c.entries.Add(formula, condensed)
}

func (c *Cache) Len() int {
	return c.entries.Len()
}

// Stats returns the hit and miss counts since creation or the last
// InvalidateAll.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *Cache) InvalidateAll() {
	c.entries.Purge()
	c.hits.Store(0)
	c.misses.Store(0)
}
