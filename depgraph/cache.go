package depgraph

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of entry files a ResultCache retains.
const DefaultCacheSize = 256

// ResultCache keeps closures keyed by absolute entry file path for the
// duration of one packaging run. It is not meant to outlive the run since
// results are not invalidated when files change.
type ResultCache struct {
	results *lru.Cache[string, *Result]
}

// NewResultCache returns a cache holding at most size results.
func NewResultCache(size int) (*ResultCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	results, err := lru.New[string, *Result](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create result cache: %w", err)
	}
	return &ResultCache{results: results}, nil
}

func (c *ResultCache) Get(entryFile string) (*Result, bool) {
	return c.results.Get(entryFile)
}

func (c *ResultCache) Add(entryFile string, result *Result) {
	c.results.Add(entryFile, result)
}

func (c *ResultCache) Len() int {
	return c.results.Len()
}

// Purge drops every cached result.
func (c *ResultCache) Purge() {
	c.results.Purge()
}
