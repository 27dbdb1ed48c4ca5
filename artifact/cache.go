package artifact

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

type classNamesEntry struct {
	names []string
	err   error
}

// ClassNameCache memoizes LoadClassNames per path for the life of the process.
// Failed loads are cached too, so the fallback is not re-read on every refresh.
type ClassNameCache struct {
	cache *lru.Cache[string, classNamesEntry]
	load  func(string) ([]string, error)
}

func NewClassNameCache(size int) (*ClassNameCache, error) {
	return NewClassNameCacheFunc(size, LoadClassNames)
}

// NewClassNameCacheFunc is NewClassNameCache with a custom loader. load runs
// again for a path only after its entry has been evicted.
func NewClassNameCacheFunc(size int, load func(string) ([]string, error)) (*ClassNameCache, error) {
	if size <= 0 {
		size = 8
	}
	cache, err := lru.New[string, classNamesEntry](size)
	if err != nil {
		return nil, err
	}
	return &ClassNameCache{cache: cache, load: load}, nil
}

// Get returns a copy of the cached table so callers cannot mutate it.
func (c *ClassNameCache) Get(path string) ([]string, error) {
	entry, ok := c.cache.Get(path)
	if !ok {
		names, err := c.load(path)
		entry = classNamesEntry{names: names, err: err}
		c.cache.Add(path, entry)
	}
	return append([]string(nil), entry.names...), entry.err
}

func (c *ClassNameCache) Len() int {
	return c.cache.Len()
}
