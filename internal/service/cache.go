package service

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/yourname/activitytracker/internal"
)

// IntervalCache memoizes merge results. Keys embed the owning user's
// session count; the store is append-only, so the count is an exact
// version stamp and stale entries simply age out of the LRU.
type IntervalCache struct {
	cache *lru.Cache[string, []internal.Interval]
}

func NewIntervalCache(size int) (*IntervalCache, error) {
	c, err := lru.New[string, []internal.Interval](size)
	if err != nil {
		return nil, err
	}
	return &IntervalCache{cache: c}, nil
}

func (c *IntervalCache) Get(key string) ([]internal.Interval, bool) {
	if c == nil {
		return nil, false
	}
	return c.cache.Get(key)
}

func (c *IntervalCache) Add(key string, intervals []internal.Interval) {
	if c == nil {
		return
	}
	c.cache.Add(key, intervals)
}
