package tree

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/seedling/internal/domain"
)

// CacheSchemaVersion is bumped when TreeState changes shape so old entries are dropped
const CacheSchemaVersion = "1"

type cachedState struct {
	Version string
	State   domain.TreeState
}

// stateCache holds the last known singleton state for reads.
// Writes go to storage first and then replace the entry.
type stateCache struct {
	lru *expirable.LRU[string, *cachedState]
}

func newStateCache(ttl time.Duration) *stateCache {
	return &stateCache{
		lru: expirable.NewLRU[string, *cachedState](stateCacheSize, nil, ttl),
	}
}

// Get returns a copy of the cached state
func (c *stateCache) Get() (domain.TreeState, bool) {
	entry, found := c.lru.Get(stateCacheKey)
	if !found {
		return domain.TreeState{}, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(stateCacheKey)
		return domain.TreeState{}, false
	}
	return cloneState(entry.State), true
}

func (c *stateCache) Set(st domain.TreeState) {
	c.lru.Add(stateCacheKey, &cachedState{
		Version: CacheSchemaVersion,
		State:   cloneState(st),
	})
}

// Invalidate drops the entry so the next read goes to storage
func (c *stateCache) Invalidate() {
	c.lru.Remove(stateCacheKey)
}

// cloneState detaches the LastWatered pointer so callers can't mutate the cache
func cloneState(st domain.TreeState) domain.TreeState {
	if st.LastWatered != nil {
		d := *st.LastWatered
		st.LastWatered = &d
	}
	return st
}
