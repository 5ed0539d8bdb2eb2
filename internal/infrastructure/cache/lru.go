// Package cache holds the in-memory caches placed in front of the settings store.
package cache

import (
	"container/list"
	"sync"
)

// LRU is a fixed-size cache safe for concurrent use. Get and Set both
// promote the key; a Set on a full cache drops the oldest key.
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	index    map[K]*list.Element
	recency  *list.List
}

type lruItem[K comparable, V any] struct {
	key   K
	value V
}

// NewLRU returns an empty cache. A capacity below 1 is raised to 1.
func NewLRU[K comparable, V any](capacity int) *LRU[K, V] {
	return &LRU[K, V]{
		capacity: max(capacity, 1),
		index:    make(map[K]*list.Element, max(capacity, 1)),
		recency:  list.New(),
	}
}

func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.recency.MoveToFront(elem)
	return elem.Value.(*lruItem[K, V]).value, true
}

func (c *LRU[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[key]; ok {
		elem.Value.(*lruItem[K, V]).value = value
		c.recency.MoveToFront(elem)
		return
	}
	if c.recency.Len() >= c.capacity {
		oldest := c.recency.Back()
		c.recency.Remove(oldest)
		delete(c.index, oldest.Value.(*lruItem[K, V]).key)
	}
	c.index[key] = c.recency.PushFront(&lruItem[K, V]{key: key, value: value})
}

func (c *LRU[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[key]; ok {
		c.recency.Remove(elem)
		delete(c.index, key)
	}
}

func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recency.Len()
}
