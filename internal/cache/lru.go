// Package cache provides the injected table cache that replaces ad-hoc
// process-wide dataset maps. Dataset IDs are never reused, so entries never
// need invalidation; eviction is purely size-bounded LRU.
package cache

import (
	"container/list"
	"sync"

	"vizier/domain/core"
	"vizier/domain/table"
)

// TableCache is a size-bounded LRU cache of materialized tables.
type TableCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front = most recently used
	entries  map[core.DatasetID]*list.Element
}

type entry struct {
	id    core.DatasetID
	table *table.Table
}

// NewTableCache creates a cache holding at most capacity tables.
func NewTableCache(capacity int) *TableCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &TableCache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[core.DatasetID]*list.Element),
	}
}

// Get returns the cached table and marks it most recently used.
func (c *TableCache) Get(id core.DatasetID) (*table.Table, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*entry).table, true
}

// Put stores a table, evicting the least recently used entry when full.
func (c *TableCache) Put(id core.DatasetID, t *table.Table) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[id]; ok {
		el.Value.(*entry).table = t
		c.order.MoveToFront(el)
		return
	}

	c.entries[id] = c.order.PushFront(&entry{id: id, table: t})

	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*entry).id)
	}
}

// Len returns the number of cached tables.
func (c *TableCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
