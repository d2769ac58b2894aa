package tabular

import (
	"context"
	"sync"

	"vizier/domain/core"
	"vizier/domain/table"
	"vizier/internal/cache"
	apperrors "vizier/internal/errors"
)

// Source is a file-backed TableSource. Dataset ids are registered against
// file paths; loaded tables go through an injected LRU cache so repeated
// pipeline stages over the same dataset parse the file once.
type Source struct {
	mu    sync.RWMutex
	paths map[core.DatasetID]string
	cache *cache.TableCache
}

// NewSource creates a source backed by the given cache. A nil cache gets a
// single-entry one.
func NewSource(c *cache.TableCache) *Source {
	if c == nil {
		c = cache.NewTableCache(1)
	}
	return &Source{paths: make(map[core.DatasetID]string), cache: c}
}

// Register binds a dataset id to a file path.
func (s *Source) Register(id core.DatasetID, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths[id] = path
}

// Table implements ports.TableSource.
func (s *Source) Table(ctx context.Context, id core.DatasetID) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if t, ok := s.cache.Get(id); ok {
		return t, nil
	}

	s.mu.RLock()
	path, ok := s.paths[id]
	s.mu.RUnlock()
	if !ok {
		return nil, apperrors.NotFoundf("dataset %s", id)
	}

	t, err := NewReader(path).Read(id)
	if err != nil {
		return nil, err
	}
	s.cache.Put(id, t)
	return t, nil
}
