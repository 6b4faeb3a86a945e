package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

var ErrNilLoader = errors.New("cache loader is required")

const defaultMaxEntries = 1024

// Store is a bounded TTL cache. Concurrent misses on the same key share a
// single loader call.
type Store[V any] struct {
	lru    *expirable.LRU[string, V]
	flight singleflight.Group
}

// NewStore builds a store holding up to maxEntries values for ttl each.
// A non-positive ttl keeps entries until they are evicted by size.
func NewStore[V any](maxEntries int, ttl time.Duration) *Store[V] {
	if maxEntries < 1 {
		maxEntries = defaultMaxEntries
	}
	if ttl < 0 {
		ttl = 0
	}
	return &Store[V]{lru: expirable.NewLRU[string, V](maxEntries, nil, ttl)}
}

func (s *Store[V]) Get(_ context.Context, key string) (V, bool) {
	if key == "" {
		var zero V
		return zero, false
	}
	return s.lru.Get(key)
}

func (s *Store[V]) Set(_ context.Context, key string, value V) {
	if key == "" {
		return
	}
	s.lru.Add(key, value)
}

func (s *Store[V]) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}
	s.lru.Remove(key)
}

func (s *Store[V]) DeletePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}
	for _, key := range s.lru.Keys() {
		if strings.HasPrefix(key, prefix) {
			s.lru.Remove(key)
		}
	}
}

func (s *Store[V]) Len() int {
	return s.lru.Len()
}

// GetOrLoad returns the cached value or runs loader once per key across
// concurrent callers. Errors are never cached.
func (s *Store[V]) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (V, error)) (V, error) {
	var zero V
	if loader == nil {
		return zero, ErrNilLoader
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	out, err, _ := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}

	return out.(V), nil
}
