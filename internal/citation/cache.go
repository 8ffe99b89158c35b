package citation

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/Avi0425/Paper-Forge-AI/internal/model"
)

// WrapLRUCache memoizes Search results of the wrapped source for ttl.
// Errors are never cached.
func WrapLRUCache(next Source, size int, ttl time.Duration) Source {
	if next == nil || size <= 0 || ttl <= 0 {
		return next
	}
	return &cachedSource{
		next:  next,
		cache: expirable.NewLRU[string, []model.Citation](size, nil, ttl),
	}
}

type cachedSource struct {
	next  Source
	cache *expirable.LRU[string, []model.Citation]
}

func (s *cachedSource) Search(ctx context.Context, query string, limit int) ([]model.Citation, error) {
	key := fmt.Sprintf("%d|%s", limit, query)
	if cached, ok := s.cache.Get(key); ok {
		return cloneCitations(cached), nil
	}
	results, err := s.next.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, cloneCitations(results))
	return results, nil
}

func cloneCitations(citations []model.Citation) []model.Citation {
	if len(citations) == 0 {
		return nil
	}
	clone := make([]model.Citation, len(citations))
	copy(clone, citations)
	return clone
}
