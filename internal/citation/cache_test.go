package citation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Avi0425/Paper-Forge-AI/internal/model"
)

type countingSource struct {
	calls int
	fail  bool
}

func (s *countingSource) Search(ctx context.Context, query string, limit int) ([]model.Citation, error) {
	s.calls++
	if s.fail {
		return nil, errors.New("upstream down")
	}
	return []model.Citation{{ID: "c1", Title: "Quantum machine learning"}}, nil
}

func TestCacheHitSkipsUpstream(t *testing.T) {
	upstream := &countingSource{}
	source := WrapLRUCache(upstream, 8, time.Minute)

	first, err := source.Search(context.Background(), "quantum", 5)
	require.NoError(t, err)
	second, err := source.Search(context.Background(), "quantum", 5)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, upstream.calls)

	// Different limit is a different key.
	_, err = source.Search(context.Background(), "quantum", 3)
	require.NoError(t, err)
	require.Equal(t, 2, upstream.calls)
}

func TestCacheNeverCachesErrors(t *testing.T) {
	upstream := &countingSource{fail: true}
	source := WrapLRUCache(upstream, 8, time.Minute)

	_, err := source.Search(context.Background(), "quantum", 5)
	require.Error(t, err)
	_, err = source.Search(context.Background(), "quantum", 5)
	require.Error(t, err)
	require.Equal(t, 2, upstream.calls)
}

func TestWrapLRUCacheDisabled(t *testing.T) {
	upstream := &countingSource{}
	require.Equal(t, Source(upstream), WrapLRUCache(upstream, 0, time.Minute))
	require.Equal(t, Source(upstream), WrapLRUCache(upstream, 8, 0))
}
