package recipe

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingSource struct {
	calls int
	fail  bool
}

func (s *countingSource) Search(ctx context.Context, q Query) ([]*Recipe, error) {
	s.calls++
	if s.fail {
		return nil, fmt.Errorf("source unavailable")
	}
	return []*Recipe{{ID: "1", Title: "Cached Dish"}}, nil
}

func TestCachedSourceHitAndMiss(t *testing.T) {
	inner := &countingSource{}
	cached := NewCachedSource(inner, time.Minute, zap.NewNop())

	first, err := cached.Search(context.Background(), Query{Text: "pasta"})
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, inner.calls)

	second, err := cached.Search(context.Background(), Query{Text: "pasta"})
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls, "second identical query must be served from cache")
	assert.Equal(t, first, second)

	_, err = cached.Search(context.Background(), Query{Text: "soup"})
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls, "different query misses the cache")
}

func TestCachedSourceDoesNotCacheErrors(t *testing.T) {
	inner := &countingSource{fail: true}
	cached := NewCachedSource(inner, time.Minute, zap.NewNop())

	_, err := cached.Search(context.Background(), Query{})
	require.Error(t, err)

	inner.fail = false
	results, err := cached.Search(context.Background(), Query{})
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedSourceExpiry(t *testing.T) {
	inner := &countingSource{}
	cached := NewCachedSource(inner, 10*time.Millisecond, zap.NewNop())

	_, err := cached.Search(context.Background(), Query{})
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	_, err = cached.Search(context.Background(), Query{})
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls, "expired entry must be refetched")
}
