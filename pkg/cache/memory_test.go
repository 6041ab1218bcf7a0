package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/feedreader/pkg/domain"
)

func sampleResult(url string) domain.FeedResult {
	return domain.FeedResult{
		URL:       url,
		FeedTitle: "Sample",
		Entries: []domain.Entry{
			{Title: "t1", Link: "https://example.com/1", Summary: "s1", Published: domain.MissingPublished()},
		},
		LastUpdated: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestMemory_GetSet(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }

	_, ok := m.Get(ctx, "missing")
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "k1", sampleResult("u1"), 300*time.Second))

	res, ok := m.Get(ctx, "k1")
	require.True(t, ok)
	assert.Equal(t, sampleResult("u1"), res)

	now = now.Add(299 * time.Second)
	_, ok = m.Get(ctx, "k1")
	assert.True(t, ok, "still valid before ttl")

	now = now.Add(time.Second)
	_, ok = m.Get(ctx, "k1")
	assert.False(t, ok, "expired at ttl")
	assert.Equal(t, 0, m.Len(), "expired entry removed on get")
}

func TestMemory_LastWriteWins(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Set(ctx, "k", sampleResult("first"), time.Minute))
	require.NoError(t, m.Set(ctx, "k", sampleResult("second"), time.Minute))

	res, ok := m.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "second", res.URL)
}

func TestMemory_ValueNotShared(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	stored := sampleResult("https://example.com/rss")
	require.NoError(t, m.Set(ctx, "k", stored, time.Minute))
	stored.Entries[0].Title = "changed after set"

	got, ok := m.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, sampleResult("https://example.com/rss"), got)

	got.Entries[0].Title = "changed after get"
	got.Entries = append(got.Entries, domain.Entry{Title: "extra"})

	again, ok := m.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, sampleResult("https://example.com/rss"), again, "cached value is never mutated by callers")
}

func TestMemory_PurgeAndCleanup(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "short", sampleResult("a"), time.Second))
	require.NoError(t, m.Set(ctx, "long", sampleResult("b"), time.Hour))

	now = now.Add(time.Minute)
	removed, err := m.Cleanup(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, m.Len())

	require.NoError(t, m.Purge(ctx))
	assert.Equal(t, 0, m.Len())
	_, ok := m.Get(ctx, "long")
	assert.False(t, ok)
}

func TestMemory_Concurrent(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%5)
			for j := 0; j < 100; j++ {
				_ = m.Set(ctx, key, sampleResult(key), time.Minute)
				_, _ = m.Get(ctx, key)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 5, m.Len())
	for i := 0; i < 5; i++ {
		res, ok := m.Get(ctx, fmt.Sprintf("k%d", i))
		require.True(t, ok)
		assert.Equal(t, fmt.Sprintf("k%d", i), res.URL)
	}
}
