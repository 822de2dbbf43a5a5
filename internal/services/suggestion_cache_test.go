package services_test

import (
	"testing"
	"time"

	"github.com/bionicotaku/lingo-services-social/internal/models/vo"
	"github.com/bionicotaku/lingo-services-social/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func cachedSuggestions(n int) []vo.Suggestion {
	items := make([]vo.Suggestion, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, vo.Suggestion{
			TargetID:   uuid.NewString(),
			Username:   "user",
			ReasonCode: vo.ReasonMutualFollow,
		})
	}
	return items
}

func TestSuggestionCache_GetReturnsCopy(t *testing.T) {
	cache, stop := services.NewSuggestionCache(time.Minute)
	t.Cleanup(stop)

	viewer := uuid.NewString()
	cache.Set(viewer, cachedSuggestions(2))

	first, ok := cache.Get(viewer)
	require.True(t, ok)
	first[0].Followed = true

	second, ok := cache.Get(viewer)
	require.True(t, ok)
	require.False(t, second[0].Followed)
}

func TestSuggestionCache_Expiry(t *testing.T) {
	cache, stop := services.NewSuggestionCache(20 * time.Millisecond)
	t.Cleanup(stop)

	viewer := uuid.NewString()
	cache.Set(viewer, cachedSuggestions(1))

	_, ok := cache.Get(viewer)
	require.True(t, ok)

	time.Sleep(40 * time.Millisecond)
	_, ok = cache.Get(viewer)
	require.False(t, ok)
}

func TestSuggestionCache_MarkFollowedKeepsOrder(t *testing.T) {
	cache, stop := services.NewSuggestionCache(time.Minute)
	t.Cleanup(stop)

	viewer := uuid.NewString()
	items := cachedSuggestions(3)
	cache.Set(viewer, items)

	cache.MarkFollowed(viewer, items[1].TargetID, true)

	got, ok := cache.Get(viewer)
	require.True(t, ok)
	require.Len(t, got, 3)
	for i, item := range got {
		require.Equal(t, items[i].TargetID, item.TargetID)
	}
	require.False(t, got[0].Followed)
	require.True(t, got[1].Followed)
	require.False(t, got[2].Followed)
}

func TestSuggestionCache_RemoveAndInvalidate(t *testing.T) {
	cache, stop := services.NewSuggestionCache(time.Minute)
	t.Cleanup(stop)

	viewer := uuid.NewString()
	items := cachedSuggestions(3)
	cache.Set(viewer, items)

	cache.Remove(viewer, items[0].TargetID)
	got, ok := cache.Get(viewer)
	require.True(t, ok)
	require.Len(t, got, 2)
	require.Equal(t, items[1].TargetID, got[0].TargetID)
	require.Equal(t, items[2].TargetID, got[1].TargetID)

	// 未知目标与未知观察者都不做任何事。
	cache.Remove(viewer, uuid.NewString())
	cache.Remove(uuid.NewString(), items[1].TargetID)
	cache.MarkFollowed(uuid.NewString(), items[1].TargetID, true)

	cache.Invalidate(viewer)
	_, ok = cache.Get(viewer)
	require.False(t, ok)
}
