package services

import (
	"sync"
	"time"

	"github.com/bionicotaku/lingo-services-social/internal/models/vo"
)

// SuggestionCache 按观察者缓存一次会话窗口内的推荐列表。
// 窗口内列表保持稳定:关注只翻转对应卡片的状态位,忽略将卡片移除。
type SuggestionCache struct {
	mu      sync.RWMutex
	entries map[string]*suggestionCacheEntry
	ttl     time.Duration
	done    chan struct{}
}

type suggestionCacheEntry struct {
	items     []vo.Suggestion
	expiresAt time.Time
}

// NewSuggestionCache 构造缓存并启动过期清扫,清理函数停止清扫。
func NewSuggestionCache(ttl time.Duration) (*SuggestionCache, func()) {
	c := &SuggestionCache{
		entries: make(map[string]*suggestionCacheEntry),
		ttl:     ttl,
		done:    make(chan struct{}),
	}
	interval := ttl / 2
	if interval < time.Minute {
		interval = time.Minute
	}
	go c.janitor(interval)
	return c, func() { close(c.done) }
}

// Get 返回未过期的缓存列表副本。
func (c *SuggestionCache) Get(viewerID string) ([]vo.Suggestion, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[viewerID]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	items := make([]vo.Suggestion, len(entry.items))
	copy(items, entry.items)
	return items, true
}

// Set 写入观察者的推荐列表并重置过期时间。
func (c *SuggestionCache) Set(viewerID string, items []vo.Suggestion) {
	stored := make([]vo.Suggestion, len(items))
	copy(stored, items)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[viewerID] = &suggestionCacheEntry{
		items:     stored,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// MarkFollowed 就地翻转缓存条目的关注状态位。
func (c *SuggestionCache) MarkFollowed(viewerID, targetID string, followed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[viewerID]
	if !ok {
		return
	}
	for i := range entry.items {
		if entry.items[i].TargetID == targetID {
			entry.items[i].Followed = followed
			return
		}
	}
}

// Remove 将目标从缓存列表中移除,列表其余部分保持原序。
func (c *SuggestionCache) Remove(viewerID, targetID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[viewerID]
	if !ok {
		return
	}
	for i := range entry.items {
		if entry.items[i].TargetID == targetID {
			entry.items = append(entry.items[:i], entry.items[i+1:]...)
			return
		}
	}
}

// Invalidate 丢弃观察者的缓存列表。
func (c *SuggestionCache) Invalidate(viewerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, viewerID)
}

func (c *SuggestionCache) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.sweep(time.Now())
		}
	}
}

func (c *SuggestionCache) sweep(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}
