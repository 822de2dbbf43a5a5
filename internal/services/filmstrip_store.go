package services

import (
	"sync"
	"time"

	"github.com/bionicotaku/lingo-services-social/internal/models/vo"
	"github.com/bionicotaku/lingo-services-social/pkg/metrics"
)

// FilmstripSession 持有一次抽帧会话的帧数据。
// 会话只在选帧控件可见期间存在,关闭或过期后立即释放。
type FilmstripSession struct {
	SessionID string
	ViewerID  string
	VideoID   string
	Frames    []StoredFrame
	Missing   []vo.MissingFrame
	CreatedAt time.Time
	ExpiresAt time.Time
}

// StoredFrame 为会话内的单帧图像。
type StoredFrame struct {
	Index        int
	OffsetMicros int64
	ContentType  string
	Data         []byte
}

// FilmstripStore 管理内存中的抽帧会话,带 TTL 清扫与容量上限。
// 容量满时淘汰最旧的会话。
type FilmstripStore struct {
	mu       sync.Mutex
	sessions map[string]*FilmstripSession
	ttl      time.Duration
	capacity int
	done     chan struct{}
}

// NewFilmstripStore 构造会话仓库并启动过期清扫,清理函数停止清扫。
func NewFilmstripStore(ttl time.Duration, capacity int) (*FilmstripStore, func()) {
	if capacity <= 0 {
		capacity = 1
	}
	s := &FilmstripStore{
		sessions: make(map[string]*FilmstripSession),
		ttl:      ttl,
		capacity: capacity,
		done:     make(chan struct{}),
	}
	interval := ttl / 2
	if interval < 30*time.Second {
		interval = 30 * time.Second
	}
	go s.janitor(interval)
	return s, func() { close(s.done) }
}

// Put 写入会话并设置过期时间,必要时淘汰最旧会话。
func (s *FilmstripStore) Put(session *FilmstripSession) {
	now := time.Now()
	session.CreatedAt = now
	session.ExpiresAt = now.Add(s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[session.SessionID]; !exists && len(s.sessions) >= s.capacity {
		s.evictOldestLocked()
	}
	s.sessions[session.SessionID] = session
	metrics.FilmstripSessions.Set(float64(len(s.sessions)))
}

// Get 返回观察者名下未过期的会话。
func (s *FilmstripStore) Get(viewerID, sessionID string) (*FilmstripSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok || session.ViewerID != viewerID {
		return nil, false
	}
	if time.Now().After(session.ExpiresAt) {
		delete(s.sessions, sessionID)
		metrics.FilmstripSessions.Set(float64(len(s.sessions)))
		return nil, false
	}
	return session, true
}

// Delete 丢弃会话与其全部帧数据。未知会话静默返回。
func (s *FilmstripStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	metrics.FilmstripSessions.Set(float64(len(s.sessions)))
}

// Len 返回存活会话数。
func (s *FilmstripStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *FilmstripStore) evictOldestLocked() {
	var oldestID string
	var oldestAt time.Time
	for id, session := range s.sessions {
		if oldestID == "" || session.CreatedAt.Before(oldestAt) {
			oldestID = id
			oldestAt = session.CreatedAt
		}
	}
	if oldestID != "" {
		delete(s.sessions, oldestID)
	}
}

func (s *FilmstripStore) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.sweep(time.Now())
		}
	}
}

func (s *FilmstripStore) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, id)
		}
	}
	metrics.FilmstripSessions.Set(float64(len(s.sessions)))
}
