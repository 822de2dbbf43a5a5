package services

import (
	"context"
	"time"

	"github.com/bionicotaku/lingo-services-social/internal/models/po"
	"github.com/bionicotaku/lingo-services-social/internal/repositories"
	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/google/uuid"
)

// SuggestionRepository 抽象推荐候选查询能力。
type SuggestionRepository interface {
	ListCandidates(ctx context.Context, sess txmanager.Session, viewerID uuid.UUID, limit, sampleLimit int) ([]*po.SuggestionCandidate, error)
	ListFallback(ctx context.Context, sess txmanager.Session, viewerID uuid.UUID, limit int) ([]*po.SuggestionCandidate, error)
	Dismiss(ctx context.Context, sess txmanager.Session, viewerID, targetID uuid.UUID) error
}

// FollowRepository 抽象关注边读写能力。
type FollowRepository interface {
	Create(ctx context.Context, sess txmanager.Session, followerID, followeeID uuid.UUID) (bool, error)
	Delete(ctx context.Context, sess txmanager.Session, followerID, followeeID uuid.UUID) (bool, error)
	Exists(ctx context.Context, sess txmanager.Session, followerID, followeeID uuid.UUID) (bool, error)
}

// ProfileProjectionRepository 抽象用户资料投影访问能力。
type ProfileProjectionRepository interface {
	Get(ctx context.Context, sess txmanager.Session, userID uuid.UUID) (*po.ProfileProjection, error)
	Upsert(ctx context.Context, sess txmanager.Session, input repositories.UpsertProfileProjectionInput) error
	Purge(ctx context.Context, sess txmanager.Session, userID uuid.UUID) error
}

// VideoProjectionRepository 抽象视频投影访问能力。
type VideoProjectionRepository interface {
	Get(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) (*po.VideoProjection, error)
	Upsert(ctx context.Context, sess txmanager.Session, input repositories.UpsertVideoProjectionInput) error
	SetCover(ctx context.Context, sess txmanager.Session, videoID, ownerID uuid.UUID, offsetMicros int64) (bool, error)
	Delete(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) error
}

// SuggestionLogRepository 抽象推荐日志写入能力。
type SuggestionLogRepository interface {
	Insert(ctx context.Context, sess txmanager.Session, logEntry po.SuggestionLog) error
}

// InboxRepository 抽象 Inbox 事件访问能力。
type InboxRepository interface {
	InsertInboxEvent(ctx context.Context, sess txmanager.Session, evt po.InboxEvent) error
	ListUnprocessed(ctx context.Context, sess txmanager.Session, limit int) ([]*po.InboxEvent, error)
	MarkProcessed(ctx context.Context, sess txmanager.Session, eventID uuid.UUID, processedAt *time.Time) error
	RecordError(ctx context.Context, sess txmanager.Session, eventID uuid.UUID, lastError string) error
}

// OutboxRepository 抽象 Outbox 外发侧访问能力。
type OutboxRepository interface {
	ListUnpublished(ctx context.Context, sess txmanager.Session, limit int) ([]*po.OutboxEvent, error)
	MarkPublished(ctx context.Context, sess txmanager.Session, eventID uuid.UUID) error
}
