package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bionicotaku/lingo-services-social/internal/models/po"
	"github.com/bionicotaku/lingo-services-social/internal/repositories"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// ApplyResult 描述一次事件应用的结果分类。
type ApplyResult string

const (
	// ApplyApplied 表示事件已应用到投影。
	ApplyApplied ApplyResult = "applied"
	// ApplySkipped 表示未知事件类型被跳过。
	ApplySkipped ApplyResult = "skipped"
)

// ProjectionService 将平台事件应用到本地投影。
// 版本落后的写入由 upsert 的版本守卫丢弃,重复应用是幂等的。
type ProjectionService struct {
	profiles ProfileProjectionRepository
	videos   VideoProjectionRepository
	log      *log.Helper
}

// NewProjectionService 构造 ProjectionService。
func NewProjectionService(profiles ProfileProjectionRepository, videos VideoProjectionRepository, logger log.Logger) *ProjectionService {
	return &ProjectionService{
		profiles: profiles,
		videos:   videos,
		log:      log.NewHelper(logger),
	}
}

// Apply 按事件类型分发处理。未知类型返回 ApplySkipped 而非错误。
func (s *ProjectionService) Apply(ctx context.Context, evt *po.InboxEvent) (ApplyResult, error) {
	switch evt.EventType {
	case po.EventProfileCreated, po.EventProfileUpdated:
		return ApplyApplied, s.applyProfileUpsert(ctx, evt)
	case po.EventProfileDeleted:
		return ApplyApplied, s.applyProfileDelete(ctx, evt)
	case po.EventVideoCreated, po.EventVideoUpdated:
		return ApplyApplied, s.applyVideoUpsert(ctx, evt)
	case po.EventVideoDeleted:
		return ApplyApplied, s.applyVideoDelete(ctx, evt)
	default:
		s.log.WithContext(ctx).Warnw("msg", "unknown inbox event type", "event_id", evt.EventID, "event_type", evt.EventType)
		return ApplySkipped, nil
	}
}

func (s *ProjectionService) applyProfileUpsert(ctx context.Context, evt *po.InboxEvent) error {
	var payload po.ProfileEventPayload
	if err := json.Unmarshal(evt.Payload, &payload); err != nil {
		return fmt.Errorf("unmarshal profile payload: %w", err)
	}
	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		return fmt.Errorf("parse profile user_id: %w", err)
	}
	discoverable := true
	if payload.Discoverable != nil {
		discoverable = *payload.Discoverable
	}
	return s.profiles.Upsert(ctx, nil, repositories.UpsertProfileProjectionInput{
		UserID:       userID,
		Username:     payload.Username,
		DisplayName:  payload.DisplayName,
		AvatarURL:    payload.AvatarURL,
		Bio:          payload.Bio,
		Discoverable: discoverable,
		Version:      payload.Version,
		UpdatedAt:    payload.UpdatedAt,
	})
}

func (s *ProjectionService) applyProfileDelete(ctx context.Context, evt *po.InboxEvent) error {
	var payload po.ProfileDeletedPayload
	if err := json.Unmarshal(evt.Payload, &payload); err != nil {
		return fmt.Errorf("unmarshal profile deleted payload: %w", err)
	}
	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		return fmt.Errorf("parse profile user_id: %w", err)
	}
	// 删除资料的同时清理其双向关注边与忽略记录。
	return s.profiles.Purge(ctx, nil, userID)
}

func (s *ProjectionService) applyVideoUpsert(ctx context.Context, evt *po.InboxEvent) error {
	var payload po.VideoEventPayload
	if err := json.Unmarshal(evt.Payload, &payload); err != nil {
		return fmt.Errorf("unmarshal video payload: %w", err)
	}
	videoID, err := uuid.Parse(payload.VideoID)
	if err != nil {
		return fmt.Errorf("parse video_id: %w", err)
	}
	ownerID, err := uuid.Parse(payload.OwnerID)
	if err != nil {
		return fmt.Errorf("parse owner_id: %w", err)
	}
	return s.videos.Upsert(ctx, nil, repositories.UpsertVideoProjectionInput{
		VideoID:        videoID,
		OwnerID:        ownerID,
		Title:          payload.Title,
		MediaURL:       payload.MediaURL,
		DurationMicros: payload.DurationMicros,
		Status:         payload.Status,
		Version:        payload.Version,
		UpdatedAt:      payload.UpdatedAt,
	})
}

func (s *ProjectionService) applyVideoDelete(ctx context.Context, evt *po.InboxEvent) error {
	var payload po.VideoDeletedPayload
	if err := json.Unmarshal(evt.Payload, &payload); err != nil {
		return fmt.Errorf("unmarshal video deleted payload: %w", err)
	}
	videoID, err := uuid.Parse(payload.VideoID)
	if err != nil {
		return fmt.Errorf("parse video_id: %w", err)
	}
	return s.videos.Delete(ctx, nil, videoID)
}
