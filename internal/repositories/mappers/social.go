// Package mappers 提供数据库行与领域模型之间的转换工具。
package mappers

import (
	"time"

	"github.com/bionicotaku/lingo-services-social/internal/models/po"
	socialdb "github.com/bionicotaku/lingo-services-social/internal/repositories/socialdb"

	"github.com/jackc/pgx/v5/pgtype"
)

// ProfileProjectionFromRow 将 sqlc 结构转换为领域对象。
func ProfileProjectionFromRow(row socialdb.SocialProfilesProjection) *po.ProfileProjection {
	return &po.ProfileProjection{
		UserID:       row.UserID.String(),
		Username:     row.Username,
		DisplayName:  textPtr(row.DisplayName),
		AvatarURL:    textPtr(row.AvatarUrl),
		Bio:          textPtr(row.Bio),
		Discoverable: row.Discoverable,
		Version:      row.Version,
		UpdatedAt:    mustTimestamp(row.UpdatedAt),
	}
}

// VideoProjectionFromRow 转换视频投影记录。
func VideoProjectionFromRow(row socialdb.SocialVideosProjection) *po.VideoProjection {
	return &po.VideoProjection{
		VideoID:           row.VideoID.String(),
		OwnerID:           row.OwnerID.String(),
		Title:             row.Title,
		MediaURL:          textPtr(row.MediaUrl),
		DurationMicros:    toInt64Ptr(row.DurationMicros),
		CoverOffsetMicros: toInt64Ptr(row.CoverOffsetMicros),
		Status:            textPtr(row.Status),
		Version:           row.Version,
		UpdatedAt:         mustTimestamp(row.UpdatedAt),
	}
}

// SuggestionCandidateFromRow 转换图谱候选记录。
func SuggestionCandidateFromRow(row socialdb.ListSuggestionCandidatesRow) *po.SuggestionCandidate {
	return &po.SuggestionCandidate{
		TargetID:    row.UserID.String(),
		Username:    row.Username,
		DisplayName: textPtr(row.DisplayName),
		AvatarURL:   textPtr(row.AvatarUrl),
		MutualCount: row.MutualCount,
		MutualNames: row.MutualNames,
	}
}

// SuggestionCandidateFromFallbackRow 转换冷启动兜底记录，互关数记零。
func SuggestionCandidateFromFallbackRow(row socialdb.ListFallbackProfilesRow) *po.SuggestionCandidate {
	return &po.SuggestionCandidate{
		TargetID:    row.UserID.String(),
		Username:    row.Username,
		DisplayName: textPtr(row.DisplayName),
		AvatarURL:   textPtr(row.AvatarUrl),
		MutualCount: 0,
	}
}

// InboxEventFromRow 转换 Inbox 事件。
func InboxEventFromRow(row socialdb.SocialInboxEvent) *po.InboxEvent {
	return &po.InboxEvent{
		EventID:       row.EventID.String(),
		SourceService: row.SourceService,
		EventType:     row.EventType,
		AggregateType: textPtr(row.AggregateType),
		AggregateID:   textPtr(row.AggregateID),
		Payload:       row.Payload,
		ReceivedAt:    mustTimestamp(row.ReceivedAt),
		ProcessedAt:   timestampPtr(row.ProcessedAt),
		LastError:     textPtr(row.LastError),
	}
}

// OutboxEventFromRow 转换 Outbox 事件。
func OutboxEventFromRow(row socialdb.SocialOutboxEvent) *po.OutboxEvent {
	return &po.OutboxEvent{
		EventID:       row.EventID.String(),
		AggregateType: row.AggregateType,
		AggregateID:   row.AggregateID,
		EventType:     row.EventType,
		Payload:       row.Payload,
		OccurredAt:    mustTimestamp(row.OccurredAt),
		PublishedAt:   timestampPtr(row.PublishedAt),
	}
}

// ToPgInt4 将 *int32 转换为 pgtype.Int4。
func ToPgInt4(value *int32) pgtype.Int4 {
	if value == nil {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: *value, Valid: true}
}

// ToPgInt8 将 *int64 转换为 pgtype.Int8。
func ToPgInt8(value *int64) pgtype.Int8 {
	if value == nil {
		return pgtype.Int8{}
	}
	return pgtype.Int8{Int64: *value, Valid: true}
}

// ToPgText 将 *string 转换为 pgtype.Text。
func ToPgText(value *string) pgtype.Text {
	if value == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *value, Valid: true}
}

// ToPgTimestamptzPtr 将 *time.Time 转换为 pgtype.Timestamptz。
func ToPgTimestamptzPtr(value *time.Time) pgtype.Timestamptz {
	if value == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: value.UTC(), Valid: true}
}

func toInt64Ptr(value pgtype.Int8) *int64 {
	if !value.Valid {
		return nil
	}
	return &value.Int64
}

func textPtr(value pgtype.Text) *string {
	if !value.Valid {
		return nil
	}
	return &value.String
}

func timestampPtr(value pgtype.Timestamptz) *time.Time {
	if !value.Valid {
		return nil
	}
	t := value.Time.UTC()
	return &t
}

func mustTimestamp(value pgtype.Timestamptz) time.Time {
	if !value.Valid {
		return time.Time{}
	}
	return value.Time.UTC()
}
