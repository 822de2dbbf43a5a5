package po

import "time"

// 当前服务消费与发布的事件类型。
const (
	EventProfileCreated = "profile.user.created"
	EventProfileUpdated = "profile.user.updated"
	EventProfileDeleted = "profile.user.deleted"
	EventVideoCreated   = "catalog.video.created"
	EventVideoUpdated   = "catalog.video.updated"
	EventVideoDeleted   = "catalog.video.deleted"
	EventFollowCreated  = "social.follow.created"
	EventFollowRemoved  = "social.follow.removed"
	EventCoverSelected  = "social.video.cover_selected"
)

// InboxEvent 记录 Inbox 消费状态。
type InboxEvent struct {
	EventID       string
	SourceService string
	EventType     string
	AggregateType *string
	AggregateID   *string
	Payload       []byte
	ReceivedAt    time.Time
	ProcessedAt   *time.Time
	LastError     *string
}

// OutboxEvent 记录待发布的领域事件。
type OutboxEvent struct {
	EventID       string
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
	OccurredAt    time.Time
	PublishedAt   *time.Time
}

// ProfileEventPayload 描述 profile.user.created/updated 事件载荷。
type ProfileEventPayload struct {
	UserID       string     `json:"user_id"`
	Username     string     `json:"username"`
	DisplayName  *string    `json:"display_name,omitempty"`
	AvatarURL    *string    `json:"avatar_url,omitempty"`
	Bio          *string    `json:"bio,omitempty"`
	Discoverable *bool      `json:"discoverable,omitempty"`
	Version      int64      `json:"version"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// ProfileDeletedPayload 描述 profile.user.deleted 事件载荷。
type ProfileDeletedPayload struct {
	UserID  string `json:"user_id"`
	Version int64  `json:"version"`
}

// VideoEventPayload 描述 catalog.video.created/updated 事件载荷。
type VideoEventPayload struct {
	VideoID        string     `json:"video_id"`
	OwnerID        string     `json:"owner_id"`
	Title          string     `json:"title"`
	MediaURL       *string    `json:"media_url,omitempty"`
	DurationMicros *int64     `json:"duration_micros,omitempty"`
	Status         *string    `json:"status,omitempty"`
	Version        int64      `json:"version"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// VideoDeletedPayload 描述 catalog.video.deleted 事件载荷。
type VideoDeletedPayload struct {
	VideoID string `json:"video_id"`
	Version int64  `json:"version"`
}

// FollowEventPayload 描述 social.follow.created/removed 事件载荷。
type FollowEventPayload struct {
	FollowerID string    `json:"follower_id"`
	FolloweeID string    `json:"followee_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// CoverSelectedPayload 描述 social.video.cover_selected 事件载荷。
type CoverSelectedPayload struct {
	VideoID      string    `json:"video_id"`
	OwnerID      string    `json:"owner_id"`
	OffsetMicros int64     `json:"offset_micros"`
	SelectedAt   time.Time `json:"selected_at"`
}
