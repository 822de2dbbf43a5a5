package controllers

import "time"

// GetSuggestionsRequest 描述推荐列表查询参数。
type GetSuggestionsRequest struct {
	Limit int `json:"limit"`
}

// SuggestionReply 为单张推荐卡片。
type SuggestionReply struct {
	TargetID     string   `json:"target_id"`
	Username     string   `json:"username"`
	DisplayName  string   `json:"display_name"`
	AvatarURL    string   `json:"avatar_url"`
	Followed     bool     `json:"followed"`
	MutualCount  int64    `json:"mutual_count"`
	MutualSample []string `json:"mutual_sample"`
	ReasonCode   string   `json:"reason_code"`
}

// GetSuggestionsReply 为推荐列表响应。空列表是合法响应体。
type GetSuggestionsReply struct {
	Items       []SuggestionReply `json:"items"`
	Source      string            `json:"source"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// FollowRequest 描述关注/取关/忽略操作的目标。
type FollowRequest struct {
	TargetID string `json:"target_id"`
}

// FollowReply 为关注状态变更响应。
type FollowReply struct {
	TargetID  string `json:"target_id"`
	Following bool   `json:"following"`
	Changed   bool   `json:"changed"`
}

// CreateFilmstripRequest 描述创建抽帧会话的参数。
type CreateFilmstripRequest struct {
	VideoID    string `json:"video_id"`
	FrameCount int    `json:"frame_count"`
}

// FilmstripFrameReply 为单帧元数据。
type FilmstripFrameReply struct {
	Index        int    `json:"index"`
	OffsetMicros int64  `json:"offset_micros"`
	ContentType  string `json:"content_type"`
	SizeBytes    int    `json:"size_bytes"`
}

// MissingFrameReply 为被跳过的采样点。
type MissingFrameReply struct {
	Index        int    `json:"index"`
	OffsetMicros int64  `json:"offset_micros"`
	Reason       string `json:"reason"`
}

// FilmstripReply 为抽帧会话响应。
type FilmstripReply struct {
	SessionID string                `json:"session_id"`
	VideoID   string                `json:"video_id"`
	Frames    []FilmstripFrameReply `json:"frames"`
	Missing   []MissingFrameReply   `json:"missing"`
	Partial   bool                  `json:"partial"`
	ExpiresAt time.Time             `json:"expires_at"`
}

// SessionRequest 描述按会话标识的操作。
type SessionRequest struct {
	SessionID string `json:"session_id"`
}

// FrameRequest 描述取单帧图像的参数。
type FrameRequest struct {
	SessionID string `json:"session_id"`
	Index     int    `json:"index"`
}

// SelectCoverRequest 描述封面选择参数。
type SelectCoverRequest struct {
	VideoID      string `json:"video_id"`
	OffsetMicros int64  `json:"offset_micros"`
}

// CoverReply 为封面选择响应。
type CoverReply struct {
	VideoID      string    `json:"video_id"`
	OffsetMicros int64     `json:"offset_micros"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PushRequest 为事件桥的推送信封。
type PushRequest struct {
	Token        string      `json:"-"`
	Message      PushMessage `json:"message"`
	Subscription string      `json:"subscription"`
}

// PushMessage 为推送信封内的消息体。
type PushMessage struct {
	Data        string            `json:"data"`
	MessageID   string            `json:"message_id"`
	Attributes  map[string]string `json:"attributes"`
	PublishTime time.Time         `json:"publish_time"`
}

// PushReply 为推送确认响应。
type PushReply struct {
	EventID string `json:"event_id"`
}

// EmptyReply 为无内容成功响应。
type EmptyReply struct{}
