// Package po 定义社交服务的数据持久化结构体。
package po

import "time"

// ProfileProjection 表示社交服务持久化的用户资料投影。
type ProfileProjection struct {
	UserID       string
	Username     string
	DisplayName  *string
	AvatarURL    *string
	Bio          *string
	Discoverable bool
	Version      int64
	UpdatedAt    time.Time
}

// VideoProjection 表示社交服务持久化的视频投影。
type VideoProjection struct {
	VideoID           string
	OwnerID           string
	Title             string
	MediaURL          *string
	DurationMicros    *int64
	CoverOffsetMicros *int64
	Status            *string
	Version           int64
	UpdatedAt         time.Time
}

// SuggestionCandidate 表示关注图谱查询产出的推荐候选。
type SuggestionCandidate struct {
	TargetID    string
	Username    string
	DisplayName *string
	AvatarURL   *string
	MutualCount int64
	MutualNames []string
}

// SuggestionLog 描述推荐调用日志。
type SuggestionLog struct {
	LogID          string
	ViewerID       *string
	Requested      int32
	Returned       int32
	Source         string
	GraphLatencyMS *int32
	SuggestedItems []SuggestedItemLog
	ErrorKind      *string
	GeneratedAt    time.Time
}

// SuggestedItemLog 记录一次推荐返回的条目。
type SuggestedItemLog struct {
	TargetID    string `json:"target_id"`
	Reason      string `json:"reason"`
	MutualCount int64  `json:"mutual_count"`
}
