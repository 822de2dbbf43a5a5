// Package vo 定义向上层返回的社交视图对象。
package vo

import "time"

// 推荐原因编码。
const (
	ReasonMutualFollow = "graph.mutual"
	ReasonFreshProfile = "fallback.fresh"
)

// Suggestion 表示一张补全后的关注推荐卡片。
type Suggestion struct {
	TargetID     string
	Username     string
	DisplayName  string
	AvatarURL    string
	Followed     bool
	MutualCount  int64
	MutualSample []string
	ReasonCode   string
}

// SuggestionResponse 汇总一次推荐请求返回的数据。
type SuggestionResponse struct {
	Items       []Suggestion
	Source      string
	GeneratedAt time.Time
}

// FollowResult 描述一次关注状态变更的结果。
type FollowResult struct {
	TargetID  string
	Following bool
	Changed   bool
}
