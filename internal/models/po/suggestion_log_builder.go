package po

import (
	"strings"
	"time"
)

// SuggestionLogParams 描述构造推荐日志所需的参数。
type SuggestionLogParams struct {
	ViewerID       string
	Requested      int
	Source         string
	GraphLatencyMS int32
	SuggestedItems []SuggestedItemLog
	ErrorKind      string
	GeneratedAt    time.Time
}

// NewSuggestionLog 基于参数构造 SuggestionLog 实例。
func NewSuggestionLog(params SuggestionLogParams) SuggestionLog {
	items := cloneSuggestedItems(params.SuggestedItems)

	entry := SuggestionLog{
		ViewerID:       optionalString(params.ViewerID),
		Requested:      int32(params.Requested),
		Returned:       int32(len(items)),
		Source:         strings.TrimSpace(params.Source),
		GraphLatencyMS: optionalInt32(params.GraphLatencyMS),
		SuggestedItems: items,
		GeneratedAt:    params.GeneratedAt,
	}
	if entry.GeneratedAt.IsZero() {
		entry.GeneratedAt = time.Now().UTC()
	}
	if kind := strings.TrimSpace(params.ErrorKind); kind != "" {
		entry.ErrorKind = &kind
	}
	return entry
}

func cloneSuggestedItems(src []SuggestedItemLog) []SuggestedItemLog {
	if len(src) == 0 {
		return []SuggestedItemLog{}
	}
	dst := make([]SuggestedItemLog, len(src))
	copy(dst, src)
	return dst
}

func optionalString(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	v := strings.TrimSpace(value)
	return &v
}

func optionalInt32(value int32) *int32 {
	if value <= 0 {
		return nil
	}
	v := value
	return &v
}
