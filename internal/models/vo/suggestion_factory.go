package vo

import "github.com/bionicotaku/lingo-services-social/internal/models/po"

// SuggestionFromCandidate 根据图谱候选记录构造 Suggestion。
func SuggestionFromCandidate(record *po.SuggestionCandidate) Suggestion {
	if record == nil {
		return Suggestion{MutualSample: []string{}}
	}
	item := Suggestion{
		TargetID:     record.TargetID,
		Username:     record.Username,
		DisplayName:  derefString(record.DisplayName),
		AvatarURL:    derefString(record.AvatarURL),
		MutualCount:  record.MutualCount,
		MutualSample: cloneSample(record.MutualNames),
		ReasonCode:   ReasonMutualFollow,
	}
	if record.MutualCount <= 0 {
		item.ReasonCode = ReasonFreshProfile
	}
	return item
}

func cloneSample(src []string) []string {
	if len(src) == 0 {
		return []string{}
	}
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}

func derefString(ptr *string) string {
	if ptr == nil {
		return ""
	}
	return *ptr
}
