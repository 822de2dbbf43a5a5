package services

import (
	"context"

	"github.com/bionicotaku/lingo-services-social/internal/models/vo"
)

// SuggestionServiceInterface 抽象推荐用例,便于测试替换。
type SuggestionServiceInterface interface {
	GetSuggestions(ctx context.Context, input GetSuggestionsInput) (*vo.SuggestionResponse, error)
	Follow(ctx context.Context, viewerID, targetID string) (*vo.FollowResult, error)
	Unfollow(ctx context.Context, viewerID, targetID string) (*vo.FollowResult, error)
	Dismiss(ctx context.Context, viewerID, targetID string) error
}

// FilmstripServiceInterface 抽象抽帧用例,便于测试替换。
type FilmstripServiceInterface interface {
	Create(ctx context.Context, input CreateFilmstripInput) (*vo.Filmstrip, error)
	Get(ctx context.Context, viewerID, sessionID string) (*vo.Filmstrip, error)
	Frame(ctx context.Context, viewerID, sessionID string, index int) (*vo.FrameBlob, error)
	Dismiss(ctx context.Context, viewerID, sessionID string)
	SelectCover(ctx context.Context, viewerID, videoID string, offsetMicros int64) (*vo.CoverSelection, error)
}
