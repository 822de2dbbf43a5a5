package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bionicotaku/lingo-services-social/internal/models/po"
	"github.com/bionicotaku/lingo-services-social/internal/models/vo"
	"github.com/bionicotaku/lingo-services-social/internal/repositories"
	"github.com/bionicotaku/lingo-services-social/pkg/metrics"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// 推荐来源标识,写入日志与指标。
const (
	suggestionSourceGraph    = "graph"
	suggestionSourceCache    = "cache"
	suggestionSourceFallback = "fallback"
)

const errorKindGraphUnavailable = "graph_unavailable"

// GetSuggestionsInput 描述获取推荐所需的参数。
type GetSuggestionsInput struct {
	ViewerID string
	Limit    int
}

// SuggestionOptions 汇总推荐用例的可调参数。
type SuggestionOptions struct {
	DefaultLimit    int
	MaxLimit        int
	MutualSampleMax int
	FallbackEnabled bool
}

// SuggestionService 实现"可能认识的人"用例:
// 会话窗口内走缓存,未命中时查关注图谱,冷启动可选兜底。
type SuggestionService struct {
	suggestions SuggestionRepository
	follows     FollowRepository
	profiles    ProfileProjectionRepository
	logs        SuggestionLogRepository
	cache       *SuggestionCache
	opts        SuggestionOptions
	log         *log.Helper
}

// NewSuggestionService 构造 SuggestionService。
func NewSuggestionService(
	suggestions SuggestionRepository,
	follows FollowRepository,
	profiles ProfileProjectionRepository,
	logs SuggestionLogRepository,
	cache *SuggestionCache,
	opts SuggestionOptions,
	logger log.Logger,
) *SuggestionService {
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 20
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 50
	}
	if opts.MutualSampleMax < 0 {
		opts.MutualSampleMax = 0
	}
	return &SuggestionService{
		suggestions: suggestions,
		follows:     follows,
		profiles:    profiles,
		logs:        logs,
		cache:       cache,
		opts:        opts,
		log:         log.NewHelper(logger),
	}
}

// GetSuggestions 返回观察者的推荐列表。空列表是合法结果,不视为错误。
func (s *SuggestionService) GetSuggestions(ctx context.Context, input GetSuggestionsInput) (*vo.SuggestionResponse, error) {
	viewerID, err := uuid.Parse(input.ViewerID)
	if err != nil {
		return nil, fmt.Errorf("parse viewer id: %w", err)
	}
	limit := input.Limit
	if limit <= 0 {
		limit = s.opts.DefaultLimit
	}
	if limit > s.opts.MaxLimit {
		limit = s.opts.MaxLimit
	}

	if cached, ok := s.cache.Get(input.ViewerID); ok {
		metrics.SuggestionsServed.WithLabelValues(suggestionSourceCache).Inc()
		s.logServe(ctx, po.SuggestionLogParams{
			ViewerID:       input.ViewerID,
			Requested:      limit,
			Source:         suggestionSourceCache,
			SuggestedItems: suggestedItems(cached),
		})
		return &vo.SuggestionResponse{
			Items:       cached,
			Source:      suggestionSourceCache,
			GeneratedAt: time.Now().UTC(),
		}, nil
	}

	started := time.Now()
	candidates, err := s.suggestions.ListCandidates(ctx, nil, viewerID, limit, s.opts.MutualSampleMax)
	if err != nil {
		s.log.WithContext(ctx).Errorw("msg", "suggestion graph query failed", "viewer_id", input.ViewerID, "error", err)
		s.logServe(ctx, po.SuggestionLogParams{
			ViewerID:  input.ViewerID,
			Requested: limit,
			Source:    suggestionSourceGraph,
			ErrorKind: errorKindGraphUnavailable,
		})
		return nil, ErrSuggestionUnavailable
	}
	source := suggestionSourceGraph
	if len(candidates) == 0 && s.opts.FallbackEnabled {
		candidates, err = s.suggestions.ListFallback(ctx, nil, viewerID, limit)
		if err != nil {
			s.log.WithContext(ctx).Errorw("msg", "suggestion fallback query failed", "viewer_id", input.ViewerID, "error", err)
			s.logServe(ctx, po.SuggestionLogParams{
				ViewerID:  input.ViewerID,
				Requested: limit,
				Source:    suggestionSourceFallback,
				ErrorKind: errorKindGraphUnavailable,
			})
			return nil, ErrSuggestionUnavailable
		}
		source = suggestionSourceFallback
	}
	latency := time.Since(started)

	items := make([]vo.Suggestion, 0, len(candidates))
	for _, candidate := range candidates {
		items = append(items, vo.SuggestionFromCandidate(candidate))
	}
	s.cache.Set(input.ViewerID, items)

	metrics.SuggestionsServed.WithLabelValues(source).Inc()
	metrics.SuggestionLatency.WithLabelValues(source).Observe(latency.Seconds())
	s.logServe(ctx, po.SuggestionLogParams{
		ViewerID:       input.ViewerID,
		Requested:      limit,
		Source:         source,
		GraphLatencyMS: int32(latency.Milliseconds()),
		SuggestedItems: suggestedItems(items),
	})
	s.log.WithContext(ctx).Infow(
		"msg", "suggestions served",
		"viewer_id", input.ViewerID,
		"source", source,
		"returned", len(items),
		"latency_ms", latency.Milliseconds(),
	)
	return &vo.SuggestionResponse{
		Items:       items,
		Source:      source,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// Follow 写入关注边。重复关注是幂等的成功,不追加事件。
func (s *SuggestionService) Follow(ctx context.Context, viewerID, targetID string) (*vo.FollowResult, error) {
	viewer, target, err := s.parsePair(viewerID, targetID)
	if err != nil {
		return nil, err
	}
	if _, err := s.profiles.Get(ctx, nil, target); err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrTargetNotFound
		}
		return nil, fmt.Errorf("check target profile: %w", err)
	}
	created, err := s.follows.Create(ctx, nil, viewer, target)
	if err != nil {
		metrics.FollowOps.WithLabelValues("follow", "error").Inc()
		return nil, fmt.Errorf("create follow: %w", err)
	}
	s.cache.MarkFollowed(viewerID, targetID, true)
	result := "noop"
	if created {
		result = "created"
	}
	metrics.FollowOps.WithLabelValues("follow", result).Inc()
	s.log.WithContext(ctx).Infow("msg", "follow applied", "viewer_id", viewerID, "target_id", targetID, "changed", created)
	return &vo.FollowResult{TargetID: targetID, Following: true, Changed: created}, nil
}

// Unfollow 删除关注边并失效观察者的缓存列表。
func (s *SuggestionService) Unfollow(ctx context.Context, viewerID, targetID string) (*vo.FollowResult, error) {
	viewer, target, err := s.parsePair(viewerID, targetID)
	if err != nil {
		return nil, err
	}
	removed, err := s.follows.Delete(ctx, nil, viewer, target)
	if err != nil {
		metrics.FollowOps.WithLabelValues("unfollow", "error").Inc()
		return nil, fmt.Errorf("delete follow: %w", err)
	}
	s.cache.Invalidate(viewerID)
	result := "noop"
	if removed {
		result = "removed"
	}
	metrics.FollowOps.WithLabelValues("unfollow", result).Inc()
	return &vo.FollowResult{TargetID: targetID, Following: false, Changed: removed}, nil
}

// Dismiss 记录忽略并把目标从缓存列表中移除,目标此后不再出现。
func (s *SuggestionService) Dismiss(ctx context.Context, viewerID, targetID string) error {
	viewer, target, err := s.parsePair(viewerID, targetID)
	if err != nil {
		return err
	}
	if err := s.suggestions.Dismiss(ctx, nil, viewer, target); err != nil {
		return fmt.Errorf("dismiss suggestion: %w", err)
	}
	s.cache.Remove(viewerID, targetID)
	return nil
}

func (s *SuggestionService) parsePair(viewerID, targetID string) (uuid.UUID, uuid.UUID, error) {
	viewer, err := uuid.Parse(viewerID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("parse viewer id: %w", err)
	}
	target, err := uuid.Parse(targetID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("parse target id: %w", err)
	}
	if viewer == target {
		return uuid.Nil, uuid.Nil, ErrSelfFollow
	}
	return viewer, target, nil
}

// logServe 写入调用日志。日志失败不影响本次返回。
func (s *SuggestionService) logServe(ctx context.Context, params po.SuggestionLogParams) {
	entry := po.NewSuggestionLog(params)
	if err := s.logs.Insert(ctx, nil, entry); err != nil {
		s.log.WithContext(ctx).Warnw("msg", "insert suggestion log failed", "viewer_id", params.ViewerID, "error", err)
	}
}

func suggestedItems(items []vo.Suggestion) []po.SuggestedItemLog {
	logged := make([]po.SuggestedItemLog, 0, len(items))
	for _, item := range items {
		logged = append(logged, po.SuggestedItemLog{
			TargetID:    item.TargetID,
			Reason:      item.ReasonCode,
			MutualCount: item.MutualCount,
		})
	}
	return logged
}
