// Package services 实现社交服务的业务用例层。
// 该层面向接口编程,持久化细节由仓储层提供。
package services

import (
	"github.com/bionicotaku/lingo-services-social/internal/clients/ffmpeg"
	"github.com/bionicotaku/lingo-services-social/internal/conf"
	"github.com/bionicotaku/lingo-services-social/internal/repositories"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// ProviderSet 汇总业务层构造函数供 Wire 使用。
var ProviderSet = wire.NewSet(
	ProvideSuggestionRepository,
	ProvideFollowRepository,
	ProvideProfileProjectionRepository,
	ProvideVideoProjectionRepository,
	ProvideSuggestionLogRepository,
	ProvideInboxRepository,
	ProvideOutboxRepository,
	ProvideSuggestionOptions,
	ProvideFilmstripOptions,
	ProvideSuggestionCache,
	ProvideFilmstripStore,
	ProvideFrameExtractor,
	NewSuggestionService,
	NewFilmstripService,
	NewProjectionService,
	NewEventIngestService,
)

// ProvideSuggestionRepository 绑定推荐仓储实现。
func ProvideSuggestionRepository(r *repositories.SuggestionRepository) SuggestionRepository { return r }

// ProvideFollowRepository 绑定关注仓储实现。
func ProvideFollowRepository(r *repositories.FollowRepository) FollowRepository { return r }

// ProvideProfileProjectionRepository 绑定资料投影仓储实现。
func ProvideProfileProjectionRepository(r *repositories.ProfileProjectionRepository) ProfileProjectionRepository {
	return r
}

// ProvideVideoProjectionRepository 绑定视频投影仓储实现。
func ProvideVideoProjectionRepository(r *repositories.VideoProjectionRepository) VideoProjectionRepository {
	return r
}

// ProvideSuggestionLogRepository 绑定推荐日志仓储实现。
func ProvideSuggestionLogRepository(r *repositories.SuggestionLogRepository) SuggestionLogRepository {
	return r
}

// ProvideInboxRepository 绑定 Inbox 仓储实现。
func ProvideInboxRepository(r *repositories.InboxRepository) InboxRepository { return r }

// ProvideOutboxRepository 绑定 Outbox 仓储实现。
func ProvideOutboxRepository(r *repositories.OutboxRepository) OutboxRepository { return r }

// ProvideSuggestionOptions 从配置导出推荐用例参数。
func ProvideSuggestionOptions(cfg *conf.Config) SuggestionOptions {
	return SuggestionOptions{
		DefaultLimit:    conf.IntOr(cfg.Suggestions.DefaultLimit, conf.DefaultSuggestionLimit),
		MaxLimit:        conf.IntOr(cfg.Suggestions.MaxLimit, conf.MaxSuggestionLimit),
		MutualSampleMax: conf.IntOr(cfg.Suggestions.MutualSampleMax, conf.DefaultMutualSampleMax),
		FallbackEnabled: cfg.Suggestions.FallbackEnabled,
	}
}

// ProvideFilmstripOptions 从配置导出抽帧用例参数。
func ProvideFilmstripOptions(cfg *conf.Config) FilmstripOptions {
	return FilmstripOptions{
		DefaultFrames:  conf.IntOr(cfg.Filmstrip.DefaultFrames, conf.DefaultFilmstripFrames),
		MaxFrames:      conf.IntOr(cfg.Filmstrip.MaxFrames, conf.MaxFilmstripFrames),
		ExtractWorkers: conf.IntOr(cfg.Filmstrip.ExtractWorkers, conf.DefaultExtractWorkers),
	}
}

// ProvideSuggestionCache 根据配置的会话窗口构造缓存。
func ProvideSuggestionCache(cfg *conf.Config) (*SuggestionCache, func()) {
	ttl := conf.Duration(cfg.Suggestions.CacheTTL, conf.DefaultSuggestionCacheTTL)
	return NewSuggestionCache(ttl)
}

// ProvideFilmstripStore 根据配置构造抽帧会话仓库。
func ProvideFilmstripStore(cfg *conf.Config) (*FilmstripStore, func()) {
	ttl := conf.Duration(cfg.Filmstrip.SessionTTL, conf.DefaultFilmstripTTL)
	capacity := conf.IntOr(cfg.Filmstrip.MaxSessions, conf.DefaultMaxSessions)
	return NewFilmstripStore(ttl, capacity)
}

// ProvideFrameExtractor 按配置选择抽帧实现,mock 模式用于本地开发。
func ProvideFrameExtractor(cfg *conf.Config, logger log.Logger) FrameExtractor {
	if cfg.Extractor.Mode == "mock" {
		return NewMockFrameExtractor(logger)
	}
	return ffmpeg.NewExtractor(ffmpeg.Options{
		Binary:       cfg.Extractor.FFmpegBin,
		FrameTimeout: conf.Duration(cfg.Extractor.FrameTimeout, conf.DefaultFrameTimeout),
		ScaleWidth:   cfg.Extractor.ScaleWidth,
	}, logger)
}
