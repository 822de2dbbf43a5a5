// Package controllers 提供传输层 Handler，负责处理外部请求并调用业务层。
// 该层负责参数校验、DTO 转换和错误映射。
package controllers

import (
	"github.com/bionicotaku/lingo-services-social/internal/conf"
	"github.com/bionicotaku/lingo-services-social/internal/services"
	"github.com/google/wire"
)

// PushToken 为事件推送端点的共享令牌。
type PushToken string

// ProvideSuggestionServiceAPI 将 SuggestionService 适配为 Handler 依赖接口。
func ProvideSuggestionServiceAPI(s *services.SuggestionService) SuggestionServiceAPI { return s }

// ProvideFilmstripServiceAPI 将 FilmstripService 适配为 Handler 依赖接口。
func ProvideFilmstripServiceAPI(s *services.FilmstripService) FilmstripServiceAPI { return s }

// ProvideEventIngestAPI 将 EventIngestService 适配为 Handler 依赖接口。
func ProvideEventIngestAPI(s *services.EventIngestService) EventIngestAPI { return s }

// ProvideHandlerTimeouts 从配置导出读写超时。
func ProvideHandlerTimeouts(cfg *conf.Config) HandlerTimeouts {
	return HandlerTimeouts{
		Query:    conf.Duration(cfg.Server.HTTP.QueryTimeout, conf.DefaultQueryTimeout),
		Mutation: conf.Duration(cfg.Server.HTTP.MutationTimeout, conf.DefaultMutationTimeout),
	}
}

// ProvidePushToken 从配置导出推送令牌。
func ProvidePushToken(cfg *conf.Config) PushToken {
	return PushToken(cfg.Server.HTTP.PushToken)
}

// ProviderSet 汇总传输层构造函数供 Wire 使用。
var ProviderSet = wire.NewSet(
	ProvideHandlerTimeouts,
	NewBaseHandler,
	ProvideSuggestionServiceAPI,
	ProvideFilmstripServiceAPI,
	ProvideEventIngestAPI,
	ProvidePushToken,
	NewSuggestionHandler,
	NewFilmstripHandler,
	NewEventHandler,
)
