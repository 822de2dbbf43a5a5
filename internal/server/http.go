// Package server 组装 Kratos HTTP 服务与路由。
package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/bionicotaku/lingo-services-social/internal/conf"
	"github.com/bionicotaku/lingo-services-social/internal/controllers"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ProviderSet 汇总服务装配构造函数供 Wire 使用。
var ProviderSet = wire.NewSet(NewHTTPServer)

// NewHTTPServer 构造 HTTP 服务并注册全部路由。
func NewHTTPServer(
	cfg *conf.Config,
	suggestions *controllers.SuggestionHandler,
	filmstrips *controllers.FilmstripHandler,
	events *controllers.EventHandler,
	logger log.Logger,
) *khttp.Server {
	opts := []khttp.ServerOption{
		khttp.Address(conf.StringOr(cfg.Server.HTTP.Addr, conf.DefaultHTTPAddr)),
		khttp.Timeout(conf.Duration(cfg.Server.HTTP.Timeout, conf.DefaultTimeout)),
		khttp.Middleware(
			recovery.Recovery(),
			logging.Server(logger),
		),
	}
	srv := khttp.NewServer(opts...)

	registerSuggestionRoutes(srv, suggestions)
	registerFilmstripRoutes(srv, filmstrips)
	registerEventRoutes(srv, events)

	srv.Handle("/metrics", promhttp.Handler())
	srv.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return srv
}

func registerSuggestionRoutes(srv *khttp.Server, h *controllers.SuggestionHandler) {
	r := srv.Route("/v1")

	r.GET("/suggestions", func(ctx khttp.Context) error {
		req := &controllers.GetSuggestionsRequest{}
		if raw := ctx.Query().Get("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err == nil {
				req.Limit = limit
			}
		}
		next := ctx.Middleware(func(c context.Context, in any) (any, error) {
			return h.GetSuggestions(c, in.(*controllers.GetSuggestionsRequest))
		})
		out, err := next(ctx, req)
		if err != nil {
			return err
		}
		return ctx.Result(http.StatusOK, out)
	})

	r.POST("/follows/{target_id}", func(ctx khttp.Context) error {
		req := &controllers.FollowRequest{TargetID: ctx.Vars().Get("target_id")}
		next := ctx.Middleware(func(c context.Context, in any) (any, error) {
			return h.Follow(c, in.(*controllers.FollowRequest))
		})
		out, err := next(ctx, req)
		if err != nil {
			return err
		}
		return ctx.Result(http.StatusOK, out)
	})

	r.DELETE("/follows/{target_id}", func(ctx khttp.Context) error {
		req := &controllers.FollowRequest{TargetID: ctx.Vars().Get("target_id")}
		next := ctx.Middleware(func(c context.Context, in any) (any, error) {
			return h.Unfollow(c, in.(*controllers.FollowRequest))
		})
		out, err := next(ctx, req)
		if err != nil {
			return err
		}
		return ctx.Result(http.StatusOK, out)
	})

	r.DELETE("/suggestions/{target_id}", func(ctx khttp.Context) error {
		req := &controllers.FollowRequest{TargetID: ctx.Vars().Get("target_id")}
		next := ctx.Middleware(func(c context.Context, in any) (any, error) {
			return h.Dismiss(c, in.(*controllers.FollowRequest))
		})
		out, err := next(ctx, req)
		if err != nil {
			return err
		}
		return ctx.Result(http.StatusOK, out)
	})
}

func registerFilmstripRoutes(srv *khttp.Server, h *controllers.FilmstripHandler) {
	r := srv.Route("/v1")

	r.POST("/videos/{video_id}/filmstrip", func(ctx khttp.Context) error {
		req := &controllers.CreateFilmstripRequest{}
		if err := ctx.Bind(req); err != nil {
			return err
		}
		req.VideoID = ctx.Vars().Get("video_id")
		next := ctx.Middleware(func(c context.Context, in any) (any, error) {
			return h.Create(c, in.(*controllers.CreateFilmstripRequest))
		})
		out, err := next(ctx, req)
		if err != nil {
			return err
		}
		return ctx.Result(http.StatusOK, out)
	})

	r.GET("/filmstrips/{session_id}", func(ctx khttp.Context) error {
		req := &controllers.SessionRequest{SessionID: ctx.Vars().Get("session_id")}
		next := ctx.Middleware(func(c context.Context, in any) (any, error) {
			return h.Get(c, in.(*controllers.SessionRequest))
		})
		out, err := next(ctx, req)
		if err != nil {
			return err
		}
		return ctx.Result(http.StatusOK, out)
	})

	r.GET("/filmstrips/{session_id}/frames/{index}", func(ctx khttp.Context) error {
		index, err := strconv.Atoi(ctx.Vars().Get("index"))
		if err != nil {
			index = -1
		}
		req := &controllers.FrameRequest{
			SessionID: ctx.Vars().Get("session_id"),
			Index:     index,
		}
		blob, err := h.Frame(ctx, req)
		if err != nil {
			return err
		}
		return ctx.Blob(http.StatusOK, blob.ContentType, blob.Data)
	})

	r.DELETE("/filmstrips/{session_id}", func(ctx khttp.Context) error {
		req := &controllers.SessionRequest{SessionID: ctx.Vars().Get("session_id")}
		next := ctx.Middleware(func(c context.Context, in any) (any, error) {
			return h.Dismiss(c, in.(*controllers.SessionRequest))
		})
		out, err := next(ctx, req)
		if err != nil {
			return err
		}
		return ctx.Result(http.StatusOK, out)
	})

	r.POST("/videos/{video_id}/cover", func(ctx khttp.Context) error {
		req := &controllers.SelectCoverRequest{}
		if err := ctx.Bind(req); err != nil {
			return err
		}
		req.VideoID = ctx.Vars().Get("video_id")
		next := ctx.Middleware(func(c context.Context, in any) (any, error) {
			return h.SelectCover(c, in.(*controllers.SelectCoverRequest))
		})
		out, err := next(ctx, req)
		if err != nil {
			return err
		}
		return ctx.Result(http.StatusOK, out)
	})
}

func registerEventRoutes(srv *khttp.Server, h *controllers.EventHandler) {
	r := srv.Route("/v1")

	r.POST("/events/push", func(ctx khttp.Context) error {
		req := &controllers.PushRequest{}
		if err := ctx.Bind(req); err != nil {
			return err
		}
		req.Token = ctx.Query().Get("token")
		next := ctx.Middleware(func(c context.Context, in any) (any, error) {
			return h.Push(c, in.(*controllers.PushRequest))
		})
		out, err := next(ctx, req)
		if err != nil {
			return err
		}
		return ctx.Result(http.StatusOK, out)
	})
}
