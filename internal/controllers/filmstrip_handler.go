package controllers

import (
	"context"

	"github.com/bionicotaku/lingo-services-social/internal/models/vo"
	"github.com/bionicotaku/lingo-services-social/internal/services"
	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// FilmstripServiceAPI 定义 FilmstripHandler 依赖的 Service 能力。
type FilmstripServiceAPI interface {
	Create(ctx context.Context, input services.CreateFilmstripInput) (*vo.Filmstrip, error)
	Get(ctx context.Context, viewerID, sessionID string) (*vo.Filmstrip, error)
	Frame(ctx context.Context, viewerID, sessionID string, index int) (*vo.FrameBlob, error)
	Dismiss(ctx context.Context, viewerID, sessionID string)
	SelectCover(ctx context.Context, viewerID, videoID string, offsetMicros int64) (*vo.CoverSelection, error)
}

// FilmstripHandler 处理封面选帧相关请求。
type FilmstripHandler struct {
	*BaseHandler
	service FilmstripServiceAPI
	log     *log.Helper
}

// NewFilmstripHandler 构造 FilmstripHandler。
func NewFilmstripHandler(service FilmstripServiceAPI, base *BaseHandler, logger log.Logger) *FilmstripHandler {
	if base == nil {
		base = NewBaseHandler(HandlerTimeouts{})
	}
	return &FilmstripHandler{
		BaseHandler: base,
		service:     service,
		log:         log.NewHelper(logger),
	}
}

// Create 建立抽帧会话,仅视频所有者可用。
func (h *FilmstripHandler) Create(ctx context.Context, req *CreateFilmstripRequest) (*FilmstripReply, error) {
	if req == nil {
		return nil, kerrors.BadRequest(reasonInvalidArgument, "request is nil")
	}
	if _, err := uuid.Parse(req.VideoID); err != nil {
		return nil, kerrors.BadRequest(reasonInvalidArgument, "invalid video id")
	}
	meta := h.ExtractMetadata(ctx)
	if meta.InvalidUserInfo || meta.UserID == "" {
		return nil, errUnauthenticated()
	}

	// 抽帧批次可能较慢,使用写超时。
	timeoutCtx, cancel := h.WithTimeout(ctx, HandlerTypeMutation)
	defer cancel()

	strip, err := h.service.Create(timeoutCtx, services.CreateFilmstripInput{
		ViewerID:   meta.UserID,
		VideoID:    req.VideoID,
		FrameCount: req.FrameCount,
	})
	if err != nil {
		h.log.WithContext(ctx).Errorw("msg", "create filmstrip failed", "video_id", req.VideoID, "error", err)
		return nil, toKratosError(err)
	}
	return toFilmstripReply(strip), nil
}

// Get 返回会话的帧元数据。
func (h *FilmstripHandler) Get(ctx context.Context, req *SessionRequest) (*FilmstripReply, error) {
	viewerID, err := h.sessionViewer(ctx, req)
	if err != nil {
		return nil, err
	}
	timeoutCtx, cancel := h.WithTimeout(ctx, HandlerTypeQuery)
	defer cancel()

	strip, err := h.service.Get(timeoutCtx, viewerID, req.SessionID)
	if err != nil {
		return nil, toKratosError(err)
	}
	return toFilmstripReply(strip), nil
}

// Frame 返回会话内单帧的图像数据。
func (h *FilmstripHandler) Frame(ctx context.Context, req *FrameRequest) (*vo.FrameBlob, error) {
	if req == nil {
		return nil, kerrors.BadRequest(reasonInvalidArgument, "request is nil")
	}
	if _, err := uuid.Parse(req.SessionID); err != nil {
		return nil, kerrors.BadRequest(reasonInvalidArgument, "invalid session id")
	}
	if req.Index < 0 {
		return nil, kerrors.BadRequest(reasonInvalidArgument, "invalid frame index")
	}
	meta := h.ExtractMetadata(ctx)
	if meta.InvalidUserInfo || meta.UserID == "" {
		return nil, errUnauthenticated()
	}
	timeoutCtx, cancel := h.WithTimeout(ctx, HandlerTypeQuery)
	defer cancel()

	blob, err := h.service.Frame(timeoutCtx, meta.UserID, req.SessionID, req.Index)
	if err != nil {
		return nil, toKratosError(err)
	}
	return blob, nil
}

// Dismiss 关闭会话并释放帧数据,重复关闭是幂等的。
func (h *FilmstripHandler) Dismiss(ctx context.Context, req *SessionRequest) (*EmptyReply, error) {
	viewerID, err := h.sessionViewer(ctx, req)
	if err != nil {
		return nil, err
	}
	timeoutCtx, cancel := h.WithTimeout(ctx, HandlerTypeMutation)
	defer cancel()

	h.service.Dismiss(timeoutCtx, viewerID, req.SessionID)
	return &EmptyReply{}, nil
}

// SelectCover 写入选定的封面偏移。
func (h *FilmstripHandler) SelectCover(ctx context.Context, req *SelectCoverRequest) (*CoverReply, error) {
	if req == nil {
		return nil, kerrors.BadRequest(reasonInvalidArgument, "request is nil")
	}
	if _, err := uuid.Parse(req.VideoID); err != nil {
		return nil, kerrors.BadRequest(reasonInvalidArgument, "invalid video id")
	}
	meta := h.ExtractMetadata(ctx)
	if meta.InvalidUserInfo || meta.UserID == "" {
		return nil, errUnauthenticated()
	}
	timeoutCtx, cancel := h.WithTimeout(ctx, HandlerTypeMutation)
	defer cancel()

	selection, err := h.service.SelectCover(timeoutCtx, meta.UserID, req.VideoID, req.OffsetMicros)
	if err != nil {
		h.log.WithContext(ctx).Errorw("msg", "select cover failed", "video_id", req.VideoID, "error", err)
		return nil, toKratosError(err)
	}
	return &CoverReply{
		VideoID:      selection.VideoID,
		OffsetMicros: selection.OffsetMicros,
		UpdatedAt:    selection.UpdatedAt,
	}, nil
}

func (h *FilmstripHandler) sessionViewer(ctx context.Context, req *SessionRequest) (string, error) {
	if req == nil {
		return "", kerrors.BadRequest(reasonInvalidArgument, "request is nil")
	}
	if _, err := uuid.Parse(req.SessionID); err != nil {
		return "", kerrors.BadRequest(reasonInvalidArgument, "invalid session id")
	}
	meta := h.ExtractMetadata(ctx)
	if meta.InvalidUserInfo || meta.UserID == "" {
		return "", errUnauthenticated()
	}
	return meta.UserID, nil
}

func toFilmstripReply(strip *vo.Filmstrip) *FilmstripReply {
	if strip == nil {
		return &FilmstripReply{Frames: []FilmstripFrameReply{}, Missing: []MissingFrameReply{}}
	}
	reply := &FilmstripReply{
		SessionID: strip.SessionID,
		VideoID:   strip.VideoID,
		Frames:    make([]FilmstripFrameReply, 0, len(strip.Frames)),
		Missing:   make([]MissingFrameReply, 0, len(strip.Missing)),
		Partial:   strip.Partial,
		ExpiresAt: strip.ExpiresAt,
	}
	for _, frame := range strip.Frames {
		reply.Frames = append(reply.Frames, FilmstripFrameReply{
			Index:        frame.Index,
			OffsetMicros: frame.OffsetMicros,
			ContentType:  frame.ContentType,
			SizeBytes:    frame.SizeBytes,
		})
	}
	for _, missing := range strip.Missing {
		reply.Missing = append(reply.Missing, MissingFrameReply{
			Index:        missing.Index,
			OffsetMicros: missing.OffsetMicros,
			Reason:       missing.Reason,
		})
	}
	return reply
}
