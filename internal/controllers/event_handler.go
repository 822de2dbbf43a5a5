package controllers

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"time"

	"github.com/bionicotaku/lingo-services-social/internal/models/po"
	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// EventIngestAPI 定义 EventHandler 依赖的 Service 能力。
type EventIngestAPI interface {
	Ingest(ctx context.Context, evt po.InboxEvent) error
}

// EventHandler 处理事件桥的推送请求。
// 端点由共享令牌保护,令牌未配置时拒绝所有推送。
type EventHandler struct {
	*BaseHandler
	service EventIngestAPI
	token   string
	log     *log.Helper
}

// NewEventHandler 构造 EventHandler。
func NewEventHandler(service EventIngestAPI, base *BaseHandler, token PushToken, logger log.Logger) *EventHandler {
	if base == nil {
		base = NewBaseHandler(HandlerTimeouts{})
	}
	return &EventHandler{
		BaseHandler: base,
		service:     service,
		token:       string(token),
		log:         log.NewHelper(logger),
	}
}

// Push 解码推送信封并写入 Inbox。重复推送是幂等的。
func (h *EventHandler) Push(ctx context.Context, req *PushRequest) (*PushReply, error) {
	if req == nil {
		return nil, kerrors.BadRequest(reasonInvalidArgument, "request is nil")
	}
	if h.token == "" || subtle.ConstantTimeCompare([]byte(req.Token), []byte(h.token)) != 1 {
		return nil, kerrors.Unauthorized(reasonUnauthenticated, "invalid push token")
	}
	payload, err := base64.StdEncoding.DecodeString(req.Message.Data)
	if err != nil {
		return nil, kerrors.BadRequest(reasonInvalidArgument, "invalid message data")
	}

	attrs := req.Message.Attributes
	eventID := attrs["event_id"]
	if eventID == "" {
		eventID = req.Message.MessageID
	}
	if _, err := uuid.Parse(eventID); err != nil {
		return nil, kerrors.BadRequest(reasonInvalidArgument, "invalid event id")
	}
	evt := po.InboxEvent{
		EventID:       eventID,
		SourceService: attrs["source_service"],
		EventType:     attrs["event_type"],
		Payload:       payload,
		ReceivedAt:    time.Now().UTC(),
	}
	if aggregateType, ok := attrs["aggregate_type"]; ok && aggregateType != "" {
		evt.AggregateType = &aggregateType
	}
	if aggregateID, ok := attrs["aggregate_id"]; ok && aggregateID != "" {
		evt.AggregateID = &aggregateID
	}

	timeoutCtx, cancel := h.WithTimeout(ctx, HandlerTypeMutation)
	defer cancel()

	if err := h.service.Ingest(timeoutCtx, evt); err != nil {
		h.log.WithContext(ctx).Errorw("msg", "ingest push event failed", "event_id", eventID, "error", err)
		return nil, kerrors.InternalServer(reasonInternal, "ingest event failed")
	}
	return &PushReply{EventID: eventID}, nil
}
