package services

import (
	"context"
	"fmt"

	"github.com/bionicotaku/lingo-services-social/internal/models/po"
	"github.com/go-kratos/kratos/v2/log"
)

// EventIngestService 接收事件桥推送并写入 Inbox。
// event_id 冲突静默忽略,推送重试因此是幂等的。
type EventIngestService struct {
	inbox InboxRepository
	log   *log.Helper
}

// NewEventIngestService 构造 EventIngestService。
func NewEventIngestService(inbox InboxRepository, logger log.Logger) *EventIngestService {
	return &EventIngestService{
		inbox: inbox,
		log:   log.NewHelper(logger),
	}
}

// Ingest 校验并持久化一条入站事件。
func (s *EventIngestService) Ingest(ctx context.Context, evt po.InboxEvent) error {
	if evt.EventID == "" {
		return fmt.Errorf("event_id is empty")
	}
	if evt.EventType == "" {
		return fmt.Errorf("event_type is empty")
	}
	if len(evt.Payload) == 0 {
		evt.Payload = []byte("{}")
	}
	if err := s.inbox.InsertInboxEvent(ctx, nil, evt); err != nil {
		return err
	}
	s.log.WithContext(ctx).Infow("msg", "inbox event ingested", "event_id", evt.EventID, "event_type", evt.EventType)
	return nil
}
