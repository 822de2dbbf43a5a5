package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/bionicotaku/lingo-services-social/internal/models/po"
	"github.com/bionicotaku/lingo-services-social/internal/repositories/mappers"
	"github.com/bionicotaku/lingo-services-social/internal/repositories/socialdb"
	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InboxRepository 管理 social.inbox_events。
type InboxRepository struct {
	db      *pgxpool.Pool
	queries *socialdb.Queries
	log     *log.Helper
}

// NewInboxRepository 构造 InboxRepository。
func NewInboxRepository(db *pgxpool.Pool, logger log.Logger) *InboxRepository {
	return &InboxRepository{
		db:      db,
		queries: socialdb.New(db),
		log:     log.NewHelper(logger),
	}
}

// InsertInboxEvent 写入 Inbox 记录，event_id 冲突时静默忽略。
func (r *InboxRepository) InsertInboxEvent(ctx context.Context, sess txmanager.Session, evt po.InboxEvent) error {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}
	id, err := uuid.Parse(evt.EventID)
	if err != nil {
		return fmt.Errorf("parse event_id: %w", err)
	}
	received := mappers.ToPgTimestamptzPtr(nil)
	if !evt.ReceivedAt.IsZero() {
		ts := evt.ReceivedAt.UTC()
		received = mappers.ToPgTimestamptzPtr(&ts)
	}
	params := socialdb.InsertInboxEventParams{
		EventID:       id,
		SourceService: evt.SourceService,
		EventType:     evt.EventType,
		AggregateType: mappers.ToPgText(evt.AggregateType),
		AggregateID:   mappers.ToPgText(evt.AggregateID),
		Payload:       evt.Payload,
		Column7:       received,
	}
	if err := queries.InsertInboxEvent(ctx, params); err != nil {
		r.log.WithContext(ctx).Errorw("msg", "insert inbox event failed", "event_id", evt.EventID, "error", err)
		return fmt.Errorf("insert inbox event: %w", err)
	}
	return nil
}

// ListUnprocessed 按接收顺序返回未处理事件。
func (r *InboxRepository) ListUnprocessed(ctx context.Context, sess txmanager.Session, limit int) ([]*po.InboxEvent, error) {
	if limit <= 0 {
		return nil, nil
	}
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}
	rows, err := queries.ListUnprocessedInboxEvents(ctx, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("list unprocessed inbox events: %w", err)
	}
	result := make([]*po.InboxEvent, 0, len(rows))
	for _, row := range rows {
		result = append(result, mappers.InboxEventFromRow(row))
	}
	return result, nil
}

// MarkProcessed 设置事件已处理并清空错误信息。
func (r *InboxRepository) MarkProcessed(ctx context.Context, sess txmanager.Session, eventID uuid.UUID, processedAt *time.Time) error {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}
	if err := queries.MarkInboxProcessed(ctx, socialdb.MarkInboxProcessedParams{
		EventID:     eventID,
		ProcessedAt: mappers.ToPgTimestamptzPtr(processedAt),
	}); err != nil {
		return fmt.Errorf("mark inbox processed: %w", err)
	}
	return nil
}

// RecordError 写入错误信息。
func (r *InboxRepository) RecordError(ctx context.Context, sess txmanager.Session, eventID uuid.UUID, lastError string) error {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}
	if err := queries.RecordInboxError(ctx, socialdb.RecordInboxErrorParams{
		EventID:   eventID,
		LastError: mappers.ToPgText(&lastError),
	}); err != nil {
		return fmt.Errorf("record inbox error: %w", err)
	}
	return nil
}

// Get 返回指定 Inbox 事件。
func (r *InboxRepository) Get(ctx context.Context, sess txmanager.Session, eventID uuid.UUID) (*po.InboxEvent, error) {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}
	row, err := queries.GetInboxEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get inbox event: %w", err)
	}
	return mappers.InboxEventFromRow(row), nil
}
