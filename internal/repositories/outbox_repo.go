package repositories

import (
	"context"
	"fmt"

	"github.com/bionicotaku/lingo-services-social/internal/models/po"
	"github.com/bionicotaku/lingo-services-social/internal/repositories/mappers"
	"github.com/bionicotaku/lingo-services-social/internal/repositories/socialdb"
	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OutboxRepository 管理 social.outbox_events。
// 事件写入由业务仓储在各自事务内完成,这里只负责外发侧的读取与标记。
type OutboxRepository struct {
	db      *pgxpool.Pool
	queries *socialdb.Queries
	log     *log.Helper
}

// NewOutboxRepository 构造 OutboxRepository。
func NewOutboxRepository(db *pgxpool.Pool, logger log.Logger) *OutboxRepository {
	return &OutboxRepository{
		db:      db,
		queries: socialdb.New(db),
		log:     log.NewHelper(logger),
	}
}

// ListUnpublished 按发生顺序返回未发布事件。
func (r *OutboxRepository) ListUnpublished(ctx context.Context, sess txmanager.Session, limit int) ([]*po.OutboxEvent, error) {
	if limit <= 0 {
		return nil, nil
	}
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}
	rows, err := queries.ListUnpublishedOutboxEvents(ctx, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("list unpublished outbox events: %w", err)
	}
	result := make([]*po.OutboxEvent, 0, len(rows))
	for _, row := range rows {
		result = append(result, mappers.OutboxEventFromRow(row))
	}
	return result, nil
}

// MarkPublished 标记事件已发布。
func (r *OutboxRepository) MarkPublished(ctx context.Context, sess txmanager.Session, eventID uuid.UUID) error {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}
	if err := queries.MarkOutboxPublished(ctx, eventID); err != nil {
		r.log.WithContext(ctx).Errorw("msg", "mark outbox published failed", "event_id", eventID, "error", err)
		return fmt.Errorf("mark outbox published: %w", err)
	}
	return nil
}
