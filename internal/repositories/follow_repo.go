package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bionicotaku/lingo-services-social/internal/models/po"
	"github.com/bionicotaku/lingo-services-social/internal/repositories/socialdb"
	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FollowRepository 维护 social.follows 关注边。
// 写操作在同一事务内追加 Outbox 事件，保证图谱变更与事件发布原子。
type FollowRepository struct {
	db      *pgxpool.Pool
	queries *socialdb.Queries
	log     *log.Helper
}

// NewFollowRepository 构造仓储实例。
func NewFollowRepository(db *pgxpool.Pool, logger log.Logger) *FollowRepository {
	return &FollowRepository{
		db:      db,
		queries: socialdb.New(db),
		log:     log.NewHelper(logger),
	}
}

// Create 写入关注边。边已存在时不产生事件，返回 false。
func (r *FollowRepository) Create(ctx context.Context, sess txmanager.Session, followerID, followeeID uuid.UUID) (bool, error) {
	if sess != nil {
		return r.create(ctx, r.queries.WithTx(sess.Tx()), followerID, followeeID)
	}
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin follow tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	created, err := r.create(ctx, r.queries.WithTx(tx), followerID, followeeID)
	if err != nil {
		return false, err
	}
	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit follow tx: %w", err)
	}
	return created, nil
}

func (r *FollowRepository) create(ctx context.Context, queries *socialdb.Queries, followerID, followeeID uuid.UUID) (bool, error) {
	rows, err := queries.CreateFollow(ctx, socialdb.CreateFollowParams{
		FollowerID: followerID,
		FolloweeID: followeeID,
	})
	if err != nil {
		r.log.WithContext(ctx).Errorw("msg", "create follow failed", "follower_id", followerID, "followee_id", followeeID, "error", err)
		return false, fmt.Errorf("create follow: %w", err)
	}
	if rows == 0 {
		return false, nil
	}
	if err := r.enqueueFollowEvent(ctx, queries, po.EventFollowCreated, followerID, followeeID); err != nil {
		return false, err
	}
	return true, nil
}

// Delete 删除关注边。边不存在时不产生事件，返回 false。
func (r *FollowRepository) Delete(ctx context.Context, sess txmanager.Session, followerID, followeeID uuid.UUID) (bool, error) {
	if sess != nil {
		return r.delete(ctx, r.queries.WithTx(sess.Tx()), followerID, followeeID)
	}
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin unfollow tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	removed, err := r.delete(ctx, r.queries.WithTx(tx), followerID, followeeID)
	if err != nil {
		return false, err
	}
	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit unfollow tx: %w", err)
	}
	return removed, nil
}

func (r *FollowRepository) delete(ctx context.Context, queries *socialdb.Queries, followerID, followeeID uuid.UUID) (bool, error) {
	rows, err := queries.DeleteFollow(ctx, socialdb.DeleteFollowParams{
		FollowerID: followerID,
		FolloweeID: followeeID,
	})
	if err != nil {
		r.log.WithContext(ctx).Errorw("msg", "delete follow failed", "follower_id", followerID, "followee_id", followeeID, "error", err)
		return false, fmt.Errorf("delete follow: %w", err)
	}
	if rows == 0 {
		return false, nil
	}
	if err := r.enqueueFollowEvent(ctx, queries, po.EventFollowRemoved, followerID, followeeID); err != nil {
		return false, err
	}
	return true, nil
}

// Exists 判断关注边是否存在。
func (r *FollowRepository) Exists(ctx context.Context, sess txmanager.Session, followerID, followeeID uuid.UUID) (bool, error) {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}
	exists, err := queries.FollowExists(ctx, socialdb.FollowExistsParams{
		FollowerID: followerID,
		FolloweeID: followeeID,
	})
	if err != nil {
		return false, fmt.Errorf("follow exists: %w", err)
	}
	return exists, nil
}

func (r *FollowRepository) enqueueFollowEvent(ctx context.Context, queries *socialdb.Queries, eventType string, followerID, followeeID uuid.UUID) error {
	payload, err := json.Marshal(po.FollowEventPayload{
		FollowerID: followerID.String(),
		FolloweeID: followeeID.String(),
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal follow payload: %w", err)
	}
	if err := queries.InsertOutboxEvent(ctx, socialdb.InsertOutboxEventParams{
		EventID:       uuid.New(),
		AggregateType: "follow",
		AggregateID:   followerID.String() + ":" + followeeID.String(),
		EventType:     eventType,
		Payload:       payload,
	}); err != nil {
		return fmt.Errorf("enqueue follow event: %w", err)
	}
	return nil
}
