package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bionicotaku/lingo-services-social/internal/models/po"
	"github.com/bionicotaku/lingo-services-social/internal/repositories/mappers"
	"github.com/bionicotaku/lingo-services-social/internal/repositories/socialdb"
	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// VideoProjectionRepository 维护 social.videos_projection 投影。
type VideoProjectionRepository struct {
	db      *pgxpool.Pool
	queries *socialdb.Queries
	log     *log.Helper
}

// NewVideoProjectionRepository 构造仓储实例。
func NewVideoProjectionRepository(db *pgxpool.Pool, logger log.Logger) *VideoProjectionRepository {
	return &VideoProjectionRepository{
		db:      db,
		queries: socialdb.New(db),
		log:     log.NewHelper(logger),
	}
}

// UpsertVideoProjectionInput 描述投影写入参数。
// 封面偏移由 SetCover 单独维护，upsert 不会覆盖。
type UpsertVideoProjectionInput struct {
	VideoID        uuid.UUID
	OwnerID        uuid.UUID
	Title          string
	MediaURL       *string
	DurationMicros *int64
	Status         *string
	Version        int64
	UpdatedAt      *time.Time
}

// Upsert 写入或更新投影记录，版本落后的写入会被忽略。
func (r *VideoProjectionRepository) Upsert(ctx context.Context, sess txmanager.Session, input UpsertVideoProjectionInput) error {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}
	params := socialdb.UpsertVideoProjectionParams{
		VideoID:        input.VideoID,
		OwnerID:        input.OwnerID,
		Title:          input.Title,
		MediaUrl:       mappers.ToPgText(input.MediaURL),
		DurationMicros: mappers.ToPgInt8(input.DurationMicros),
		Status:         mappers.ToPgText(input.Status),
		Version:        input.Version,
		Column8:        mappers.ToPgTimestamptzPtr(input.UpdatedAt),
	}
	if err := queries.UpsertVideoProjection(ctx, params); err != nil {
		r.log.WithContext(ctx).Errorw("msg", "upsert video projection failed", "video_id", input.VideoID, "error", err)
		return fmt.Errorf("upsert video projection: %w", err)
	}
	return nil
}

// Get 返回单个投影，不存在时返回 ErrVideoNotFound。
func (r *VideoProjectionRepository) Get(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) (*po.VideoProjection, error) {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}
	row, err := queries.GetVideoProjection(ctx, videoID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVideoNotFound
		}
		return nil, fmt.Errorf("get video projection: %w", err)
	}
	return mappers.VideoProjectionFromRow(row), nil
}

// SetCover 持久化封面偏移并发布事件。更新按 owner 过滤，
// 视频不存在或归属不符时返回 false 且不产生事件。
func (r *VideoProjectionRepository) SetCover(ctx context.Context, sess txmanager.Session, videoID, ownerID uuid.UUID, offsetMicros int64) (bool, error) {
	if sess != nil {
		return r.setCover(ctx, r.queries.WithTx(sess.Tx()), videoID, ownerID, offsetMicros)
	}
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin cover tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	updated, err := r.setCover(ctx, r.queries.WithTx(tx), videoID, ownerID, offsetMicros)
	if err != nil {
		return false, err
	}
	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit cover tx: %w", err)
	}
	return updated, nil
}

func (r *VideoProjectionRepository) setCover(ctx context.Context, queries *socialdb.Queries, videoID, ownerID uuid.UUID, offsetMicros int64) (bool, error) {
	rows, err := queries.SetVideoCover(ctx, socialdb.SetVideoCoverParams{
		CoverOffsetMicros: mappers.ToPgInt8(&offsetMicros),
		VideoID:           videoID,
		OwnerID:           ownerID,
	})
	if err != nil {
		r.log.WithContext(ctx).Errorw("msg", "set video cover failed", "video_id", videoID, "error", err)
		return false, fmt.Errorf("set video cover: %w", err)
	}
	if rows == 0 {
		return false, nil
	}
	payload, err := json.Marshal(po.CoverSelectedPayload{
		VideoID:      videoID.String(),
		OwnerID:      ownerID.String(),
		OffsetMicros: offsetMicros,
		SelectedAt:   time.Now().UTC(),
	})
	if err != nil {
		return false, fmt.Errorf("marshal cover payload: %w", err)
	}
	if err := queries.InsertOutboxEvent(ctx, socialdb.InsertOutboxEventParams{
		EventID:       uuid.New(),
		AggregateType: "video",
		AggregateID:   videoID.String(),
		EventType:     po.EventCoverSelected,
		Payload:       payload,
	}); err != nil {
		return false, fmt.Errorf("enqueue cover event: %w", err)
	}
	return true, nil
}

// Delete 删除投影记录。
func (r *VideoProjectionRepository) Delete(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) error {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}
	if err := queries.DeleteVideoProjection(ctx, videoID); err != nil {
		r.log.WithContext(ctx).Errorw("msg", "delete video projection failed", "video_id", videoID, "error", err)
		return fmt.Errorf("delete video projection: %w", err)
	}
	return nil
}
