package repositories

import (
	"context"
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

// ProfileProjectionRepository 维护 social.profiles_projection 投影。
type ProfileProjectionRepository struct {
	db      *pgxpool.Pool
	queries *socialdb.Queries
	log     *log.Helper
}

// NewProfileProjectionRepository 构造仓储实例。
func NewProfileProjectionRepository(db *pgxpool.Pool, logger log.Logger) *ProfileProjectionRepository {
	return &ProfileProjectionRepository{
		db:      db,
		queries: socialdb.New(db),
		log:     log.NewHelper(logger),
	}
}

// UpsertProfileProjectionInput 描述投影写入参数。
type UpsertProfileProjectionInput struct {
	UserID       uuid.UUID
	Username     string
	DisplayName  *string
	AvatarURL    *string
	Bio          *string
	Discoverable bool
	Version      int64
	UpdatedAt    *time.Time
}

// Upsert 写入或更新投影记录，版本落后的写入会被忽略。
func (r *ProfileProjectionRepository) Upsert(ctx context.Context, sess txmanager.Session, input UpsertProfileProjectionInput) error {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}
	params := socialdb.UpsertProfileProjectionParams{
		UserID:       input.UserID,
		Username:     input.Username,
		DisplayName:  mappers.ToPgText(input.DisplayName),
		AvatarUrl:    mappers.ToPgText(input.AvatarURL),
		Bio:          mappers.ToPgText(input.Bio),
		Discoverable: input.Discoverable,
		Version:      input.Version,
		Column8:      mappers.ToPgTimestamptzPtr(input.UpdatedAt),
	}
	if err := queries.UpsertProfileProjection(ctx, params); err != nil {
		r.log.WithContext(ctx).Errorw("msg", "upsert profile projection failed", "user_id", input.UserID, "error", err)
		return fmt.Errorf("upsert profile projection: %w", err)
	}
	return nil
}

// Get 返回单个投影，不存在时返回 ErrProfileNotFound。
func (r *ProfileProjectionRepository) Get(ctx context.Context, sess txmanager.Session, userID uuid.UUID) (*po.ProfileProjection, error) {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}
	row, err := queries.GetProfileProjection(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile projection: %w", err)
	}
	return mappers.ProfileProjectionFromRow(row), nil
}

// Purge 删除投影以及该用户参与的关注边与忽略记录。
func (r *ProfileProjectionRepository) Purge(ctx context.Context, sess txmanager.Session, userID uuid.UUID) error {
	if sess != nil {
		return r.purge(ctx, r.queries.WithTx(sess.Tx()), userID)
	}
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin purge tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	if err := r.purge(ctx, r.queries.WithTx(tx), userID); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit purge tx: %w", err)
	}
	return nil
}

func (r *ProfileProjectionRepository) purge(ctx context.Context, queries *socialdb.Queries, userID uuid.UUID) error {
	if err := queries.DeleteProfileProjection(ctx, userID); err != nil {
		r.log.WithContext(ctx).Errorw("msg", "delete profile projection failed", "user_id", userID, "error", err)
		return fmt.Errorf("delete profile projection: %w", err)
	}
	if err := queries.DeleteFollowsForUser(ctx, userID); err != nil {
		return fmt.Errorf("delete follows for user: %w", err)
	}
	if err := queries.DeleteDismissalsForUser(ctx, userID); err != nil {
		return fmt.Errorf("delete dismissals for user: %w", err)
	}
	return nil
}
