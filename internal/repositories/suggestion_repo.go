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

// SuggestionRepository 基于关注图谱产出推荐候选。
type SuggestionRepository struct {
	db      *pgxpool.Pool
	queries *socialdb.Queries
	log     *log.Helper
}

// NewSuggestionRepository 构造仓储实例。
func NewSuggestionRepository(db *pgxpool.Pool, logger log.Logger) *SuggestionRepository {
	return &SuggestionRepository{
		db:      db,
		queries: socialdb.New(db),
		log:     log.NewHelper(logger),
	}
}

// ListCandidates 返回按互关数降序的推荐候选。
// 结果排除本人、已关注、已忽略与不可被发现的用户。
func (r *SuggestionRepository) ListCandidates(ctx context.Context, sess txmanager.Session, viewerID uuid.UUID, limit, sampleLimit int) ([]*po.SuggestionCandidate, error) {
	if limit <= 0 {
		return nil, nil
	}
	if sampleLimit < 0 {
		sampleLimit = 0
	}
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}
	rows, err := queries.ListSuggestionCandidates(ctx, socialdb.ListSuggestionCandidatesParams{
		ViewerID:    viewerID,
		SampleLimit: int32(sampleLimit),
		RowLimit:    int32(limit),
	})
	if err != nil {
		r.log.WithContext(ctx).Errorw("msg", "list suggestion candidates failed", "viewer_id", viewerID, "error", err)
		return nil, fmt.Errorf("list suggestion candidates: %w", err)
	}
	result := make([]*po.SuggestionCandidate, 0, len(rows))
	for _, row := range rows {
		result = append(result, mappers.SuggestionCandidateFromRow(row))
	}
	return result, nil
}

// ListFallback 返回冷启动兜底候选，按资料更新时间倒序。
func (r *SuggestionRepository) ListFallback(ctx context.Context, sess txmanager.Session, viewerID uuid.UUID, limit int) ([]*po.SuggestionCandidate, error) {
	if limit <= 0 {
		return nil, nil
	}
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}
	rows, err := queries.ListFallbackProfiles(ctx, socialdb.ListFallbackProfilesParams{
		ViewerID: viewerID,
		RowLimit: int32(limit),
	})
	if err != nil {
		r.log.WithContext(ctx).Errorw("msg", "list fallback profiles failed", "viewer_id", viewerID, "error", err)
		return nil, fmt.Errorf("list fallback profiles: %w", err)
	}
	result := make([]*po.SuggestionCandidate, 0, len(rows))
	for _, row := range rows {
		result = append(result, mappers.SuggestionCandidateFromFallbackRow(row))
	}
	return result, nil
}

// Dismiss 记录观察者对某个推荐对象的忽略，重复忽略会刷新时间。
func (r *SuggestionRepository) Dismiss(ctx context.Context, sess txmanager.Session, viewerID, targetID uuid.UUID) error {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}
	if err := queries.CreateSuggestionDismissal(ctx, socialdb.CreateSuggestionDismissalParams{
		ViewerID: viewerID,
		TargetID: targetID,
	}); err != nil {
		r.log.WithContext(ctx).Errorw("msg", "create suggestion dismissal failed", "viewer_id", viewerID, "target_id", targetID, "error", err)
		return fmt.Errorf("create suggestion dismissal: %w", err)
	}
	return nil
}
