package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bionicotaku/lingo-services-social/internal/models/po"
	"github.com/bionicotaku/lingo-services-social/internal/repositories/mappers"
	"github.com/bionicotaku/lingo-services-social/internal/repositories/socialdb"
	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SuggestionLogRepository 负责推荐调用日志持久化。
type SuggestionLogRepository struct {
	db      *pgxpool.Pool
	queries *socialdb.Queries
	log     *log.Helper
}

// NewSuggestionLogRepository 构造仓储实例。
func NewSuggestionLogRepository(db *pgxpool.Pool, logger log.Logger) *SuggestionLogRepository {
	return &SuggestionLogRepository{
		db:      db,
		queries: socialdb.New(db),
		log:     log.NewHelper(logger),
	}
}

// Insert 写入推荐日志。
func (r *SuggestionLogRepository) Insert(ctx context.Context, sess txmanager.Session, logEntry po.SuggestionLog) error {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}
	suggested := logEntry.SuggestedItems
	if suggested == nil {
		suggested = []po.SuggestedItemLog{}
	}
	suggestedPayload, err := json.Marshal(suggested)
	if err != nil {
		return fmt.Errorf("marshal suggested_items: %w", err)
	}
	var generatedAt *time.Time
	if !logEntry.GeneratedAt.IsZero() {
		gt := logEntry.GeneratedAt.UTC()
		generatedAt = &gt
	}
	params := socialdb.InsertSuggestionLogParams{
		ViewerID:       mappers.ToPgText(logEntry.ViewerID),
		Requested:      logEntry.Requested,
		Returned:       logEntry.Returned,
		Source:         logEntry.Source,
		GraphLatencyMs: mappers.ToPgInt4(logEntry.GraphLatencyMS),
		SuggestedItems: suggestedPayload,
		ErrorKind:      mappers.ToPgText(logEntry.ErrorKind),
		GeneratedAt:    mappers.ToPgTimestamptzPtr(generatedAt),
	}
	if err := queries.InsertSuggestionLog(ctx, params); err != nil {
		r.log.WithContext(ctx).Errorw("msg", "insert suggestion log failed", "error", err)
		return fmt.Errorf("insert suggestion log: %w", err)
	}
	return nil
}
