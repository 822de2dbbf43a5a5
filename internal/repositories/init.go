// Package repositories 提供基于 PostgreSQL 的数据访问层。
// 仓储方法默认使用连接池执行；传入 txmanager.Session 时复用调用方事务。
package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/bionicotaku/lingo-services-social/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProviderSet 汇总仓储层构造函数供 Wire 使用。
var ProviderSet = wire.NewSet(
	NewPgxPool,
	NewFollowRepository,
	NewProfileProjectionRepository,
	NewVideoProjectionRepository,
	NewSuggestionRepository,
	NewSuggestionLogRepository,
	NewInboxRepository,
	NewOutboxRepository,
)

// NewPgxPool 根据配置构造 pgx 连接池，并在退出时释放。
func NewPgxPool(cfg *conf.Config, logger log.Logger) (*pgxpool.Pool, func(), error) {
	helper := log.NewHelper(logger)
	poolCfg, err := pgxpool.ParseConfig(cfg.Data.Database.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("parse database dsn: %w", err)
	}
	if cfg.Data.Database.MaxConns > 0 {
		poolCfg.MaxConns = cfg.Data.Database.MaxConns
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	helper.Infow("msg", "database pool ready", "max_conns", poolCfg.MaxConns)
	cleanup := func() {
		helper.Infow("msg", "closing database pool")
		pool.Close()
	}
	return pool, cleanup, nil
}
