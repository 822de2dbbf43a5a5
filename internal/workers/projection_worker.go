// Package workers 实现投影同步与事件外发的后台循环。
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/bionicotaku/lingo-services-social/internal/clients/eventbus"
	"github.com/bionicotaku/lingo-services-social/internal/conf"
	"github.com/bionicotaku/lingo-services-social/internal/services"
	"github.com/bionicotaku/lingo-services-social/pkg/metrics"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/google/wire"
)

// ProviderSet 汇总 Worker 构造函数供 Wire 使用。
var ProviderSet = wire.NewSet(NewProjectionWorker)

// ProjectionWorker 周期性地应用 Inbox 事件并外发 Outbox 事件。
// 单条失败只记录错误,留待下一轮重试。
type ProjectionWorker struct {
	inbox      services.InboxRepository
	outbox     services.OutboxRepository
	projection *services.ProjectionService
	publisher  *eventbus.Publisher
	batchSize  int
	interval   time.Duration
	log        *log.Helper

	stopOnce sync.Once
	stopped  chan struct{}
	done     chan struct{}
}

// NewProjectionWorker 构造 ProjectionWorker。
func NewProjectionWorker(
	inbox services.InboxRepository,
	outbox services.OutboxRepository,
	projection *services.ProjectionService,
	publisher *eventbus.Publisher,
	cfg *conf.Config,
	logger log.Logger,
) *ProjectionWorker {
	return &ProjectionWorker{
		inbox:      inbox,
		outbox:     outbox,
		projection: projection,
		publisher:  publisher,
		batchSize:  conf.IntOr(cfg.Worker.BatchSize, conf.DefaultWorkerBatchSize),
		interval:   conf.Duration(cfg.Worker.PollInterval, conf.DefaultWorkerPollPeriod),
		log:        log.NewHelper(logger),
		stopped:    make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Start 阻塞运行轮询循环,直到 ctx 取消或 Stop 被调用。
func (w *ProjectionWorker) Start(ctx context.Context) error {
	defer close(w.done)
	w.log.Infow("msg", "projection worker started", "interval", w.interval.String(), "batch_size", w.batchSize)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Infow("msg", "projection worker stopping", "reason", ctx.Err())
			return nil
		case <-w.stopped:
			w.log.Infow("msg", "projection worker stopping", "reason", "stop requested")
			return nil
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// Stop 请求停止并等待循环退出。
func (w *ProjectionWorker) Stop(ctx context.Context) error {
	w.stopOnce.Do(func() { close(w.stopped) })
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunOnce 执行一轮 Inbox 应用与 Outbox 外发。
func (w *ProjectionWorker) RunOnce(ctx context.Context) {
	w.applyInbox(ctx)
	w.relayOutbox(ctx)
}

func (w *ProjectionWorker) applyInbox(ctx context.Context) {
	events, err := w.inbox.ListUnprocessed(ctx, nil, w.batchSize)
	if err != nil {
		w.log.WithContext(ctx).Errorw("msg", "list unprocessed inbox events failed", "error", err)
		return
	}
	for _, evt := range events {
		eventID, parseErr := uuid.Parse(evt.EventID)
		if parseErr != nil {
			w.log.WithContext(ctx).Errorw("msg", "invalid inbox event id", "event_id", evt.EventID, "error", parseErr)
			continue
		}
		result, applyErr := w.projection.Apply(ctx, evt)
		if applyErr != nil {
			metrics.InboxApplied.WithLabelValues("error").Inc()
			w.log.WithContext(ctx).Errorw("msg", "apply inbox event failed", "event_id", evt.EventID, "event_type", evt.EventType, "error", applyErr)
			if recordErr := w.inbox.RecordError(ctx, nil, eventID, applyErr.Error()); recordErr != nil {
				w.log.WithContext(ctx).Errorw("msg", "record inbox error failed", "event_id", evt.EventID, "error", recordErr)
			}
			continue
		}
		metrics.InboxApplied.WithLabelValues(string(result)).Inc()
		now := time.Now().UTC()
		if markErr := w.inbox.MarkProcessed(ctx, nil, eventID, &now); markErr != nil {
			w.log.WithContext(ctx).Errorw("msg", "mark inbox processed failed", "event_id", evt.EventID, "error", markErr)
		}
	}
}

func (w *ProjectionWorker) relayOutbox(ctx context.Context) {
	if !w.publisher.Enabled() {
		return
	}
	events, err := w.outbox.ListUnpublished(ctx, nil, w.batchSize)
	if err != nil {
		w.log.WithContext(ctx).Errorw("msg", "list unpublished outbox events failed", "error", err)
		return
	}
	for _, evt := range events {
		eventID, parseErr := uuid.Parse(evt.EventID)
		if parseErr != nil {
			w.log.WithContext(ctx).Errorw("msg", "invalid outbox event id", "event_id", evt.EventID, "error", parseErr)
			continue
		}
		if publishErr := w.publisher.Publish(ctx, evt); publishErr != nil {
			metrics.OutboxPublished.WithLabelValues("error").Inc()
			w.log.WithContext(ctx).Errorw("msg", "publish outbox event failed", "event_id", evt.EventID, "error", publishErr)
			continue
		}
		if markErr := w.outbox.MarkPublished(ctx, nil, eventID); markErr != nil {
			w.log.WithContext(ctx).Errorw("msg", "mark outbox published failed", "event_id", evt.EventID, "error", markErr)
			continue
		}
		metrics.OutboxPublished.WithLabelValues("ok").Inc()
	}
}
