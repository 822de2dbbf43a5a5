// Package eventbus 将 Outbox 事件推送到平台事件桥。
package eventbus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bionicotaku/lingo-services-social/internal/conf"
	"github.com/bionicotaku/lingo-services-social/internal/models/po"
	"github.com/go-kratos/kratos/v2/log"
)

// Publisher 通过 HTTP 推送事件。未配置桥地址时处于禁用状态。
type Publisher struct {
	url    string
	source string
	client *http.Client
	log    *log.Helper
}

// publishEnvelope 为事件桥的接收格式。
type publishEnvelope struct {
	EventID       string          `json:"event_id"`
	SourceService string          `json:"source_service"`
	EventType     string          `json:"event_type"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	Payload       json.RawMessage `json:"payload"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// NewPublisher 构造 Publisher。
func NewPublisher(cfg *conf.Config, logger log.Logger) *Publisher {
	timeout := conf.Duration(cfg.Events.PublishTimeout, conf.DefaultPublishTimeout)
	return &Publisher{
		url:    cfg.Events.BridgeURL,
		source: conf.StringOr(cfg.Events.SourceService, "social"),
		client: &http.Client{Timeout: timeout},
		log:    log.NewHelper(logger),
	}
}

// Enabled 返回外发是否启用。
func (p *Publisher) Enabled() bool {
	return p.url != ""
}

// Publish 推送单条事件,非 2xx 响应视为失败。
func (p *Publisher) Publish(ctx context.Context, evt *po.OutboxEvent) error {
	if !p.Enabled() {
		return fmt.Errorf("event bridge is not configured")
	}
	body, err := json.Marshal(publishEnvelope{
		EventID:       evt.EventID,
		SourceService: p.source,
		EventType:     evt.EventType,
		AggregateType: evt.AggregateType,
		AggregateID:   evt.AggregateID,
		Payload:       json.RawMessage(evt.Payload),
		OccurredAt:    evt.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("marshal publish envelope: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build publish request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("publish event %s: %w", evt.EventID, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("publish event %s: bridge returned %d", evt.EventID, resp.StatusCode)
	}
	return nil
}
