package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func seedOutboxEvent(t *testing.T, eventType string, occurredAt time.Time) uuid.UUID {
	t.Helper()
	eventID := uuid.New()
	_, err := testPool.Exec(context.Background(),
		`INSERT INTO social.outbox_events (event_id, aggregate_type, aggregate_id, event_type, payload, occurred_at)
		 VALUES ($1, 'follow', $2, $3, '{}'::jsonb, $4)`,
		eventID, uuid.NewString(), eventType, occurredAt)
	require.NoError(t, err)
	return eventID
}

func TestOutboxRepository_ListAndMarkPublished(t *testing.T) {
	resetDatabase(t)
	repo := newOutboxRepo()
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Minute)
	first := seedOutboxEvent(t, "social.follow.created", base)
	second := seedOutboxEvent(t, "social.follow.removed", base.Add(time.Second))

	// 按发生顺序返回。
	events, err := repo.ListUnpublished(ctx, nil, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, first.String(), events[0].EventID)
	require.Equal(t, second.String(), events[1].EventID)
	require.Nil(t, events[0].PublishedAt)

	require.NoError(t, repo.MarkPublished(ctx, nil, first))

	events, err = repo.ListUnpublished(ctx, nil, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, second.String(), events[0].EventID)

	// 限额与零值返回。
	events, err = repo.ListUnpublished(ctx, nil, 1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	events, err = repo.ListUnpublished(ctx, nil, 0)
	require.NoError(t, err)
	require.Empty(t, events)
}
