package repositories_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/bionicotaku/lingo-services-social/internal/models/po"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestFollowRepository_CreateIsIdempotent(t *testing.T) {
	resetDatabase(t)
	repo := newFollowRepo()
	ctx := context.Background()

	follower := uuid.New()
	followee := uuid.New()

	created, err := repo.Create(ctx, nil, follower, followee)
	require.NoError(t, err)
	require.True(t, created)

	// 重复写入不报错,也不追加事件。
	created, err = repo.Create(ctx, nil, follower, followee)
	require.NoError(t, err)
	require.False(t, created)

	exists, err := repo.Exists(ctx, nil, follower, followee)
	require.NoError(t, err)
	require.True(t, exists)

	events, err := newOutboxRepo().ListUnpublished(ctx, nil, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, po.EventFollowCreated, events[0].EventType)
	require.Equal(t, "follow", events[0].AggregateType)

	var payload po.FollowEventPayload
	require.NoError(t, json.Unmarshal(events[0].Payload, &payload))
	require.Equal(t, follower.String(), payload.FollowerID)
	require.Equal(t, followee.String(), payload.FolloweeID)
}

func TestFollowRepository_DeleteEmitsRemovedEvent(t *testing.T) {
	resetDatabase(t)
	repo := newFollowRepo()
	ctx := context.Background()

	follower := uuid.New()
	followee := uuid.New()
	seedFollow(t, follower, followee)

	removed, err := repo.Delete(ctx, nil, follower, followee)
	require.NoError(t, err)
	require.True(t, removed)

	removed, err = repo.Delete(ctx, nil, follower, followee)
	require.NoError(t, err)
	require.False(t, removed)

	exists, err := repo.Exists(ctx, nil, follower, followee)
	require.NoError(t, err)
	require.False(t, exists)

	events, err := newOutboxRepo().ListUnpublished(ctx, nil, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, po.EventFollowRemoved, events[0].EventType)
}

func TestFollowRepository_SelfFollowRejectedBySchema(t *testing.T) {
	resetDatabase(t)
	repo := newFollowRepo()

	userID := uuid.New()
	_, err := repo.Create(context.Background(), nil, userID, userID)
	require.Error(t, err)
}
