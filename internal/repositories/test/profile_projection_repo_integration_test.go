package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/bionicotaku/lingo-services-social/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestProfileProjectionRepository_UpsertAndGet(t *testing.T) {
	resetDatabase(t)
	repo := newProfileRepo()
	ctx := context.Background()

	userID := uuid.New()
	updatedAt := time.Now().UTC().Truncate(time.Microsecond)
	err := repo.Upsert(ctx, nil, repositories.UpsertProfileProjectionInput{
		UserID:       userID,
		Username:     "ada",
		DisplayName:  stringPtr("Ada Lovelace"),
		Bio:          stringPtr("first programmer"),
		Discoverable: true,
		Version:      3,
		UpdatedAt:    timePtr(updatedAt),
	})
	require.NoError(t, err)

	profile, err := repo.Get(ctx, nil, userID)
	require.NoError(t, err)
	require.Equal(t, userID.String(), profile.UserID)
	require.Equal(t, "ada", profile.Username)
	require.NotNil(t, profile.DisplayName)
	require.Equal(t, "Ada Lovelace", *profile.DisplayName)
	require.True(t, profile.Discoverable)
	require.Equal(t, int64(3), profile.Version)
	require.WithinDuration(t, updatedAt, profile.UpdatedAt, time.Second)
}

func TestProfileProjectionRepository_GetMissing(t *testing.T) {
	resetDatabase(t)
	repo := newProfileRepo()

	_, err := repo.Get(context.Background(), nil, uuid.New())
	require.ErrorIs(t, err, repositories.ErrProfileNotFound)
}

func TestProfileProjectionRepository_VersionGuard(t *testing.T) {
	resetDatabase(t)
	repo := newProfileRepo()
	ctx := context.Background()

	userID := uuid.New()
	err := repo.Upsert(ctx, nil, repositories.UpsertProfileProjectionInput{
		UserID:       userID,
		Username:     "current",
		Discoverable: true,
		Version:      5,
	})
	require.NoError(t, err)

	// 版本落后的写入被忽略。
	err = repo.Upsert(ctx, nil, repositories.UpsertProfileProjectionInput{
		UserID:       userID,
		Username:     "stale",
		Discoverable: false,
		Version:      4,
	})
	require.NoError(t, err)

	profile, err := repo.Get(ctx, nil, userID)
	require.NoError(t, err)
	require.Equal(t, "current", profile.Username)
	require.Equal(t, int64(5), profile.Version)

	err = repo.Upsert(ctx, nil, repositories.UpsertProfileProjectionInput{
		UserID:       userID,
		Username:     "newer",
		Discoverable: true,
		Version:      6,
	})
	require.NoError(t, err)

	profile, err = repo.Get(ctx, nil, userID)
	require.NoError(t, err)
	require.Equal(t, "newer", profile.Username)
}

func TestProfileProjectionRepository_PurgeRemovesEdges(t *testing.T) {
	resetDatabase(t)
	repo := newProfileRepo()
	ctx := context.Background()

	userID := uuid.New()
	other := uuid.New()
	seedProfile(t, userID, "leaving")
	seedProfile(t, other, "staying")
	seedFollow(t, userID, other)
	seedFollow(t, other, userID)
	require.NoError(t, newSuggestionRepo().Dismiss(ctx, nil, other, userID))

	require.NoError(t, repo.Purge(ctx, nil, userID))

	_, err := repo.Get(ctx, nil, userID)
	require.ErrorIs(t, err, repositories.ErrProfileNotFound)

	exists, err := newFollowRepo().Exists(ctx, nil, userID, other)
	require.NoError(t, err)
	require.False(t, exists)
	exists, err = newFollowRepo().Exists(ctx, nil, other, userID)
	require.NoError(t, err)
	require.False(t, exists)

	var count int
	err = testPool.QueryRow(ctx,
		`SELECT count(*) FROM social.suggestion_dismissals WHERE viewer_id = $1 OR target_id = $1`,
		userID).Scan(&count)
	require.NoError(t, err)
	require.Zero(t, count)

	// 旁观者不受影响。
	_, err = repo.Get(ctx, nil, other)
	require.NoError(t, err)
}
