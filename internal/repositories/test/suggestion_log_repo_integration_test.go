package repositories_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/bionicotaku/lingo-services-social/internal/models/po"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSuggestionLogRepository_Insert(t *testing.T) {
	resetDatabase(t)
	repo := newSuggestionLogRepo()
	ctx := context.Background()

	viewerID := uuid.NewString()
	latency := int32(42)
	entry := po.SuggestionLog{
		ViewerID:       &viewerID,
		Requested:      20,
		Returned:       2,
		Source:         "graph",
		GraphLatencyMS: &latency,
		SuggestedItems: []po.SuggestedItemLog{
			{TargetID: uuid.NewString(), Reason: "graph.mutual", MutualCount: 3},
			{TargetID: uuid.NewString(), Reason: "graph.mutual", MutualCount: 1},
		},
		GeneratedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Insert(ctx, nil, entry))

	var (
		storedViewer  *string
		requested     int32
		returned      int32
		source        string
		storedLatency *int32
		itemsRaw      []byte
		errorKind     *string
	)
	err := testPool.QueryRow(ctx,
		`SELECT viewer_id, requested, returned, source, graph_latency_ms, suggested_items, error_kind
		 FROM social.suggestion_logs`).
		Scan(&storedViewer, &requested, &returned, &source, &storedLatency, &itemsRaw, &errorKind)
	require.NoError(t, err)
	require.NotNil(t, storedViewer)
	require.Equal(t, viewerID, *storedViewer)
	require.Equal(t, int32(20), requested)
	require.Equal(t, int32(2), returned)
	require.Equal(t, "graph", source)
	require.NotNil(t, storedLatency)
	require.Equal(t, int32(42), *storedLatency)
	require.Nil(t, errorKind)

	var items []po.SuggestedItemLog
	require.NoError(t, json.Unmarshal(itemsRaw, &items))
	require.Len(t, items, 2)
	require.Equal(t, entry.SuggestedItems[0].TargetID, items[0].TargetID)
}

func TestSuggestionLogRepository_InsertFailure(t *testing.T) {
	resetDatabase(t)
	repo := newSuggestionLogRepo()
	ctx := context.Background()

	// 匿名失败记录:无观察者、无条目、带错误类别。
	errorKind := "graph_unavailable"
	entry := po.SuggestionLog{
		Requested: 20,
		Returned:  0,
		Source:    "graph",
		ErrorKind: &errorKind,
	}
	require.NoError(t, repo.Insert(ctx, nil, entry))

	var (
		storedViewer *string
		storedKind   *string
		itemsRaw     []byte
	)
	err := testPool.QueryRow(ctx,
		`SELECT viewer_id, error_kind, suggested_items FROM social.suggestion_logs`).
		Scan(&storedViewer, &storedKind, &itemsRaw)
	require.NoError(t, err)
	require.Nil(t, storedViewer)
	require.NotNil(t, storedKind)
	require.Equal(t, "graph_unavailable", *storedKind)
	require.JSONEq(t, `[]`, string(itemsRaw))
}
