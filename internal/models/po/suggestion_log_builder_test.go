package po

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewSuggestionLog_PopulatesFields(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	suggested := []SuggestedItemLog{
		{
			TargetID:    "u1",
			Reason:      "graph.mutual",
			MutualCount: 3,
		},
		{
			TargetID:    "u2",
			Reason:      "fallback.fresh",
			MutualCount: 0,
		},
	}

	params := SuggestionLogParams{
		ViewerID:       "viewer-1",
		Requested:      5,
		Source:         " graph ",
		GraphLatencyMS: 123,
		SuggestedItems: suggested,
		ErrorKind:      "graph_unavailable",
		GeneratedAt:    now,
	}

	entry := NewSuggestionLog(params)

	require.NotNil(t, entry.ViewerID)
	require.Equal(t, "viewer-1", *entry.ViewerID)
	require.Equal(t, int32(5), entry.Requested)
	require.Equal(t, int32(2), entry.Returned)
	require.Equal(t, "graph", entry.Source)
	require.NotNil(t, entry.GraphLatencyMS)
	require.Equal(t, int32(123), *entry.GraphLatencyMS)
	require.Equal(t, suggested, entry.SuggestedItems)
	require.NotNil(t, entry.ErrorKind)
	require.Equal(t, "graph_unavailable", *entry.ErrorKind)
	require.WithinDuration(t, now, entry.GeneratedAt, time.Millisecond)

	// Mutate the original slice to ensure cloning occurred.
	suggested[0].TargetID = "changed"
	require.Equal(t, "u1", entry.SuggestedItems[0].TargetID)
}

func TestNewSuggestionLog_Defaults(t *testing.T) {
	params := SuggestionLogParams{
		Requested: 10,
		Source:    "",
	}

	entry := NewSuggestionLog(params)

	require.Nil(t, entry.ViewerID)
	require.Equal(t, int32(10), entry.Requested)
	require.Equal(t, int32(0), entry.Returned)
	require.Equal(t, "", entry.Source)
	require.Nil(t, entry.GraphLatencyMS)
	require.Empty(t, entry.SuggestedItems)
	require.Nil(t, entry.ErrorKind)
	require.False(t, entry.GeneratedAt.IsZero())
}
