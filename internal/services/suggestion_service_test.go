package services_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/bionicotaku/lingo-services-social/internal/models/po"
	"github.com/bionicotaku/lingo-services-social/internal/models/vo"
	"github.com/bionicotaku/lingo-services-social/internal/repositories"
	"github.com/bionicotaku/lingo-services-social/internal/services"
	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/go-kratos/kratos/v2/log"
)

var stdLogger = log.NewStdLogger(io.Discard)

type stubSuggestionRepo struct {
	candidates []*po.SuggestionCandidate
	fallback   []*po.SuggestionCandidate
	err        error

	candidateCalls int
	fallbackCalls  int
	lastLimit      int
	lastSample     int
	dismissed      []string
}

func (s *stubSuggestionRepo) ListCandidates(_ context.Context, _ txmanager.Session, _ uuid.UUID, limit, sampleLimit int) ([]*po.SuggestionCandidate, error) {
	s.candidateCalls++
	s.lastLimit = limit
	s.lastSample = sampleLimit
	if s.err != nil {
		return nil, s.err
	}
	return s.candidates, nil
}

func (s *stubSuggestionRepo) ListFallback(_ context.Context, _ txmanager.Session, _ uuid.UUID, limit int) ([]*po.SuggestionCandidate, error) {
	s.fallbackCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.fallback, nil
}

func (s *stubSuggestionRepo) Dismiss(_ context.Context, _ txmanager.Session, _, targetID uuid.UUID) error {
	s.dismissed = append(s.dismissed, targetID.String())
	return nil
}

type stubFollowRepo struct {
	created bool
	removed bool
	err     error

	createCalls int
}

func (s *stubFollowRepo) Create(_ context.Context, _ txmanager.Session, _, _ uuid.UUID) (bool, error) {
	s.createCalls++
	return s.created, s.err
}

func (s *stubFollowRepo) Delete(_ context.Context, _ txmanager.Session, _, _ uuid.UUID) (bool, error) {
	return s.removed, s.err
}

func (s *stubFollowRepo) Exists(_ context.Context, _ txmanager.Session, _, _ uuid.UUID) (bool, error) {
	return false, nil
}

type stubProfileRepo struct {
	profiles map[string]*po.ProfileProjection
}

func (s *stubProfileRepo) Get(_ context.Context, _ txmanager.Session, userID uuid.UUID) (*po.ProfileProjection, error) {
	if profile, ok := s.profiles[userID.String()]; ok {
		return profile, nil
	}
	return nil, repositories.ErrProfileNotFound
}

func (s *stubProfileRepo) Upsert(_ context.Context, _ txmanager.Session, _ repositories.UpsertProfileProjectionInput) error {
	return nil
}

func (s *stubProfileRepo) Purge(_ context.Context, _ txmanager.Session, _ uuid.UUID) error {
	return nil
}

type stubLogRepo struct {
	entries []po.SuggestionLog
}

func (s *stubLogRepo) Insert(_ context.Context, _ txmanager.Session, entry po.SuggestionLog) error {
	s.entries = append(s.entries, entry)
	return nil
}

func (s *stubLogRepo) latest(t *testing.T) po.SuggestionLog {
	t.Helper()
	require.NotEmpty(t, s.entries)
	return s.entries[len(s.entries)-1]
}

type suggestionFixture struct {
	service  *services.SuggestionService
	repo     *stubSuggestionRepo
	follows  *stubFollowRepo
	profiles *stubProfileRepo
	logs     *stubLogRepo
	cache    *services.SuggestionCache
}

func newSuggestionFixture(t *testing.T, repo *stubSuggestionRepo, follows *stubFollowRepo, profiles *stubProfileRepo, opts services.SuggestionOptions) *suggestionFixture {
	t.Helper()
	cache, stop := services.NewSuggestionCache(time.Minute)
	t.Cleanup(stop)
	logs := &stubLogRepo{}
	service := services.NewSuggestionService(repo, follows, profiles, logs, cache, opts, stdLogger)
	return &suggestionFixture{
		service:  service,
		repo:     repo,
		follows:  follows,
		profiles: profiles,
		logs:     logs,
		cache:    cache,
	}
}

func candidate(id uuid.UUID, username string, mutual int64, names ...string) *po.SuggestionCandidate {
	return &po.SuggestionCandidate{
		TargetID:    id.String(),
		Username:    username,
		MutualCount: mutual,
		MutualNames: names,
	}
}

func TestSuggestionService_GetSuggestions_GraphSource(t *testing.T) {
	viewer := uuid.New()
	target := uuid.New()
	repo := &stubSuggestionRepo{candidates: []*po.SuggestionCandidate{candidate(target, "alice", 3, "Bob", "Carol")}}
	fx := newSuggestionFixture(t, repo, &stubFollowRepo{}, &stubProfileRepo{}, services.SuggestionOptions{MutualSampleMax: 3})

	resp, err := fx.service.GetSuggestions(context.Background(), services.GetSuggestionsInput{ViewerID: viewer.String(), Limit: 10})
	require.NoError(t, err)
	require.Equal(t, "graph", resp.Source)
	require.Len(t, resp.Items, 1)
	require.Equal(t, target.String(), resp.Items[0].TargetID)
	require.Equal(t, vo.ReasonMutualFollow, resp.Items[0].ReasonCode)
	require.Equal(t, int64(3), resp.Items[0].MutualCount)
	require.Equal(t, []string{"Bob", "Carol"}, resp.Items[0].MutualSample)
	require.False(t, resp.Items[0].Followed)
	require.Equal(t, 10, repo.lastLimit)
	require.Equal(t, 3, repo.lastSample)

	entry := fx.logs.latest(t)
	require.Equal(t, "graph", entry.Source)
	require.Equal(t, int32(1), entry.Returned)
}

func TestSuggestionService_GetSuggestions_CacheWindowIdempotent(t *testing.T) {
	viewer := uuid.New()
	repo := &stubSuggestionRepo{candidates: []*po.SuggestionCandidate{candidate(uuid.New(), "alice", 2)}}
	fx := newSuggestionFixture(t, repo, &stubFollowRepo{}, &stubProfileRepo{}, services.SuggestionOptions{})

	first, err := fx.service.GetSuggestions(context.Background(), services.GetSuggestionsInput{ViewerID: viewer.String()})
	require.NoError(t, err)
	second, err := fx.service.GetSuggestions(context.Background(), services.GetSuggestionsInput{ViewerID: viewer.String()})
	require.NoError(t, err)

	require.Equal(t, 1, repo.candidateCalls, "cache window must not recompute")
	require.Equal(t, "cache", second.Source)
	require.Equal(t, first.Items, second.Items)

	entry := fx.logs.latest(t)
	require.Equal(t, "cache", entry.Source)
}

func TestSuggestionService_GetSuggestions_FallbackOnColdStart(t *testing.T) {
	viewer := uuid.New()
	fresh := uuid.New()
	repo := &stubSuggestionRepo{fallback: []*po.SuggestionCandidate{candidate(fresh, "newcomer", 0)}}
	fx := newSuggestionFixture(t, repo, &stubFollowRepo{}, &stubProfileRepo{}, services.SuggestionOptions{FallbackEnabled: true})

	resp, err := fx.service.GetSuggestions(context.Background(), services.GetSuggestionsInput{ViewerID: viewer.String()})
	require.NoError(t, err)
	require.Equal(t, "fallback", resp.Source)
	require.Len(t, resp.Items, 1)
	require.Equal(t, vo.ReasonFreshProfile, resp.Items[0].ReasonCode)
	require.Equal(t, 1, repo.fallbackCalls)
}

func TestSuggestionService_GetSuggestions_EmptyIsValid(t *testing.T) {
	viewer := uuid.New()
	repo := &stubSuggestionRepo{}
	fx := newSuggestionFixture(t, repo, &stubFollowRepo{}, &stubProfileRepo{}, services.SuggestionOptions{FallbackEnabled: false})

	resp, err := fx.service.GetSuggestions(context.Background(), services.GetSuggestionsInput{ViewerID: viewer.String()})
	require.NoError(t, err)
	require.Empty(t, resp.Items)
	require.Equal(t, 0, repo.fallbackCalls)
}

func TestSuggestionService_GetSuggestions_GraphFailureLogged(t *testing.T) {
	viewer := uuid.New()
	repo := &stubSuggestionRepo{err: errors.New("connection refused")}
	fx := newSuggestionFixture(t, repo, &stubFollowRepo{}, &stubProfileRepo{}, services.SuggestionOptions{})

	_, err := fx.service.GetSuggestions(context.Background(), services.GetSuggestionsInput{ViewerID: viewer.String()})
	require.ErrorIs(t, err, services.ErrSuggestionUnavailable)

	entry := fx.logs.latest(t)
	require.NotNil(t, entry.ErrorKind)
	require.Equal(t, "graph_unavailable", *entry.ErrorKind)
}

func TestSuggestionService_GetSuggestions_LimitClamped(t *testing.T) {
	viewer := uuid.New()
	repo := &stubSuggestionRepo{}
	fx := newSuggestionFixture(t, repo, &stubFollowRepo{}, &stubProfileRepo{}, services.SuggestionOptions{DefaultLimit: 20, MaxLimit: 50})

	_, err := fx.service.GetSuggestions(context.Background(), services.GetSuggestionsInput{ViewerID: viewer.String(), Limit: 500})
	require.NoError(t, err)
	require.Equal(t, 50, repo.lastLimit)

	_, err = fx.service.GetSuggestions(context.Background(), services.GetSuggestionsInput{ViewerID: uuid.NewString()})
	require.NoError(t, err)
	require.Equal(t, 20, repo.lastLimit)
}

func TestSuggestionService_Follow_FlipsCachedFlag(t *testing.T) {
	viewer := uuid.New()
	target := uuid.New()
	repo := &stubSuggestionRepo{candidates: []*po.SuggestionCandidate{candidate(target, "alice", 1)}}
	profiles := &stubProfileRepo{profiles: map[string]*po.ProfileProjection{
		target.String(): {UserID: target.String(), Username: "alice"},
	}}
	fx := newSuggestionFixture(t, repo, &stubFollowRepo{created: true}, profiles, services.SuggestionOptions{})

	_, err := fx.service.GetSuggestions(context.Background(), services.GetSuggestionsInput{ViewerID: viewer.String()})
	require.NoError(t, err)

	result, err := fx.service.Follow(context.Background(), viewer.String(), target.String())
	require.NoError(t, err)
	require.True(t, result.Following)
	require.True(t, result.Changed)

	// 缓存列表保持稳定,只有状态位翻转。
	resp, err := fx.service.GetSuggestions(context.Background(), services.GetSuggestionsInput{ViewerID: viewer.String()})
	require.NoError(t, err)
	require.Equal(t, "cache", resp.Source)
	require.Len(t, resp.Items, 1)
	require.True(t, resp.Items[0].Followed)
}

func TestSuggestionService_Follow_AlreadyFollowedIsNoop(t *testing.T) {
	viewer := uuid.New()
	target := uuid.New()
	profiles := &stubProfileRepo{profiles: map[string]*po.ProfileProjection{
		target.String(): {UserID: target.String(), Username: "alice"},
	}}
	follows := &stubFollowRepo{created: false}
	fx := newSuggestionFixture(t, &stubSuggestionRepo{}, follows, profiles, services.SuggestionOptions{})

	result, err := fx.service.Follow(context.Background(), viewer.String(), target.String())
	require.NoError(t, err)
	require.True(t, result.Following)
	require.False(t, result.Changed)
	require.Equal(t, 1, follows.createCalls)
}

func TestSuggestionService_Follow_SelfAndUnknownTarget(t *testing.T) {
	viewer := uuid.New()
	fx := newSuggestionFixture(t, &stubSuggestionRepo{}, &stubFollowRepo{}, &stubProfileRepo{}, services.SuggestionOptions{})

	_, err := fx.service.Follow(context.Background(), viewer.String(), viewer.String())
	require.ErrorIs(t, err, services.ErrSelfFollow)

	_, err = fx.service.Follow(context.Background(), viewer.String(), uuid.NewString())
	require.ErrorIs(t, err, services.ErrTargetNotFound)
}

func TestSuggestionService_Unfollow_InvalidatesCache(t *testing.T) {
	viewer := uuid.New()
	target := uuid.New()
	repo := &stubSuggestionRepo{candidates: []*po.SuggestionCandidate{candidate(target, "alice", 1)}}
	fx := newSuggestionFixture(t, repo, &stubFollowRepo{removed: true}, &stubProfileRepo{}, services.SuggestionOptions{})

	_, err := fx.service.GetSuggestions(context.Background(), services.GetSuggestionsInput{ViewerID: viewer.String()})
	require.NoError(t, err)
	require.Equal(t, 1, repo.candidateCalls)

	result, err := fx.service.Unfollow(context.Background(), viewer.String(), target.String())
	require.NoError(t, err)
	require.True(t, result.Changed)

	_, err = fx.service.GetSuggestions(context.Background(), services.GetSuggestionsInput{ViewerID: viewer.String()})
	require.NoError(t, err)
	require.Equal(t, 2, repo.candidateCalls, "unfollow must invalidate the session list")
}

func TestSuggestionService_Dismiss_RemovesFromCachedList(t *testing.T) {
	viewer := uuid.New()
	kept := uuid.New()
	dropped := uuid.New()
	repo := &stubSuggestionRepo{candidates: []*po.SuggestionCandidate{
		candidate(kept, "alice", 2),
		candidate(dropped, "bob", 1),
	}}
	fx := newSuggestionFixture(t, repo, &stubFollowRepo{}, &stubProfileRepo{}, services.SuggestionOptions{})

	_, err := fx.service.GetSuggestions(context.Background(), services.GetSuggestionsInput{ViewerID: viewer.String()})
	require.NoError(t, err)

	require.NoError(t, fx.service.Dismiss(context.Background(), viewer.String(), dropped.String()))
	require.Equal(t, []string{dropped.String()}, repo.dismissed)

	resp, err := fx.service.GetSuggestions(context.Background(), services.GetSuggestionsInput{ViewerID: viewer.String()})
	require.NoError(t, err)
	require.Equal(t, "cache", resp.Source)
	require.Len(t, resp.Items, 1)
	require.Equal(t, kept.String(), resp.Items[0].TargetID)
}
