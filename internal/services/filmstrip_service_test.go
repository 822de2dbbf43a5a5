package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bionicotaku/lingo-services-social/internal/models/po"
	"github.com/bionicotaku/lingo-services-social/internal/repositories"
	"github.com/bionicotaku/lingo-services-social/internal/services"
	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type stubVideoRepo struct {
	projection *po.VideoProjection
	setCoverOK bool

	lastOffset int64
}

func (s *stubVideoRepo) Get(_ context.Context, _ txmanager.Session, _ uuid.UUID) (*po.VideoProjection, error) {
	if s.projection == nil {
		return nil, repositories.ErrVideoNotFound
	}
	return s.projection, nil
}

func (s *stubVideoRepo) Upsert(_ context.Context, _ txmanager.Session, _ repositories.UpsertVideoProjectionInput) error {
	return nil
}

func (s *stubVideoRepo) SetCover(_ context.Context, _ txmanager.Session, _, _ uuid.UUID, offsetMicros int64) (bool, error) {
	s.lastOffset = offsetMicros
	return s.setCoverOK, nil
}

func (s *stubVideoRepo) Delete(_ context.Context, _ txmanager.Session, _ uuid.UUID) error {
	return nil
}

type stubExtractor struct {
	mu      sync.Mutex
	offsets []int64
	fail    func(offsetMicros int64) error
}

func (s *stubExtractor) ExtractFrame(_ context.Context, _ string, offsetMicros int64) ([]byte, error) {
	s.mu.Lock()
	s.offsets = append(s.offsets, offsetMicros)
	s.mu.Unlock()
	if s.fail != nil {
		if err := s.fail(offsetMicros); err != nil {
			return nil, err
		}
	}
	return []byte(fmt.Sprintf("jpeg-%d", offsetMicros)), nil
}

func (s *stubExtractor) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.offsets)
}

type filmstripFixture struct {
	service   *services.FilmstripService
	videos    *stubVideoRepo
	extractor *stubExtractor
	store     *services.FilmstripStore
}

func newFilmstripFixture(t *testing.T, videos *stubVideoRepo, extractor *stubExtractor) *filmstripFixture {
	t.Helper()
	store, stop := services.NewFilmstripStore(time.Minute, 8)
	t.Cleanup(stop)
	service := services.NewFilmstripService(videos, extractor, store, services.FilmstripOptions{
		DefaultFrames:  8,
		MaxFrames:      24,
		ExtractWorkers: 4,
	}, stdLogger)
	return &filmstripFixture{service: service, videos: videos, extractor: extractor, store: store}
}

func readyVideo(owner uuid.UUID, durationMicros int64) *po.VideoProjection {
	media := "https://cdn.example.com/v/source.mp4"
	duration := durationMicros
	return &po.VideoProjection{
		VideoID:        uuid.NewString(),
		OwnerID:        owner.String(),
		Title:          "Upload",
		MediaURL:       &media,
		DurationMicros: &duration,
	}
}

func TestFilmstripService_Create_EvenlySpacedOffsets(t *testing.T) {
	owner := uuid.New()
	video := readyVideo(owner, 8_000_000)
	extractor := &stubExtractor{}
	fx := newFilmstripFixture(t, &stubVideoRepo{projection: video}, extractor)

	strip, err := fx.service.Create(context.Background(), services.CreateFilmstripInput{
		ViewerID:   owner.String(),
		VideoID:    video.VideoID,
		FrameCount: 4,
	})
	require.NoError(t, err)
	require.False(t, strip.Partial)
	require.Len(t, strip.Frames, 4)
	// duration·i/N, i ∈ [0, N)。
	for i, frame := range strip.Frames {
		require.Equal(t, i, frame.Index)
		require.Equal(t, int64(8_000_000)*int64(i)/4, frame.OffsetMicros)
		require.Equal(t, "image/jpeg", frame.ContentType)
		require.Positive(t, frame.SizeBytes)
	}
	require.NotEmpty(t, strip.SessionID)
}

func TestFilmstripService_Create_SkipsFailedFrames(t *testing.T) {
	owner := uuid.New()
	video := readyVideo(owner, 6_000_000)
	failing := int64(6_000_000) * 1 / 3
	extractor := &stubExtractor{fail: func(offset int64) error {
		if offset == failing {
			return errors.New("decode timeout")
		}
		return nil
	}}
	fx := newFilmstripFixture(t, &stubVideoRepo{projection: video}, extractor)

	strip, err := fx.service.Create(context.Background(), services.CreateFilmstripInput{
		ViewerID:   owner.String(),
		VideoID:    video.VideoID,
		FrameCount: 3,
	})
	require.NoError(t, err)
	require.True(t, strip.Partial)
	require.Len(t, strip.Frames, 2)
	require.Len(t, strip.Missing, 1)
	require.Equal(t, 1, strip.Missing[0].Index)
	require.Equal(t, failing, strip.Missing[0].OffsetMicros)
	require.Contains(t, strip.Missing[0].Reason, "decode timeout")
}

func TestFilmstripService_Create_AllFailed(t *testing.T) {
	owner := uuid.New()
	video := readyVideo(owner, 4_000_000)
	extractor := &stubExtractor{fail: func(int64) error { return errors.New("source unreachable") }}
	fx := newFilmstripFixture(t, &stubVideoRepo{projection: video}, extractor)

	_, err := fx.service.Create(context.Background(), services.CreateFilmstripInput{
		ViewerID:   owner.String(),
		VideoID:    video.VideoID,
		FrameCount: 4,
	})
	require.ErrorIs(t, err, services.ErrFramesUnavailable)
	require.Equal(t, 0, fx.store.Len())
}

func TestFilmstripService_Create_Preconditions(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	video := readyVideo(owner, 5_000_000)
	fx := newFilmstripFixture(t, &stubVideoRepo{projection: video}, &stubExtractor{})

	_, err := fx.service.Create(context.Background(), services.CreateFilmstripInput{
		ViewerID: stranger.String(),
		VideoID:  video.VideoID,
	})
	require.ErrorIs(t, err, services.ErrNotVideoOwner)

	noDuration := readyVideo(owner, 5_000_000)
	noDuration.DurationMicros = nil
	fx2 := newFilmstripFixture(t, &stubVideoRepo{projection: noDuration}, &stubExtractor{})
	_, err = fx2.service.Create(context.Background(), services.CreateFilmstripInput{
		ViewerID: owner.String(),
		VideoID:  noDuration.VideoID,
	})
	require.ErrorIs(t, err, services.ErrVideoNotReady)

	fx3 := newFilmstripFixture(t, &stubVideoRepo{}, &stubExtractor{})
	_, err = fx3.service.Create(context.Background(), services.CreateFilmstripInput{
		ViewerID: owner.String(),
		VideoID:  uuid.NewString(),
	})
	require.ErrorIs(t, err, services.ErrVideoNotFound)
}

func TestFilmstripService_Create_FrameCountClamped(t *testing.T) {
	owner := uuid.New()
	video := readyVideo(owner, 60_000_000)
	extractor := &stubExtractor{}
	fx := newFilmstripFixture(t, &stubVideoRepo{projection: video}, extractor)

	strip, err := fx.service.Create(context.Background(), services.CreateFilmstripInput{
		ViewerID:   owner.String(),
		VideoID:    video.VideoID,
		FrameCount: 100,
	})
	require.NoError(t, err)
	require.Len(t, strip.Frames, 24)

	strip, err = fx.service.Create(context.Background(), services.CreateFilmstripInput{
		ViewerID: owner.String(),
		VideoID:  video.VideoID,
	})
	require.NoError(t, err)
	require.Len(t, strip.Frames, 8)
}

func TestFilmstripService_GetAndFrame(t *testing.T) {
	owner := uuid.New()
	video := readyVideo(owner, 4_000_000)
	fx := newFilmstripFixture(t, &stubVideoRepo{projection: video}, &stubExtractor{})

	strip, err := fx.service.Create(context.Background(), services.CreateFilmstripInput{
		ViewerID:   owner.String(),
		VideoID:    video.VideoID,
		FrameCount: 2,
	})
	require.NoError(t, err)

	got, err := fx.service.Get(context.Background(), owner.String(), strip.SessionID)
	require.NoError(t, err)
	require.Equal(t, strip.SessionID, got.SessionID)

	blob, err := fx.service.Frame(context.Background(), owner.String(), strip.SessionID, 1)
	require.NoError(t, err)
	require.Equal(t, "image/jpeg", blob.ContentType)
	require.Equal(t, []byte("jpeg-2000000"), blob.Data)

	_, err = fx.service.Frame(context.Background(), owner.String(), strip.SessionID, 5)
	require.ErrorIs(t, err, services.ErrFrameOutOfRange)

	// 其他观察者拿不到这个会话。
	_, err = fx.service.Get(context.Background(), uuid.NewString(), strip.SessionID)
	require.ErrorIs(t, err, services.ErrSessionNotFound)

	_, err = fx.service.Get(context.Background(), owner.String(), uuid.NewString())
	require.ErrorIs(t, err, services.ErrSessionNotFound)
}

func TestFilmstripService_DismissReleasesFrames(t *testing.T) {
	owner := uuid.New()
	video := readyVideo(owner, 4_000_000)
	extractor := &stubExtractor{}
	fx := newFilmstripFixture(t, &stubVideoRepo{projection: video}, extractor)

	strip, err := fx.service.Create(context.Background(), services.CreateFilmstripInput{
		ViewerID:   owner.String(),
		VideoID:    video.VideoID,
		FrameCount: 2,
	})
	require.NoError(t, err)
	require.Equal(t, 2, extractor.calls())

	fx.service.Dismiss(context.Background(), owner.String(), strip.SessionID)
	_, err = fx.service.Get(context.Background(), owner.String(), strip.SessionID)
	require.ErrorIs(t, err, services.ErrSessionNotFound)
	require.Equal(t, 0, fx.store.Len())

	// 重复关闭是幂等的。
	fx.service.Dismiss(context.Background(), owner.String(), strip.SessionID)

	// 重新打开会从头抽取。
	_, err = fx.service.Create(context.Background(), services.CreateFilmstripInput{
		ViewerID:   owner.String(),
		VideoID:    video.VideoID,
		FrameCount: 2,
	})
	require.NoError(t, err)
	require.Equal(t, 4, extractor.calls())
}

func TestFilmstripService_SelectCover(t *testing.T) {
	owner := uuid.New()
	video := readyVideo(owner, 10_000_000)
	videos := &stubVideoRepo{projection: video, setCoverOK: true}
	fx := newFilmstripFixture(t, videos, &stubExtractor{})

	selection, err := fx.service.SelectCover(context.Background(), owner.String(), video.VideoID, 2_500_000)
	require.NoError(t, err)
	require.Equal(t, video.VideoID, selection.VideoID)
	require.Equal(t, int64(2_500_000), selection.OffsetMicros)
	require.Equal(t, int64(2_500_000), videos.lastOffset)

	_, err = fx.service.SelectCover(context.Background(), owner.String(), video.VideoID, -1)
	require.ErrorIs(t, err, services.ErrInvalidOffset)

	_, err = fx.service.SelectCover(context.Background(), owner.String(), video.VideoID, 10_000_000)
	require.ErrorIs(t, err, services.ErrInvalidOffset)

	// 归属过滤导致零行更新时按不存在处理,不泄露归属信息。
	videos.setCoverOK = false
	_, err = fx.service.SelectCover(context.Background(), uuid.NewString(), video.VideoID, 1_000_000)
	require.ErrorIs(t, err, services.ErrVideoNotFound)
}
