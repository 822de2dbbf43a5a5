package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bionicotaku/lingo-services-social/internal/models/vo"
	"github.com/bionicotaku/lingo-services-social/internal/repositories"
	"github.com/bionicotaku/lingo-services-social/pkg/metrics"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const frameContentType = "image/jpeg"

// CreateFilmstripInput 描述创建抽帧会话所需的参数。
type CreateFilmstripInput struct {
	ViewerID   string
	VideoID    string
	FrameCount int
}

// FilmstripOptions 汇总抽帧用例的可调参数。
type FilmstripOptions struct {
	DefaultFrames  int
	MaxFrames      int
	ExtractWorkers int
}

// FilmstripService 实现封面选帧用例:按均匀采样点并发抽帧,
// 结果存入会话仓库,单点失败跳过,全部失败才报错。
type FilmstripService struct {
	videos    VideoProjectionRepository
	extractor FrameExtractor
	store     *FilmstripStore
	opts      FilmstripOptions
	log       *log.Helper
}

// NewFilmstripService 构造 FilmstripService。
func NewFilmstripService(
	videos VideoProjectionRepository,
	extractor FrameExtractor,
	store *FilmstripStore,
	opts FilmstripOptions,
	logger log.Logger,
) *FilmstripService {
	if opts.DefaultFrames <= 0 {
		opts.DefaultFrames = 8
	}
	if opts.MaxFrames <= 0 {
		opts.MaxFrames = 24
	}
	if opts.ExtractWorkers <= 0 {
		opts.ExtractWorkers = 4
	}
	return &FilmstripService{
		videos:    videos,
		extractor: extractor,
		store:     store,
		opts:      opts,
		log:       log.NewHelper(logger),
	}
}

// Create 为视频所有者建立抽帧会话。
// 采样点为 duration*i/N (i ∈ [0, N)),逐点独立抽取。
func (s *FilmstripService) Create(ctx context.Context, input CreateFilmstripInput) (*vo.Filmstrip, error) {
	viewerID, err := uuid.Parse(input.ViewerID)
	if err != nil {
		return nil, fmt.Errorf("parse viewer id: %w", err)
	}
	videoID, err := uuid.Parse(input.VideoID)
	if err != nil {
		return nil, fmt.Errorf("parse video id: %w", err)
	}

	video, err := s.videos.Get(ctx, nil, videoID)
	if err != nil {
		if errors.Is(err, repositories.ErrVideoNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, fmt.Errorf("get video projection: %w", err)
	}
	if video.OwnerID != viewerID.String() {
		return nil, ErrNotVideoOwner
	}
	if video.MediaURL == nil || *video.MediaURL == "" || video.DurationMicros == nil || *video.DurationMicros <= 0 {
		return nil, ErrVideoNotReady
	}

	count := input.FrameCount
	if count <= 0 {
		count = s.opts.DefaultFrames
	}
	if count > s.opts.MaxFrames {
		count = s.opts.MaxFrames
	}

	duration := *video.DurationMicros
	source := *video.MediaURL
	frames := make([]*StoredFrame, count)
	failures := make([]*vo.MissingFrame, count)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.opts.ExtractWorkers)
	for i := 0; i < count; i++ {
		i := i
		offset := duration * int64(i) / int64(count)
		group.Go(func() error {
			data, extractErr := s.extractor.ExtractFrame(groupCtx, source, offset)
			if extractErr != nil {
				// 单点失败只记录,不中断整批。
				s.log.WithContext(groupCtx).Warnw(
					"msg", "frame extraction failed",
					"video_id", input.VideoID,
					"index", i,
					"offset_micros", offset,
					"error", extractErr,
				)
				metrics.FramesExtracted.WithLabelValues("failed").Inc()
				failures[i] = &vo.MissingFrame{Index: i, OffsetMicros: offset, Reason: extractErr.Error()}
				return nil
			}
			metrics.FramesExtracted.WithLabelValues("ok").Inc()
			frames[i] = &StoredFrame{
				Index:        i,
				OffsetMicros: offset,
				ContentType:  frameContentType,
				Data:         data,
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("extract frames: %w", err)
	}

	stored := make([]StoredFrame, 0, count)
	missing := make([]vo.MissingFrame, 0)
	for i := 0; i < count; i++ {
		if frames[i] != nil {
			stored = append(stored, *frames[i])
			continue
		}
		if failures[i] != nil {
			missing = append(missing, *failures[i])
		}
	}
	if len(stored) == 0 {
		s.log.WithContext(ctx).Errorw("msg", "all frame extractions failed", "video_id", input.VideoID, "requested", count)
		return nil, ErrFramesUnavailable
	}

	session := &FilmstripSession{
		SessionID: uuid.New().String(),
		ViewerID:  input.ViewerID,
		VideoID:   input.VideoID,
		Frames:    stored,
		Missing:   missing,
	}
	s.store.Put(session)
	s.log.WithContext(ctx).Infow(
		"msg", "filmstrip session created",
		"session_id", session.SessionID,
		"video_id", input.VideoID,
		"frames", len(stored),
		"missing", len(missing),
	)
	return sessionToFilmstrip(session), nil
}

// Get 返回会话的帧元数据。过期或未知会话返回 ErrSessionNotFound,
// 客户端据此重新抽帧。
func (s *FilmstripService) Get(ctx context.Context, viewerID, sessionID string) (*vo.Filmstrip, error) {
	session, ok := s.store.Get(viewerID, sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sessionToFilmstrip(session), nil
}

// Frame 返回会话内单帧的图像数据。
func (s *FilmstripService) Frame(ctx context.Context, viewerID, sessionID string, index int) (*vo.FrameBlob, error) {
	session, ok := s.store.Get(viewerID, sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	for _, frame := range session.Frames {
		if frame.Index == index {
			return &vo.FrameBlob{ContentType: frame.ContentType, Data: frame.Data}, nil
		}
	}
	return nil, ErrFrameOutOfRange
}

// Dismiss 立即释放会话与全部帧数据,重复关闭是幂等的。
func (s *FilmstripService) Dismiss(ctx context.Context, viewerID, sessionID string) {
	if session, ok := s.store.Get(viewerID, sessionID); ok {
		s.store.Delete(session.SessionID)
	}
}

// SelectCover 持久化封面偏移。更新按所有者过滤,
// 非所有者得到 ErrVideoNotFound,不泄露视频存在性。
func (s *FilmstripService) SelectCover(ctx context.Context, viewerID, videoID string, offsetMicros int64) (*vo.CoverSelection, error) {
	viewer, err := uuid.Parse(viewerID)
	if err != nil {
		return nil, fmt.Errorf("parse viewer id: %w", err)
	}
	video, err := uuid.Parse(videoID)
	if err != nil {
		return nil, fmt.Errorf("parse video id: %w", err)
	}
	if offsetMicros < 0 {
		return nil, ErrInvalidOffset
	}
	projection, err := s.videos.Get(ctx, nil, video)
	if err != nil {
		if errors.Is(err, repositories.ErrVideoNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, fmt.Errorf("get video projection: %w", err)
	}
	if projection.DurationMicros != nil && offsetMicros >= *projection.DurationMicros {
		return nil, ErrInvalidOffset
	}
	updated, err := s.videos.SetCover(ctx, nil, video, viewer, offsetMicros)
	if err != nil {
		return nil, fmt.Errorf("set video cover: %w", err)
	}
	if !updated {
		return nil, ErrVideoNotFound
	}
	s.log.WithContext(ctx).Infow("msg", "cover selected", "video_id", videoID, "offset_micros", offsetMicros)
	return &vo.CoverSelection{
		VideoID:      videoID,
		OffsetMicros: offsetMicros,
		UpdatedAt:    time.Now().UTC(),
	}, nil
}

func sessionToFilmstrip(session *FilmstripSession) *vo.Filmstrip {
	frames := make([]vo.FilmstripFrame, 0, len(session.Frames))
	for _, frame := range session.Frames {
		frames = append(frames, vo.FilmstripFrame{
			Index:        frame.Index,
			OffsetMicros: frame.OffsetMicros,
			ContentType:  frame.ContentType,
			SizeBytes:    len(frame.Data),
		})
	}
	missing := make([]vo.MissingFrame, len(session.Missing))
	copy(missing, session.Missing)
	return &vo.Filmstrip{
		SessionID: session.SessionID,
		VideoID:   session.VideoID,
		Frames:    frames,
		Missing:   missing,
		Partial:   len(missing) > 0,
		ExpiresAt: session.ExpiresAt,
	}
}
