package services

import "errors"

// 业务层公共错误,Handler 据此映射传输层状态码。
var (
	// ErrSuggestionUnavailable 表示推荐图谱查询失败。
	ErrSuggestionUnavailable = errors.New("suggestions unavailable")
	// ErrSelfFollow 表示不允许关注自己。
	ErrSelfFollow = errors.New("cannot follow self")
	// ErrTargetNotFound 表示关注目标不存在或不可见。
	ErrTargetNotFound = errors.New("target profile not found")
	// ErrVideoNotFound 表示视频不存在或归属不符。
	ErrVideoNotFound = errors.New("video not found")
	// ErrNotVideoOwner 表示操作者不是视频所有者。
	ErrNotVideoOwner = errors.New("viewer does not own video")
	// ErrVideoNotReady 表示视频缺少时长或媒体地址,无法抽帧。
	ErrVideoNotReady = errors.New("video is not ready for extraction")
	// ErrFramesUnavailable 表示全部采样点抽取失败。
	ErrFramesUnavailable = errors.New("no frames could be extracted")
	// ErrSessionNotFound 表示抽帧会话不存在或已过期。
	ErrSessionNotFound = errors.New("filmstrip session not found")
	// ErrFrameOutOfRange 表示帧序号越界。
	ErrFrameOutOfRange = errors.New("frame index out of range")
	// ErrInvalidOffset 表示封面偏移超出视频时长范围。
	ErrInvalidOffset = errors.New("cover offset out of range")
)
