package services

import "context"

// FrameExtractor 抽象按时间点抽取单帧的能力。
// 每个采样点独立调用一次,失败只影响该采样点。
type FrameExtractor interface {
	ExtractFrame(ctx context.Context, source string, offsetMicros int64) ([]byte, error)
}
