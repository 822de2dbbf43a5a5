// Package ffmpeg 通过 ffmpeg 子进程按时间点抽取视频单帧。
package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"github.com/go-kratos/kratos/v2/log"
)

// Options 描述抽帧子进程配置。
type Options struct {
	Binary       string
	FrameTimeout time.Duration
	ScaleWidth   int
}

// Extractor 每个采样点执行一次 ffmpeg 调用,输出 JPEG 到标准输出。
type Extractor struct {
	binary       string
	frameTimeout time.Duration
	scaleWidth   int
	log          *log.Helper
}

// NewExtractor 构造 Extractor。
func NewExtractor(opts Options, logger log.Logger) *Extractor {
	binary := opts.Binary
	if binary == "" {
		binary = "ffmpeg"
	}
	timeout := opts.FrameTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Extractor{
		binary:       binary,
		frameTimeout: timeout,
		scaleWidth:   opts.ScaleWidth,
		log:          log.NewHelper(logger),
	}
}

// ExtractFrame 抽取 source 在 offsetMicros 处的单帧。
func (e *Extractor) ExtractFrame(ctx context.Context, source string, offsetMicros int64) ([]byte, error) {
	if offsetMicros < 0 {
		return nil, fmt.Errorf("negative offset %d", offsetMicros)
	}
	frameCtx, cancel := context.WithTimeout(ctx, e.frameTimeout)
	defer cancel()

	seconds := float64(offsetMicros) / 1e6
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-ss", strconv.FormatFloat(seconds, 'f', 6, 64),
		"-i", source,
		"-frames:v", "1",
	}
	if e.scaleWidth > 0 {
		args = append(args, "-vf", fmt.Sprintf("scale=%d:-1", e.scaleWidth))
	}
	args = append(args, "-f", "image2", "-c:v", "mjpeg", "pipe:1")

	cmd := exec.CommandContext(frameCtx, e.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		e.log.WithContext(ctx).Warnw(
			"msg", "ffmpeg extraction failed",
			"offset_micros", offsetMicros,
			"stderr", stderr.String(),
			"error", err,
		)
		return nil, fmt.Errorf("ffmpeg at %dus: %w", offsetMicros, err)
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg at %dus: empty output", offsetMicros)
	}
	return stdout.Bytes(), nil
}
