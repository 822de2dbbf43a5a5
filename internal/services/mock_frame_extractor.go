package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"

	"github.com/go-kratos/kratos/v2/log"
)

// MockFrameExtractor 生成确定性的占位图片,用于本地开发与测试。
// 填充色由采样偏移导出,同一偏移总是得到同一张图。
type MockFrameExtractor struct {
	width  int
	height int
	log    *log.Helper
}

const mockExtractorSource = "mock"

// Source 返回抽帧实现标识。
func (e *MockFrameExtractor) Source() string {
	return mockExtractorSource
}

// NewMockFrameExtractor 构造 MockFrameExtractor。
func NewMockFrameExtractor(logger log.Logger) *MockFrameExtractor {
	return &MockFrameExtractor{
		width:  320,
		height: 180,
		log:    log.NewHelper(logger),
	}
}

// ExtractFrame 返回以偏移编码填充色的 JPEG。
func (e *MockFrameExtractor) ExtractFrame(ctx context.Context, source string, offsetMicros int64) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offsetMicros < 0 {
		return nil, fmt.Errorf("negative offset %d", offsetMicros)
	}
	seconds := offsetMicros / 1_000_000
	fill := color.RGBA{
		R: uint8(seconds * 37 % 256),
		G: uint8(seconds * 97 % 256),
		B: uint8(seconds * 173 % 256),
		A: 255,
	}
	img := image.NewRGBA(image.Rect(0, 0, e.width, e.height))
	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			img.SetRGBA(x, y, fill)
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 70}); err != nil {
		return nil, fmt.Errorf("encode mock frame: %w", err)
	}
	return buf.Bytes(), nil
}

var _ FrameExtractor = (*MockFrameExtractor)(nil)
