package services_test

import (
	"bytes"
	"context"
	"image/jpeg"
	"testing"

	"github.com/bionicotaku/lingo-services-social/internal/services"
	"github.com/stretchr/testify/require"
)

func TestMockFrameExtractor_Deterministic(t *testing.T) {
	extractor := services.NewMockFrameExtractor(stdLogger)

	first, err := extractor.ExtractFrame(context.Background(), "anything", 5_000_000)
	require.NoError(t, err)
	second, err := extractor.ExtractFrame(context.Background(), "anything", 5_000_000)
	require.NoError(t, err)
	require.Equal(t, first, second)

	other, err := extractor.ExtractFrame(context.Background(), "anything", 60_000_000)
	require.NoError(t, err)
	require.NotEqual(t, first, other)
}

func TestMockFrameExtractor_ProducesDecodableJPEG(t *testing.T) {
	extractor := services.NewMockFrameExtractor(stdLogger)

	data, err := extractor.ExtractFrame(context.Background(), "anything", 0)
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 320, img.Bounds().Dx())
	require.Equal(t, 180, img.Bounds().Dy())
}

func TestMockFrameExtractor_Errors(t *testing.T) {
	extractor := services.NewMockFrameExtractor(stdLogger)

	_, err := extractor.ExtractFrame(context.Background(), "anything", -1)
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = extractor.ExtractFrame(ctx, "anything", 0)
	require.ErrorIs(t, err, context.Canceled)
}
