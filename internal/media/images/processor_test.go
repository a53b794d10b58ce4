package images

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/KamilaKuyanova/FITBOT-sub000/internal/errors"
)

// testPNG renders a small gradient PNG and returns it base64-encoded.
func testPNG(t *testing.T, width, height int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func setupTestProcessor(t *testing.T) *Processor {
	t.Helper()
	tmpDir := t.TempDir()

	photos, err := NewStorage(tmpDir)
	require.NoError(t, err)
	thumbs, err := NewStorageWithSubdir(tmpDir, "thumbnails")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewProcessor(photos, thumbs, logger)
}

func TestProcessor_Ingest(t *testing.T) {
	p := setupTestProcessor(t)
	ctx := context.Background()

	result, err := p.Ingest(ctx, "item-1", testPNG(t, 800, 600))
	require.NoError(t, err)

	assert.Len(t, result.Hash, 64)
	assert.NotEmpty(t, result.BlurHash)

	// Both artifacts stored as JPEG.
	assert.True(t, p.photos.Exists("item-1"))
	assert.True(t, p.thumbs.Exists("item-1"))

	// Thumbnail longest edge capped.
	thumbData, err := p.thumbs.Get("item-1")
	require.NoError(t, err)
	cfg, _, err := image.DecodeConfig(bytes.NewReader(thumbData))
	require.NoError(t, err)
	assert.Equal(t, thumbnailSize, cfg.Width)
	assert.LessOrEqual(t, cfg.Height, thumbnailSize)
}

func TestProcessor_Ingest_DataURI(t *testing.T) {
	p := setupTestProcessor(t)

	encoded := "data:image/png;base64," + testPNG(t, 32, 32)
	result, err := p.Ingest(context.Background(), "item-1", encoded)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Hash)
}

func TestProcessor_Ingest_SmallImageNotUpscaled(t *testing.T) {
	p := setupTestProcessor(t)

	_, err := p.Ingest(context.Background(), "item-1", testPNG(t, 40, 20))
	require.NoError(t, err)

	thumbData, err := p.thumbs.Get("item-1")
	require.NoError(t, err)
	cfg, _, err := image.DecodeConfig(bytes.NewReader(thumbData))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 20, cfg.Height)
}

func TestProcessor_Ingest_Invalid(t *testing.T) {
	p := setupTestProcessor(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		encoded string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"not base64", "!!!not-base64!!!"},
		{"malformed data URI", "data:image/png;base64"},
		{"base64 but not an image", base64.StdEncoding.EncodeToString([]byte("hello world"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Ingest(ctx, "item-1", tt.encoded)
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
		})
	}
}

func TestProcessor_Delete(t *testing.T) {
	p := setupTestProcessor(t)
	ctx := context.Background()

	_, err := p.Ingest(ctx, "item-1", testPNG(t, 64, 64))
	require.NoError(t, err)

	require.NoError(t, p.Delete("item-1"))
	assert.False(t, p.photos.Exists("item-1"))
	assert.False(t, p.thumbs.Exists("item-1"))

	// Deleting again is fine.
	assert.NoError(t, p.Delete("item-1"))
}
