package images

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"log/slog"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder

	"github.com/KamilaKuyanova/FITBOT-sub000/internal/errors"
)

const (
	// Full-size photos are re-encoded as JPEG; clients never get the
	// raw upload back.
	jpegQuality = 85

	// thumbnailSize is the longest edge of a generated thumbnail.
	thumbnailSize = 256

	// maxDecodedPixels caps decoded image area (width * height) so a
	// decompression bomb can't exhaust memory. 40MP covers any phone photo.
	maxDecodedPixels = 40_000_000
)

// Result describes the stored artifacts for an ingested photo.
type Result struct {
	Hash     string // SHA256 of the stored full-size JPEG
	BlurHash string // Placeholder hash for progressive loading
}

// Processor decodes uploaded item photos, re-encodes them as JPEG,
// and stores a full-size copy plus a thumbnail.
type Processor struct {
	photos *Storage
	thumbs *Storage
	logger *slog.Logger
}

// NewProcessor creates a new Processor instance.
func NewProcessor(photos, thumbs *Storage, logger *slog.Logger) *Processor {
	return &Processor{
		photos: photos,
		thumbs: thumbs,
		logger: logger,
	}
}

// Photo returns the stored full-size JPEG for an item.
func (p *Processor) Photo(itemID string) ([]byte, error) {
	return p.photos.Get(itemID)
}

// Thumbnail returns the stored thumbnail JPEG for an item.
func (p *Processor) Thumbnail(itemID string) ([]byte, error) {
	return p.thumbs.Get(itemID)
}

// HasPhoto reports whether a full-size photo exists for an item.
func (p *Processor) HasPhoto(itemID string) bool {
	return p.photos.Exists(itemID)
}

// Ingest decodes a base64-encoded photo (raw or data-URI), re-encodes it,
// and stores the full image and thumbnail under itemID.
func (p *Processor) Ingest(ctx context.Context, itemID, encoded string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := decodeBase64Image(encoded)
	if err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Validation("image data is not a supported format").WithCause(err)
	}

	bounds := img.Bounds()
	if bounds.Dx()*bounds.Dy() > maxDecodedPixels {
		return nil, errors.Validation("image dimensions too large")
	}

	full, err := encodeJPEG(img)
	if err != nil {
		return nil, fmt.Errorf("encode photo: %w", err)
	}
	if err := p.photos.Save(itemID, full); err != nil {
		return nil, fmt.Errorf("save photo: %w", err)
	}

	thumb, err := encodeJPEG(scaleToFit(img, thumbnailSize))
	if err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	if err := p.thumbs.Save(itemID, thumb); err != nil {
		return nil, fmt.Errorf("save thumbnail: %w", err)
	}

	hash, err := p.photos.Hash(itemID)
	if err != nil {
		return nil, fmt.Errorf("hash photo: %w", err)
	}

	blurHash, err := ComputeBlurHash(img)
	if err != nil {
		// BlurHash is cosmetic; a failure shouldn't lose the upload.
		p.logger.Warn("failed to compute blurhash",
			"item_id", itemID,
			"error", err,
		)
		blurHash = ""
	}

	p.logger.Debug("ingested item photo",
		"item_id", itemID,
		"format", format,
		"size", len(full),
		"thumb_size", len(thumb),
	)

	return &Result{
		Hash:     hash,
		BlurHash: blurHash,
	}, nil
}

// Delete removes the stored photo and thumbnail for an item.
func (p *Processor) Delete(itemID string) error {
	if err := p.photos.Delete(itemID); err != nil {
		return err
	}
	return p.thumbs.Delete(itemID)
}

// decodeBase64Image decodes raw base64 or a data URI
// ("data:image/jpeg;base64,...").
func decodeBase64Image(encoded string) ([]byte, error) {
	s := strings.TrimSpace(encoded)
	if s == "" {
		return nil, errors.Validation("image data is empty")
	}

	if strings.HasPrefix(s, "data:") {
		idx := strings.Index(s, ",")
		if idx < 0 {
			return nil, errors.Validation("malformed data URI")
		}
		s = s[idx+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.Validation("image data is not valid base64").WithCause(err)
	}
	return raw, nil
}

// encodeJPEG renders an image as JPEG at the standard quality.
func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// scaleToFit scales an image down so its longest edge is maxEdge,
// preserving aspect ratio. Images already small enough pass through.
func scaleToFit(img image.Image, maxEdge int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxEdge && h <= maxEdge {
		return img
	}

	var dw, dh int
	if w > h {
		dw = maxEdge
		dh = (h * maxEdge) / w
		if dh < 1 {
			dh = 1
		}
	} else {
		dh = maxEdge
		dw = (w * maxEdge) / h
		if dw < 1 {
			dw = 1
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
