// Package photo turns uploaded image bytes into inline step photos.
package photo

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"

	"github.com/pkordes/travel-journal/backend/internal/domain"
	"github.com/pkordes/travel-journal/backend/internal/format"
)

// Options controls photo normalisation.
type Options struct {
	// MaxDimension bounds the longest edge of JPEG and PNG photos in pixels.
	// Zero keeps photos at their original size.
	MaxDimension uint
}

// Encode builds a Photo from raw upload bytes. The media type is sniffed from
// the content, falling back to the type implied by the file extension when
// the content is not recognised. Anything that is not an image is rejected
// with ErrValidation.
func Encode(name string, data []byte, opts Options) (domain.Photo, error) {
	return encode(name, data, mime.TypeByExtension(filepath.Ext(name)), opts)
}

// Normalize validates a photo that arrived already encoded as a data URL and
// applies the same size bound as Encode. The declared media type is kept for
// image formats the sniffer does not know (HEIC, SVG).
func Normalize(p domain.Photo, opts Options) (domain.Photo, error) {
	declared, data, err := format.DecodeDataURL(p.DataURL)
	if err != nil {
		return domain.Photo{}, fmt.Errorf("photo %q: %v: %w", p.Name, err, domain.ErrValidation)
	}
	return encode(p.Name, data, declared, opts)
}

func encode(name string, data []byte, declared string, opts Options) (domain.Photo, error) {
	if len(data) == 0 {
		return domain.Photo{}, fmt.Errorf("photo %q is empty: %w", name, domain.ErrValidation)
	}
	mediaType := sniff(data)
	if !isImage(mediaType) {
		declared, _, _ = mime.ParseMediaType(declared)
		if !isImage(declared) {
			return domain.Photo{}, fmt.Errorf("photo %q has media type %s: %w", name, mediaType, domain.ErrValidation)
		}
		mediaType = declared
	}

	data, mediaType, err := shrink(data, mediaType, opts.MaxDimension)
	if err != nil {
		return domain.Photo{}, fmt.Errorf("photo %q: %w", name, err)
	}
	if name == "" {
		name = "photo"
	}
	return domain.Photo{Name: name, DataURL: format.EncodeDataURL(mediaType, data)}, nil
}

func isImage(mediaType string) bool {
	return strings.HasPrefix(mediaType, "image/")
}

func sniff(data []byte) string {
	mediaType, _, err := mime.ParseMediaType(http.DetectContentType(data))
	if err != nil {
		return "application/octet-stream"
	}
	return mediaType
}

// shrink downsizes JPEG and PNG images whose longest edge exceeds maxEdge.
// Other formats, images the decoder cannot read and images already within
// bounds are returned unchanged.
func shrink(data []byte, mediaType string, maxEdge uint) ([]byte, string, error) {
	if maxEdge == 0 || (mediaType != "image/jpeg" && mediaType != "image/png") {
		return data, mediaType, nil
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return data, mediaType, nil
	}
	if uint(cfg.Width) <= maxEdge && uint(cfg.Height) <= maxEdge {
		return data, mediaType, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data, mediaType, nil
	}
	thumb := resize.Thumbnail(maxEdge, maxEdge, img, resize.Lanczos3)

	var buf bytes.Buffer
	if mediaType == "image/png" {
		err = png.Encode(&buf, thumb)
	} else {
		err = jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		return nil, "", fmt.Errorf("encode: %w", err)
	}
	return buf.Bytes(), mediaType, nil
}
