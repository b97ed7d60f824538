package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// ErrUnsupportedFormat is returned for output names whose extension has no encoder
var ErrUnsupportedFormat = errors.New("output: unsupported image format")

// Sink stores a rendered image under a name such as "frame.png"
type Sink interface {
	Write(ctx context.Context, name string, img image.Image) error
}

// MultiSink writes the same image to several sinks in order and stops at the first failure
type MultiSink []Sink

// Write implements Sink
func (m MultiSink) Write(ctx context.Context, name string, img image.Image) error {
	for _, sink := range m {
		if err := sink.Write(ctx, name, img); err != nil {
			return err
		}
	}
	return nil
}

// Encode encodes img in the format implied by the extension of name
func Encode(name string, img image.Image) ([]byte, imaging.Format, error) {
	format, err := imaging.FormatFromFilename(name)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format); err != nil {
		return nil, 0, fmt.Errorf("encoding %s: %w", name, err)
	}
	return buf.Bytes(), format, nil
}

// ContentType returns the MIME type of an encoded format
func ContentType(format imaging.Format) string {
	switch format {
	case imaging.JPEG:
		return "image/jpeg"
	case imaging.PNG:
		return "image/png"
	case imaging.GIF:
		return "image/gif"
	case imaging.TIFF:
		return "image/tiff"
	case imaging.BMP:
		return "image/bmp"
	default:
		return "application/octet-stream"
	}
}

// withSuffix inserts suffix before the extension: frame.png -> frame_preview.png
func withSuffix(name, suffix string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + suffix + ext
}
