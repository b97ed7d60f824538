package output

import (
	"context"
	"image"

	"github.com/nfnt/resize"
)

// DefaultPreviewWidth is the width of preview thumbnails
const DefaultPreviewWidth = 256

// PreviewSink scales images down before handing them to the next sink.
// The aspect ratio is preserved; images narrower than Width pass through unscaled.
type PreviewSink struct {
	Next   Sink
	Width  uint
	Suffix string // Inserted before the extension of the output name
}

// NewPreviewSink creates a thumbnail sink in front of next
func NewPreviewSink(next Sink, width uint) *PreviewSink {
	if width == 0 {
		width = DefaultPreviewWidth
	}
	return &PreviewSink{
		Next:   next,
		Width:  width,
		Suffix: "_preview",
	}
}

// Write implements Sink
func (p *PreviewSink) Write(ctx context.Context, name string, img image.Image) error {
	thumbnail := img
	if uint(img.Bounds().Dx()) > p.Width {
		// A zero height keeps the aspect ratio
		thumbnail = resize.Resize(p.Width, 0, img, resize.Bilinear)
	}
	return p.Next.Write(ctx, withSuffix(name, p.Suffix), thumbnail)
}
