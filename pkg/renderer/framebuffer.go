package renderer

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/TwistedFury/RayTracer/pkg/core"
	"github.com/TwistedFury/RayTracer/pkg/scene"
)

// Framebuffer is the 2D color buffer the render loop writes into.
// Row 0 is the top of the image.
type Framebuffer struct {
	img *image.RGBA
}

// NewFramebuffer allocates a black framebuffer
func NewFramebuffer(width, height int) (*Framebuffer, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: framebuffer %dx%d", scene.ErrInvalidDimensions, width, height)
	}
	return &Framebuffer{img: image.NewRGBA(image.Rect(0, 0, width, height))}, nil
}

// Width returns the number of columns
func (fb *Framebuffer) Width() int {
	return fb.img.Bounds().Dx()
}

// Height returns the number of rows
func (fb *Framebuffer) Height() int {
	return fb.img.Bounds().Dy()
}

// Bounds returns the pixel rectangle of the framebuffer
func (fb *Framebuffer) Bounds() image.Rectangle {
	return fb.img.Bounds()
}

// DrawPoint writes one pixel. Points outside the buffer are ignored.
// Concurrent calls are safe as long as they touch different pixels.
func (fb *Framebuffer) DrawPoint(x, y int, c color.RGBA) {
	fb.img.SetRGBA(x, y, c)
}

// At returns the pixel at (x, y)
func (fb *Framebuffer) At(x, y int) color.RGBA {
	return fb.img.RGBAAt(x, y)
}

// Image returns the underlying image
func (fb *Framebuffer) Image() *image.RGBA {
	return fb.img
}

// ColorConvert converts a linear color to RGBA with gamma 2 correction and clamping.
// NaN components map to 0.
func ColorConvert(colorVec core.Vec3) color.RGBA {
	colorVec = core.NewVec3(zeroNaN(colorVec.X), zeroNaN(colorVec.Y), zeroNaN(colorVec.Z))

	// Clamp first so negative values never reach the square root
	colorVec = colorVec.Clamp(0.0, 1.0).GammaCorrect(2.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}

func zeroNaN(f float64) float64 {
	if math.IsNaN(f) {
		return 0
	}
	return f
}
