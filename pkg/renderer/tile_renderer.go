package renderer

import (
	"image"

	"github.com/TwistedFury/RayTracer/pkg/core"
	"github.com/TwistedFury/RayTracer/pkg/integrator"
	"github.com/TwistedFury/RayTracer/pkg/scene"
)

// TileRenderer handles the actual rendering of pixel regions using an integrator
type TileRenderer struct {
	scene           *scene.Scene
	integrator      integrator.Integrator
	samplesPerPixel int
}

// NewTileRenderer creates a new tile renderer with the given scene and integrator
func NewTileRenderer(s *scene.Scene, integratorInst integrator.Integrator) *TileRenderer {
	return &TileRenderer{
		scene:           s,
		integrator:      integratorInst,
		samplesPerPixel: s.SamplingConfig.SamplesPerPixel,
	}
}

// RenderTileBounds renders the pixels within bounds into fb.
// The sampler is consumed in row-major pixel order, so equal seeds give equal tiles.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, fb *Framebuffer, sampler core.Sampler) RenderStats {
	stats := RenderStats{SamplesPerPixel: tr.samplesPerPixel}
	width, height := fb.Width(), fb.Height()

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			var ps PixelStats
			tr.samplePixel(x, y, width, height, tr.samplesPerPixel, sampler, &ps)

			fb.DrawPoint(x, y, ColorConvert(ps.GetColor()))
			stats.AddPixel(&ps)
		}
	}

	return stats
}

// SamplePixel returns the averaged color estimate of pixel (x, y) in a width x height image
func (tr *TileRenderer) SamplePixel(x, y, width, height int, sampler core.Sampler) core.Vec3 {
	var ps PixelStats
	tr.samplePixel(x, y, width, height, tr.samplesPerPixel, sampler, &ps)
	return ps.GetColor()
}

// RenderTileSamples tops every pixel of tile up to total samples, adding to the
// estimates already held in state, and redraws the tile into fb.
// Each pixel draws from its own stream, so the result after total samples does
// not depend on how earlier calls split them.
func (tr *TileRenderer) RenderTileSamples(tile *Tile, state *TileState, total int, fb *Framebuffer) RenderStats {
	stats := RenderStats{SamplesPerPixel: total}
	width, height := fb.Width(), fb.Height()

	i := 0
	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
			ps := &state.Pixels[i]
			if missing := total - ps.SampleCount; missing > 0 {
				tr.samplePixel(x, y, width, height, missing, state.Sampler(i), ps)
			}

			fb.DrawPoint(x, y, ColorConvert(ps.GetColor()))
			stats.AddPixel(ps)
			i++
		}
	}

	return stats
}

func (tr *TileRenderer) samplePixel(x, y, width, height, samples int, sampler core.Sampler, ps *PixelStats) {
	camera := tr.scene.Camera

	for i := 0; i < samples; i++ {
		// Jitter inside the pixel, normalize, then flip so row 0 is the top
		jitter := sampler.Get2D()
		point := core.NewVec2(
			(float64(x)+jitter.X)/float64(width),
			(float64(y)+jitter.Y)/float64(height),
		)
		point.Y = 1 - point.Y

		ray := camera.GetRay(point)
		ps.AddSample(tr.integrator.RayColor(ray, tr.scene, sampler))
	}
}
