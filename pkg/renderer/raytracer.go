package renderer

import (
	"time"

	"github.com/TwistedFury/RayTracer/pkg/core"
	"github.com/TwistedFury/RayTracer/pkg/integrator"
	"github.com/TwistedFury/RayTracer/pkg/scene"
)

// Raytracer renders a scene pixel by pixel on the calling goroutine
type Raytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	sampler    core.Sampler
}

// NewRaytracer creates a path tracing raytracer whose sampler is seeded from the scene config
func NewRaytracer(s *scene.Scene) *Raytracer {
	rt := &Raytracer{scene: s}
	if s != nil {
		rt.integrator = integrator.NewPathTracingIntegrator(s.SamplingConfig)
		rt.sampler = core.NewSeededSampler(s.SamplingConfig.Seed)
	}
	return rt
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(integratorInst integrator.Integrator) {
	rt.integrator = integratorInst
}

// SetSampler replaces the random source used for jitter and scattering
func (rt *Raytracer) SetSampler(sampler core.Sampler) {
	rt.sampler = sampler
}

// Render traces every framebuffer pixel with SamplesPerPixel jittered samples
// and writes the averaged, converted color with DrawPoint.
func (rt *Raytracer) Render(fb *Framebuffer) (RenderStats, error) {
	if rt.scene == nil {
		return RenderStats{}, ErrNilScene
	}
	if err := rt.scene.Validate(); err != nil {
		return RenderStats{}, err
	}

	start := time.Now()
	stats := NewTileRenderer(rt.scene, rt.integrator).RenderTileBounds(fb.Bounds(), fb, rt.sampler)
	stats.Tiles = 1
	stats.Workers = 1
	stats.Duration = time.Since(start)

	return stats, nil
}
