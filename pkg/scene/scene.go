package scene

import (
	"fmt"
	"math"

	"github.com/TwistedFury/RayTracer/pkg/core"
	"github.com/TwistedFury/RayTracer/pkg/geometry"
	"github.com/TwistedFury/RayTracer/pkg/material"
)

// Ray offsetting parameters for scattered rays
const (
	AbsEpsilon = 1e-3 // Absolute bias
	RelEpsilon = 1e-3 // Bias per unit of hit distance beyond 1

	degenerateLengthSquared = 1e-12
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	Shapes         []geometry.Shape   // Objects in the scene, scanned linearly
	Materials      *material.Registry // Materials shared by the shapes
	SkyTop         core.Vec3          // Background color for rays pointing straight up
	SkyBottom      core.Vec3          // Background color for rays pointing straight down
	SamplingConfig SamplingConfig
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int     // Image width
	Height          int     // Image height
	SamplesPerPixel int     // Number of rays per pixel
	MaxDepth        int     // Maximum ray bounce depth
	MinDistance     float64 // Closest accepted hit for primary rays
	MaxDistance     float64 // Stand-in for infinity
	Seed            int64   // Seed for the per-pixel jitter and scatter sampling
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 16,
		MaxDepth:        7,
		MinDistance:     1e-3,
		MaxDistance:     100.0,
		Seed:            42,
	}
}

// Validate checks the caller preconditions of the render loop
func (c SamplingConfig) Validate() error {
	if c.SamplesPerPixel < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidSamples, c.SamplesPerPixel)
	}
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, c.Width, c.Height)
	}
	if c.MinDistance < 0 || c.MinDistance >= c.MaxDistance {
		return fmt.Errorf("%w: got (%g, %g)", ErrInvalidBounds, c.MinDistance, c.MaxDistance)
	}
	return nil
}

// NewScene creates an empty scene with the default sky gradient
func NewScene(cameraConfig geometry.CameraConfig, samplingConfig SamplingConfig) *Scene {
	return &Scene{
		Camera:         geometry.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		Materials:      material.NewRegistry(),
		SkyTop:         core.NewVec3(0.5, 0.7, 1.0), // blue sky
		SkyBottom:      core.NewVec3(1.0, 1.0, 1.0), // white horizon
		SamplingConfig: samplingConfig,
	}
}

// AddSphere adds a sphere using a registered material
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Handle) *geometry.Sphere {
	sphere := geometry.NewSphere(center, radius, mat, s.surfaceColor(mat))
	s.Shapes = append(s.Shapes, sphere)
	return sphere
}

// AddPlane adds an infinite plane using a registered material
func (s *Scene) AddPlane(point, normal core.Vec3, mat material.Handle) *geometry.Plane {
	plane := geometry.NewPlane(point, normal, mat, s.surfaceColor(mat))
	s.Shapes = append(s.Shapes, plane)
	return plane
}

// AddDisc adds a flat disc using a registered material
func (s *Scene) AddDisc(center, normal core.Vec3, radius float64, mat material.Handle) *geometry.Disc {
	disc := geometry.NewDisc(center, normal, radius, mat, s.surfaceColor(mat))
	s.Shapes = append(s.Shapes, disc)
	return disc
}

func (s *Scene) surfaceColor(mat material.Handle) core.Vec3 {
	if m, ok := s.Materials.Lookup(mat); ok {
		return m.GetColor()
	}
	return core.Vec3{}
}

// Validate checks that the scene can be rendered
func (s *Scene) Validate() error {
	if err := s.CameraConfig.Validate(); err != nil {
		return err
	}
	if err := s.SamplingConfig.Validate(); err != nil {
		return err
	}

	for i, shape := range s.Shapes {
		switch obj := shape.(type) {
		case *geometry.Sphere:
			if obj.Radius == 0 {
				return fmt.Errorf("%w: shape %d is a sphere with zero radius", ErrInvalidShape, i)
			}
		case *geometry.Plane:
			if obj.Normal.IsZero() {
				return fmt.Errorf("%w: shape %d is a plane without a normal", ErrInvalidShape, i)
			}
		case *geometry.Disc:
			if obj.Radius <= 0 || obj.Normal.IsZero() {
				return fmt.Errorf("%w: shape %d is a degenerate disc", ErrInvalidShape, i)
			}
		}

		if user, ok := shape.(geometry.MaterialUser); ok {
			if err := s.Materials.Resolve(user.MaterialHandle()); err != nil {
				return fmt.Errorf("shape %d: %w", i, err)
			}
		}
	}

	return nil
}

// Hit finds the closest intersection along the ray with a linear scan.
// tMax shrinks to each accepted hit, so only the nearest surface is reported.
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	hitAnything := false
	closestSoFar := tMax

	for _, shape := range s.Shapes {
		if shape.Hit(ray, tMin, closestSoFar, rec) {
			hitAnything = true
			closestSoFar = rec.T
		}
	}

	return hitAnything
}

// SkyColor returns the background gradient for rays that hit nothing
func (s *Scene) SkyColor(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := (unitDirection.Y + 1.0) * 0.5

	return s.SkyBottom.Lerp(s.SkyTop, t)
}

// Trace estimates the light arriving along ray, following at most depth bounces.
//
// Each bounce multiplies the running throughput by the material attenuation,
// which equals attenuation * Trace(scattered, depth-1) evaluated recursively.
func (s *Scene) Trace(ray core.Ray, tMin, tMax float64, depth int, sampler core.Sampler) core.Vec3 {
	throughput := core.NewVec3(1, 1, 1)

	for ; depth > 0; depth-- {
		var hit material.HitRecord
		if !s.Hit(ray, tMin, tMax, &hit) {
			return throughput.MultiplyVec(s.SkyColor(ray))
		}

		mat := s.Materials.Get(hit.Material)
		scatter, didScatter := mat.Scatter(ray, hit, sampler)
		if !didScatter {
			return throughput.MultiplyVec(mat.GetEmissive())
		}

		ray, tMin = OffsetScatteredRay(hit, scatter.Scattered, tMin)
		throughput = throughput.MultiplyVec(scatter.Attenuation)
	}

	// Bounce budget exhausted: no more light is gathered
	return core.Vec3{}
}

// OffsetScatteredRay moves a scattered ray off the surface it left and returns
// the raised minimum distance for the next intersection sweep.
//
// Degenerate directions (zero length or non-finite) are replaced by the normal.
// The origin is pushed along the oriented normal by eps and along the new
// direction by AbsEpsilon. A ray transmitted into the surface starts just
// outside it; its near re-hit then falls below the returned minimum distance.
func OffsetScatteredRay(hit material.HitRecord, scattered core.Ray, tMin float64) (core.Ray, float64) {
	normal := hit.Normal.Normalize()

	direction := scattered.Direction.Normalize()
	if !direction.IsFinite() || direction.LengthSquared() < degenerateLengthSquared {
		direction = normal
	}

	eps := AbsEpsilon + RelEpsilon*math.Max(1.0, hit.T)

	origin := hit.Point.
		Add(normal.Multiply(eps)).
		Add(direction.Multiply(AbsEpsilon))

	return core.NewRay(origin, direction), math.Max(tMin, eps)
}
