package integrator

import (
	"fmt"

	"github.com/TwistedFury/RayTracer/pkg/core"
	"github.com/TwistedFury/RayTracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the color arriving along a camera ray
	RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler) core.Vec3
}

// New creates the integrator registered under name
func New(name string, config scene.SamplingConfig) (Integrator, error) {
	switch name {
	case "", "path-tracing":
		return NewPathTracingIntegrator(config), nil
	case "normals":
		return NewNormalIntegrator(config), nil
	default:
		return nil, fmt.Errorf("unknown integrator %q", name)
	}
}
