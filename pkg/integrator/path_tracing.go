package integrator

import (
	"github.com/TwistedFury/RayTracer/pkg/core"
	"github.com/TwistedFury/RayTracer/pkg/material"
	"github.com/TwistedFury/RayTracer/pkg/scene"
)

// PathTracingIntegrator implements unidirectional path tracing
type PathTracingIntegrator struct {
	config scene.SamplingConfig
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config scene.SamplingConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// RayColor traces a camera ray with the configured distance bounds and bounce limit
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, s *scene.Scene, sampler core.Sampler) core.Vec3 {
	return s.Trace(ray, pt.config.MinDistance, pt.config.MaxDistance, pt.config.MaxDepth, sampler)
}

// NormalIntegrator shades the first hit by its surface normal.
// Useful for checking geometry and camera setup without noise.
type NormalIntegrator struct {
	config scene.SamplingConfig
}

// NewNormalIntegrator creates a normal-shading integrator
func NewNormalIntegrator(config scene.SamplingConfig) *NormalIntegrator {
	return &NormalIntegrator{config: config}
}

// RayColor maps the front-facing normal from [-1,1] to [0,1]; misses return the sky
func (ni *NormalIntegrator) RayColor(ray core.Ray, s *scene.Scene, sampler core.Sampler) core.Vec3 {
	var hit material.HitRecord
	if !s.Hit(ray, ni.config.MinDistance, ni.config.MaxDistance, &hit) {
		return s.SkyColor(ray)
	}
	return hit.Normal.Add(core.NewVec3(1, 1, 1)).Multiply(0.5)
}
