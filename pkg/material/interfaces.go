package material

import (
	"github.com/TwistedFury/RayTracer/pkg/core"
)

// Material interface for surfaces that scatter or emit light
type Material interface {
	// Scatter produces an outgoing ray and its attenuation.
	// A false return means the material only emits: the caller should use GetEmissive.
	Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool)

	// GetEmissive returns the light emitted by the surface
	GetEmissive() core.Vec3

	// GetColor returns the base surface color
	GetColor() core.Vec3
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Unit normal, always opposing the incoming ray
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether ray hit the front face
	Color     core.Vec3 // Surface color at the hit
	Material  Handle    // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
