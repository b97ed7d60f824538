package material

import (
	"github.com/TwistedFury/RayTracer/pkg/core"
)

// Emissive represents a light-emitting material
type Emissive struct {
	Emission core.Vec3 // Emitted light color/intensity
}

// NewEmissive creates a new emissive material
func NewEmissive(emission core.Vec3) *Emissive {
	return &Emissive{Emission: emission}
}

// Scatter never scatters: emissive surfaces terminate the path
func (e *Emissive) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{}, false
}

// GetEmissive returns the emitted light for this material
func (e *Emissive) GetEmissive() core.Vec3 {
	return e.Emission
}

// GetColor returns the emission, which is also how the surface looks
func (e *Emissive) GetColor() core.Vec3 {
	return e.Emission
}
