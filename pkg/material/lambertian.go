package material

import (
	"github.com/TwistedFury/RayTracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Vec3 // Base color/reflectance
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter implements the Material interface for lambertian scattering
func (l *Lambertian) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Cosine-weighted sampling cancels the cos/π of the BRDF, leaving the albedo as the weight
	scatterDirection := core.SampleCosineHemisphere(hit.Normal, sampler.Get2D())

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, scatterDirection),
		Attenuation: l.Albedo,
	}, true
}

// GetEmissive returns black: diffuse surfaces do not emit
func (l *Lambertian) GetEmissive() core.Vec3 {
	return core.Vec3{}
}

// GetColor returns the albedo
func (l *Lambertian) GetColor() core.Vec3 {
	return l.Albedo
}
