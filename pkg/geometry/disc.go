package geometry

import (
	"math"

	"github.com/TwistedFury/RayTracer/pkg/core"
	"github.com/TwistedFury/RayTracer/pkg/material"
)

// Disc represents a circular disc in 3D space
type Disc struct {
	Center   core.Vec3       // Center of the disc
	Normal   core.Vec3       // Unit normal
	Radius   float64         // Radius of the disc
	Material material.Handle // Material of the disc
	Color    core.Vec3       // Surface color reported in hit records
}

// NewDisc creates a new disc
func NewDisc(center, normal core.Vec3, radius float64, mat material.Handle, color core.Vec3) *Disc {
	return &Disc{
		Center:   center,
		Normal:   normal.Normalize(),
		Radius:   radius,
		Material: mat,
		Color:    color,
	}
}

// Hit tests the ray against the disc's plane, then against its radius
func (d *Disc) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	denom := d.Normal.Dot(ray.Direction)
	if math.Abs(denom) < 1e-8 {
		return false // Ray is parallel to disc
	}

	t := d.Normal.Dot(d.Center.Subtract(ray.Origin)) / denom
	if t <= tMin+SelfHitEpsilon || t >= tMax {
		return false
	}

	hitPoint := ray.At(t)
	if hitPoint.Subtract(d.Center).LengthSquared() > d.Radius*d.Radius {
		return false // Outside disc
	}

	rec.T = t
	rec.Point = hitPoint
	rec.SetFaceNormal(ray, d.Normal)
	rec.Color = d.Color
	rec.Material = d.Material

	return true
}

// MaterialHandle returns the disc's material
func (d *Disc) MaterialHandle() material.Handle {
	return d.Material
}
