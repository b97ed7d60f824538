package geometry

import (
	"math"

	"github.com/TwistedFury/RayTracer/pkg/core"
	"github.com/TwistedFury/RayTracer/pkg/material"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point    core.Vec3       // A point on the plane
	Normal   core.Vec3       // Unit normal
	Material material.Handle // Material of the plane
	Color    core.Vec3       // Surface color reported in hit records
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3, mat material.Handle, color core.Vec3) *Plane {
	return &Plane{
		Point:    point,
		Normal:   normal.Normalize(),
		Material: mat,
		Color:    color,
	}
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	denominator := ray.Direction.Dot(p.Normal)

	// Ray is parallel to the plane
	if math.Abs(denominator) < 1e-8 {
		return false
	}

	// t = (point_on_plane - ray_origin) · normal / (ray_direction · normal)
	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t <= tMin+SelfHitEpsilon || t >= tMax {
		return false
	}

	rec.T = t
	rec.Point = ray.At(t)
	rec.SetFaceNormal(ray, p.Normal)
	rec.Color = p.Color
	rec.Material = p.Material

	return true
}

// MaterialHandle returns the plane's material
func (p *Plane) MaterialHandle() material.Handle {
	return p.Material
}
