package geometry

import (
	"math"

	"github.com/TwistedFury/RayTracer/pkg/core"
	"github.com/TwistedFury/RayTracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Handle
	Color    core.Vec3 // Surface color reported in hit records
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Handle, color core.Vec3) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
		Color:    color,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * ray.Direction.Dot(oc)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return false
	}

	sqrtD := math.Sqrt(discriminant)
	lower := tMin + SelfHitEpsilon

	// Try the closer root first, then the farther one
	root := (-b - sqrtD) / (2 * a)
	if root <= lower || root >= tMax {
		root = (-b + sqrtD) / (2 * a)
		if root <= lower || root >= tMax {
			return false
		}
	}

	rec.T = root
	rec.Point = ray.At(root)
	outwardNormal := rec.Point.Subtract(s.Center).Multiply(1.0 / s.Radius).Normalize()
	rec.SetFaceNormal(ray, outwardNormal)
	rec.Color = s.Color
	rec.Material = s.Material

	return true
}

// MaterialHandle returns the sphere's material
func (s *Sphere) MaterialHandle() material.Handle {
	return s.Material
}
