package geometry

import (
	"github.com/TwistedFury/RayTracer/pkg/core"
	"github.com/TwistedFury/RayTracer/pkg/material"
)

// Shape interface for objects that can be hit by rays
type Shape interface {
	// Hit reports whether the ray strikes the shape strictly inside (tMin, tMax).
	// rec is written only when Hit returns true.
	Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool
}

// MaterialUser is implemented by shapes that reference a registered material
type MaterialUser interface {
	MaterialHandle() material.Handle
}

// SelfHitEpsilon is added to tMin by every shape so that a ray leaving a surface
// does not report that same surface again
const SelfHitEpsilon = 1e-4
