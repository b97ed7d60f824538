package geometry

import (
	"math"
	"testing"

	"github.com/TwistedFury/RayTracer/pkg/core"
	"github.com/TwistedFury/RayTracer/pkg/material"
)

const testHandle = material.Handle(1)

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testHandle, core.NewVec3(0.5, 0.5, 0.5))
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	sentinel := material.HitRecord{T: 42}
	rec := sentinel
	if sphere.Hit(ray, 0.001, 1000.0, &rec) {
		t.Errorf("Expected miss, but got hit at t=%f", rec.T)
	}
	if rec != sentinel {
		t.Errorf("Hit record should be untouched on a miss, got %+v", rec)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testHandle, core.NewVec3(0.5, 0.5, 0.5))

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			var rec material.HitRecord
			if !sphere.Hit(ray, 0.001, 1000.0, &rec) {
				t.Fatal("Expected hit, but got miss")
			}

			if math.Abs(rec.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, rec.T)
			}
			if rec.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, rec.FrontFace)
			}
			if rec.Normal.Subtract(tt.expectedNormal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, rec.Normal)
			}
			if rec.Normal.Dot(tt.rayDirection) >= 0 {
				t.Errorf("Normal %v should oppose the ray direction %v", rec.Normal, tt.rayDirection)
			}
		})
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testHandle, core.Vec3{})
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))
	var rec material.HitRecord

	if sphere.Hit(ray, 0.001, 0.5, &rec) {
		t.Errorf("Expected miss due to tMax bound, but got hit at t=%f", rec.T)
	}
	if sphere.Hit(ray, 3.5, 1000.0, &rec) {
		t.Errorf("Expected miss due to tMin bound, but got hit at t=%f", rec.T)
	}

	// A root exactly at tMax is outside the open interval
	if sphere.Hit(ray, 0.001, 1.0, &rec) {
		t.Errorf("Expected miss for root equal to tMax, got hit at t=%f", rec.T)
	}
}

func TestSphere_Hit_NearAndFarRoots(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		radius   float64
	}{
		{"unit sphere at distance 5", 5, 1},
		{"small sphere at distance 2", 2, 0.25},
		{"large sphere far away", 100, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := NewSphere(core.NewVec3(0, 0, 0), tt.radius, testHandle, core.Vec3{})
			// Unnormalized direction: the roots are scaled by its length
			ray := core.NewRay(core.NewVec3(tt.distance, 0, 0), core.NewVec3(-2, 0, 0))

			var near material.HitRecord
			if !sphere.Hit(ray, 0, math.MaxFloat64, &near) {
				t.Fatal("Expected near hit")
			}
			expectedNear := (tt.distance - tt.radius) / 2
			if math.Abs(near.T-expectedNear) > 1e-9 {
				t.Errorf("Expected t_near=%f, got %f", expectedNear, near.T)
			}

			var far material.HitRecord
			if !sphere.Hit(ray, near.T, math.MaxFloat64, &far) {
				t.Fatal("Expected far hit once tMin passes the near root")
			}
			expectedFar := (tt.distance + tt.radius) / 2
			if math.Abs(far.T-expectedFar) > 1e-9 {
				t.Errorf("Expected t_far=%f, got %f", expectedFar, far.T)
			}
		})
	}
}

func TestSphere_Hit_SelfHitEpsilon(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testHandle, core.Vec3{})
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))
	var rec material.HitRecord

	// Near root at t=1 lies inside (tMin, tMin+epsilon], so the far root is reported
	if !sphere.Hit(ray, 1.0-SelfHitEpsilon/2, 1000.0, &rec) {
		t.Fatal("Expected the far root to be reported")
	}
	if math.Abs(rec.T-3.0) > 1e-9 {
		t.Errorf("Expected far root t=3, got t=%f", rec.T)
	}
}

func TestSphere_Hit_Idempotent(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0.3, -0.2, -4), 1.3, testHandle, core.NewVec3(0.1, 0.2, 0.3))
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0.1, 0, -1))

	var first, second material.HitRecord
	hitFirst := sphere.Hit(ray, 0.001, 100, &first)
	hitSecond := sphere.Hit(ray, 0.001, 100, &second)

	if hitFirst != hitSecond || first != second {
		t.Errorf("Expected identical results, got (%t, %+v) and (%t, %+v)", hitFirst, first, hitSecond, second)
	}
}

func TestSphere_Hit_CameraFacingScenario(t *testing.T) {
	gray := core.NewVec3(0.5, 0.5, 0.5)
	sphere := NewSphere(core.NewVec3(0, 0, -1), 0.5, testHandle, gray)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	var rec material.HitRecord
	if !sphere.Hit(ray, 1e-3, 100, &rec) {
		t.Fatal("Expected hit")
	}
	if math.Abs(rec.T-0.5) > 1e-9 {
		t.Errorf("Expected distance 0.5, got %f", rec.T)
	}
	if rec.Normal.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-9 {
		t.Errorf("Expected normal (0,0,1), got %v", rec.Normal)
	}
	if rec.Color != gray || rec.Material != testHandle {
		t.Errorf("Expected color %v and material %d, got %v and %d", gray, testHandle, rec.Color, rec.Material)
	}
}
