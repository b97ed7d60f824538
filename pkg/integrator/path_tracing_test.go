package integrator

import (
	"math"
	"testing"

	"github.com/TwistedFury/RayTracer/pkg/core"
	"github.com/TwistedFury/RayTracer/pkg/geometry"
	"github.com/TwistedFury/RayTracer/pkg/material"
	"github.com/TwistedFury/RayTracer/pkg/scene"
)

// createTestScene creates a simple scene with a sphere for testing
func createTestScene() *scene.Scene {
	s := scene.NewScene(geometry.DefaultCameraConfig(), scene.DefaultSamplingConfig())
	lambertian := s.Materials.Add(material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3)))
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, lambertian)
	return s
}

// TestPathTracingDepthTermination tests that ray depth is properly limited
func TestPathTracingDepthTermination(t *testing.T) {
	sc := createTestScene()
	sampler := core.NewSeededSampler(42)

	// Ray pointing at the sphere
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	config := scene.DefaultSamplingConfig()
	config.MaxDepth = 0
	colorDepth0 := NewPathTracingIntegrator(config).RayColor(ray, sc, sampler)
	if colorDepth0 != (core.Vec3{}) {
		t.Errorf("Expected black color for depth 0, got %v", colorDepth0)
	}

	// One bounce is not enough to reach the sky after hitting the sphere
	config.MaxDepth = 1
	colorDepth1 := NewPathTracingIntegrator(config).RayColor(ray, sc, sampler)
	if colorDepth1 != (core.Vec3{}) {
		t.Errorf("Expected black color for depth 1, got %v", colorDepth1)
	}

	config.MaxDepth = 3
	colorDepth3 := NewPathTracingIntegrator(config).RayColor(ray, sc, sampler)
	if colorDepth3 == (core.Vec3{}) {
		t.Error("Expected non-black color for positive depth")
	}
}

// TestPathTracingMatchesSceneTrace checks the integrator applies its configured bounds
func TestPathTracingMatchesSceneTrace(t *testing.T) {
	sc := createTestScene()
	config := scene.DefaultSamplingConfig()
	integrator := NewPathTracingIntegrator(config)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0.1, -0.05, -1))
	for seed := int64(0); seed < 10; seed++ {
		got := integrator.RayColor(ray, sc, core.NewSeededSampler(seed))
		expected := sc.Trace(ray, config.MinDistance, config.MaxDistance, config.MaxDepth, core.NewSeededSampler(seed))
		if got != expected {
			t.Errorf("Seed %d: expected %v, got %v", seed, expected, got)
		}
	}
}

// TestPathTracingDiffuseIsDarkerThanSky checks energy is lost at an absorbing surface
func TestPathTracingDiffuseIsDarkerThanSky(t *testing.T) {
	sc := createTestScene()
	integrator := NewPathTracingIntegrator(scene.DefaultSamplingConfig())
	sampler := core.NewSeededSampler(7)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	var sum core.Vec3
	const n = 200
	for i := 0; i < n; i++ {
		sum = sum.Add(integrator.RayColor(ray, sc, sampler))
	}
	avg := sum.Multiply(1.0 / n)

	if avg.X > 0.7 || avg.Y > 0.3 || avg.Z > 0.3 {
		t.Errorf("Expected color bounded by the albedo under a sky no brighter than white, got %v", avg)
	}
	if avg.X <= avg.Z {
		t.Errorf("Expected a red tint from the albedo, got %v", avg)
	}
}

func TestNormalIntegrator(t *testing.T) {
	sc := createTestScene()
	integrator := NewNormalIntegrator(scene.DefaultSamplingConfig())

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	got := integrator.RayColor(ray, sc, core.NewSeededSampler(1))

	// The sphere faces +Z at the hit point
	expected := core.NewVec3(0.5, 0.5, 1.0)
	if math.Abs(got.X-expected.X) > 1e-9 || math.Abs(got.Y-expected.Y) > 1e-9 || math.Abs(got.Z-expected.Z) > 1e-9 {
		t.Errorf("Expected %v, got %v", expected, got)
	}

	miss := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	if got := integrator.RayColor(miss, sc, core.NewSeededSampler(1)); got != sc.SkyTop {
		t.Errorf("Expected sky %v on miss, got %v", sc.SkyTop, got)
	}
}

func TestNew(t *testing.T) {
	config := scene.DefaultSamplingConfig()

	tests := []struct {
		name    string
		wantErr bool
	}{
		{"", false},
		{"path-tracing", false},
		{"normals", false},
		{"bdpt", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			integrator, err := New(tt.name, config)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected an error")
				}
				return
			}
			if err != nil || integrator == nil {
				t.Errorf("Expected an integrator, got %v, %v", integrator, err)
			}
		})
	}
}
