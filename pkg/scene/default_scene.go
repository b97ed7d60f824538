package scene

import (
	"github.com/TwistedFury/RayTracer/pkg/core"
	"github.com/TwistedFury/RayTracer/pkg/geometry"
	"github.com/TwistedFury/RayTracer/pkg/material"
)

// NewDefaultScene creates a default scene with a row of spheres on a large ground sphere
func NewDefaultScene() *Scene {
	cameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 0.5, 1.5),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 16.0 / 9.0,
		VFov:        50.0,
	}

	s := NewScene(cameraConfig, DefaultSamplingConfig())

	ground := s.Materials.AddNamed("ground", material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0)))
	gray := s.Materials.AddNamed("gray", material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	silver := s.Materials.AddNamed("silver", material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0))
	gold := s.Materials.AddNamed("gold", material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3))
	glass := s.Materials.AddNamed("glass", material.NewDielectric(1.5))
	lamp := s.Materials.AddNamed("lamp", material.NewEmissive(core.NewVec3(4.0, 3.8, 3.5)))

	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, ground)
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, gray)
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, silver)
	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, gold)
	s.AddSphere(core.NewVec3(0.45, -0.3, -0.3), 0.2, glass)

	// Small lamp above the row, facing down
	s.AddDisc(core.NewVec3(0, 1.6, -1.2), core.NewVec3(0, -1, 0), 0.4, lamp)

	return s
}

// NewEnclosedScene creates a diffuse shell that fully encloses the camera and a light.
// Every path stays inside the shell, so surface offsetting is exercised on every bounce.
func NewEnclosedScene() *Scene {
	cameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 1.2),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 1.0,
		VFov:        70.0,
	}

	samplingConfig := DefaultSamplingConfig()
	samplingConfig.Width = 200
	samplingConfig.Height = 200
	samplingConfig.MaxDepth = 50

	s := NewScene(cameraConfig, samplingConfig)

	shell := s.Materials.AddNamed("shell", material.NewLambertian(core.NewVec3(0.9, 0.9, 0.9)))
	light := s.Materials.AddNamed("light", material.NewEmissive(core.NewVec3(2.0, 2.0, 2.0)))
	red := s.Materials.AddNamed("red", material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05)))

	s.AddSphere(core.NewVec3(0, 0, 0), 2.0, shell)
	s.AddSphere(core.NewVec3(0, 0.9, -0.4), 0.75, light)
	s.AddSphere(core.NewVec3(-0.6, -0.8, -0.5), 0.4, red)

	return s
}
