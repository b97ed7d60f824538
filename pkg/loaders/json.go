package loaders

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/TwistedFury/RayTracer/pkg/core"
	"github.com/TwistedFury/RayTracer/pkg/geometry"
	"github.com/TwistedFury/RayTracer/pkg/material"
	"github.com/TwistedFury/RayTracer/pkg/scene"
)

var (
	ErrUnknownMaterial = errors.New("loaders: unknown material")
	ErrInvalidMaterial = errors.New("loaders: invalid material")
)

// Vec3Cfg is a vector written as a JSON array [x, y, z]
type Vec3Cfg [3]float64

// Vec3 converts the array to a core.Vec3
func (v Vec3Cfg) Vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// CameraCfg mirrors geometry.CameraConfig; omitted fields keep their defaults
type CameraCfg struct {
	Center      *Vec3Cfg `json:"center,omitempty"`
	LookAt      *Vec3Cfg `json:"lookAt,omitempty"`
	Up          *Vec3Cfg `json:"up,omitempty"`
	AspectRatio float64  `json:"aspectRatio,omitempty"`
	VFov        float64  `json:"vfov,omitempty"`
}

// SamplingCfg mirrors scene.SamplingConfig; omitted fields keep their defaults
type SamplingCfg struct {
	Width           int     `json:"width,omitempty"`
	Height          int     `json:"height,omitempty"`
	SamplesPerPixel int     `json:"spp,omitempty"`
	MaxDepth        int     `json:"maxDepth,omitempty"`
	MinDistance     float64 `json:"minDistance,omitempty"`
	MaxDistance     float64 `json:"maxDistance,omitempty"`
	Seed            *int64  `json:"seed,omitempty"`
}

// SkyCfg sets the background gradient
type SkyCfg struct {
	Top    *Vec3Cfg `json:"top,omitempty"`
	Bottom *Vec3Cfg `json:"bottom,omitempty"`
}

// MaterialCfg describes one named material.
// Type is one of lambertian, metal, dielectric or emissive.
type MaterialCfg struct {
	Name            string  `json:"name"`
	Type            string  `json:"type"`
	Albedo          Vec3Cfg `json:"albedo,omitempty"`
	Fuzz            float64 `json:"fuzz,omitempty"`
	RefractiveIndex float64 `json:"refractiveIndex,omitempty"`
	Emission        Vec3Cfg `json:"emission,omitempty"`
}

type SphereCfg struct {
	Center   Vec3Cfg `json:"center"`
	Radius   float64 `json:"radius"`
	Material string  `json:"material"`
}

type PlaneCfg struct {
	Point    Vec3Cfg `json:"point"`
	Normal   Vec3Cfg `json:"normal"`
	Material string  `json:"material"`
}

type DiscCfg struct {
	Center   Vec3Cfg `json:"center"`
	Normal   Vec3Cfg `json:"normal"`
	Radius   float64 `json:"radius"`
	Material string  `json:"material"`
}

// SceneFile is the JSON scene description
type SceneFile struct {
	Camera    CameraCfg     `json:"camera"`
	Sampling  SamplingCfg   `json:"sampling"`
	Sky       SkyCfg        `json:"sky"`
	Materials []MaterialCfg `json:"materials"`
	Spheres   []SphereCfg   `json:"spheres,omitempty"`
	Planes    []PlaneCfg    `json:"planes,omitempty"`
	Discs     []DiscCfg     `json:"discs,omitempty"`
}

// LoadScene reads and builds a JSON scene file
func LoadScene(path string) (*scene.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	s, err := ParseScene(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseScene decodes a JSON scene description and builds a validated scene.
// Unknown fields are rejected so typos do not silently fall back to defaults.
func ParseScene(r io.Reader) (*scene.Scene, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	var file SceneFile
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}
	return file.Build()
}

// Build creates the scene described by the file
func (f *SceneFile) Build() (*scene.Scene, error) {
	s := scene.NewScene(f.cameraConfig(), f.samplingConfig())

	if f.Sky.Top != nil {
		s.SkyTop = f.Sky.Top.Vec3()
	}
	if f.Sky.Bottom != nil {
		s.SkyBottom = f.Sky.Bottom.Vec3()
	}

	for _, m := range f.Materials {
		mat, err := m.Build()
		if err != nil {
			return nil, err
		}
		if _, exists := s.Materials.Named(m.Name); exists {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrInvalidMaterial, m.Name)
		}
		s.Materials.AddNamed(m.Name, mat)
	}

	for i, sphere := range f.Spheres {
		handle, ok := s.Materials.Named(sphere.Material)
		if !ok {
			return nil, fmt.Errorf("sphere %d: %w %q", i, ErrUnknownMaterial, sphere.Material)
		}
		s.AddSphere(sphere.Center.Vec3(), sphere.Radius, handle)
	}

	for i, plane := range f.Planes {
		handle, ok := s.Materials.Named(plane.Material)
		if !ok {
			return nil, fmt.Errorf("plane %d: %w %q", i, ErrUnknownMaterial, plane.Material)
		}
		s.AddPlane(plane.Point.Vec3(), plane.Normal.Vec3(), handle)
	}

	for i, disc := range f.Discs {
		handle, ok := s.Materials.Named(disc.Material)
		if !ok {
			return nil, fmt.Errorf("disc %d: %w %q", i, ErrUnknownMaterial, disc.Material)
		}
		s.AddDisc(disc.Center.Vec3(), disc.Normal.Vec3(), disc.Radius, handle)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Build creates the material described by the config
func (m MaterialCfg) Build() (material.Material, error) {
	if m.Name == "" {
		return nil, fmt.Errorf("%w: material without a name", ErrInvalidMaterial)
	}

	switch m.Type {
	case "lambertian":
		return material.NewLambertian(m.Albedo.Vec3()), nil
	case "metal":
		return material.NewMetal(m.Albedo.Vec3(), m.Fuzz), nil
	case "dielectric":
		if m.RefractiveIndex <= 0 {
			return nil, fmt.Errorf("%w: %q needs a positive refractive index", ErrInvalidMaterial, m.Name)
		}
		return material.NewDielectric(m.RefractiveIndex), nil
	case "emissive":
		return material.NewEmissive(m.Emission.Vec3()), nil
	default:
		return nil, fmt.Errorf("%w: %q has unknown type %q", ErrInvalidMaterial, m.Name, m.Type)
	}
}

func (f *SceneFile) cameraConfig() geometry.CameraConfig {
	config := geometry.DefaultCameraConfig()
	c := f.Camera

	if c.Center != nil {
		config.Center = c.Center.Vec3()
	}
	if c.LookAt != nil {
		config.LookAt = c.LookAt.Vec3()
	}
	if c.Up != nil {
		config.Up = c.Up.Vec3()
	}
	if c.VFov > 0 {
		config.VFov = c.VFov
	}

	switch {
	case c.AspectRatio > 0:
		config.AspectRatio = c.AspectRatio
	case f.Sampling.Width > 0 && f.Sampling.Height > 0:
		config.AspectRatio = float64(f.Sampling.Width) / float64(f.Sampling.Height)
	}

	return config
}

func (f *SceneFile) samplingConfig() scene.SamplingConfig {
	config := scene.DefaultSamplingConfig()
	c := f.Sampling

	if c.Width > 0 {
		config.Width = c.Width
	}
	if c.Height > 0 {
		config.Height = c.Height
	}
	if c.SamplesPerPixel > 0 {
		config.SamplesPerPixel = c.SamplesPerPixel
	}
	if c.MaxDepth > 0 {
		config.MaxDepth = c.MaxDepth
	}
	if c.MinDistance > 0 {
		config.MinDistance = c.MinDistance
	}
	if c.MaxDistance > 0 {
		config.MaxDistance = c.MaxDistance
	}
	if c.Seed != nil {
		config.Seed = *c.Seed
	}

	return config
}
