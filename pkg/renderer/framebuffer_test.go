package renderer

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/TwistedFury/RayTracer/pkg/core"
	"github.com/TwistedFury/RayTracer/pkg/scene"
)

func TestNewFramebuffer(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantErr       bool
	}{
		{"Regular", 4, 3, false},
		{"Single pixel", 1, 1, false},
		{"Zero width", 0, 3, true},
		{"Negative height", 4, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb, err := NewFramebuffer(tt.width, tt.height)
			if tt.wantErr {
				if !errors.Is(err, scene.ErrInvalidDimensions) {
					t.Errorf("Expected ErrInvalidDimensions, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if fb.Width() != tt.width || fb.Height() != tt.height {
				t.Errorf("Expected %dx%d, got %dx%d", tt.width, tt.height, fb.Width(), fb.Height())
			}
		})
	}
}

func TestFramebuffer_DrawPoint(t *testing.T) {
	fb, err := NewFramebuffer(3, 2)
	if err != nil {
		t.Fatal(err)
	}

	red := color.RGBA{R: 255, A: 255}
	fb.DrawPoint(2, 1, red)

	if got := fb.At(2, 1); got != red {
		t.Errorf("Expected %v at (2,1), got %v", red, got)
	}
	if got := fb.At(0, 0); got != (color.RGBA{}) {
		t.Errorf("Expected untouched pixel to stay zero, got %v", got)
	}

	// Out of range writes are dropped
	fb.DrawPoint(5, 5, red)
	fb.DrawPoint(-1, 0, red)
}

func TestColorConvert(t *testing.T) {
	tests := []struct {
		name     string
		input    core.Vec3
		expected color.RGBA
	}{
		{"Black", core.NewVec3(0, 0, 0), color.RGBA{0, 0, 0, 255}},
		{"White", core.NewVec3(1, 1, 1), color.RGBA{255, 255, 255, 255}},
		{"Gamma 2", core.NewVec3(0.25, 0.25, 0.25), color.RGBA{127, 127, 127, 255}},
		{"Overbright clamps", core.NewVec3(4, 1.5, math.Inf(1)), color.RGBA{255, 255, 255, 255}},
		{"Negative clamps", core.NewVec3(-1, 0, 1), color.RGBA{0, 0, 255, 255}},
		{"NaN is black", core.NewVec3(math.NaN(), 1, 0), color.RGBA{0, 255, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ColorConvert(tt.input); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}
