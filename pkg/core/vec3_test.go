package core

import (
	"math"
	"testing"
)

func TestVec3_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		expected Vec3
	}{
		{"Unit X", NewVec3(1, 0, 0), NewVec3(1, 0, 0)},
		{"Scaled Z", NewVec3(0, 0, -5), NewVec3(0, 0, -1)},
		{"Diagonal", NewVec3(3, 4, 0), NewVec3(0.6, 0.8, 0)},
		{"Zero vector stays zero", NewVec3(0, 0, 0), NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.Normalize()

			const tolerance = 1e-9
			if result.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_IsFinite(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		expected bool
	}{
		{"Regular", NewVec3(1, -2, 3), true},
		{"NaN component", NewVec3(math.NaN(), 0, 0), false},
		{"Positive infinity", NewVec3(0, math.Inf(1), 0), false},
		{"Negative infinity", NewVec3(0, 0, math.Inf(-1)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.vector.IsFinite(); got != tt.expected {
				t.Errorf("IsFinite(%v) = %t, expected %t", tt.vector, got, tt.expected)
			}
		})
	}
}

func TestVec3_Lerp(t *testing.T) {
	bottom := NewVec3(1, 1, 1)
	top := NewVec3(0.5, 0.7, 1.0)

	if got := bottom.Lerp(top, 0); got != bottom {
		t.Errorf("Lerp at t=0: expected %v, got %v", bottom, got)
	}
	if got := bottom.Lerp(top, 1); got != top {
		t.Errorf("Lerp at t=1: expected %v, got %v", top, got)
	}

	mid := bottom.Lerp(top, 0.5)
	expected := NewVec3(0.75, 0.85, 1.0)
	if mid.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Lerp at t=0.5: expected %v, got %v", expected, mid)
	}
}

func TestVec3_MultiplyVec(t *testing.T) {
	a := NewVec3(0.5, 2, -1)
	b := NewVec3(4, 0.25, 3)
	expected := NewVec3(2, 0.5, -3)
	if got := a.MultiplyVec(b); got != expected {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(0, 0, -2))
	point := ray.At(1.5)
	expected := NewVec3(1, 2, 0)
	if point != expected {
		t.Errorf("Expected %v, got %v", expected, point)
	}
}
