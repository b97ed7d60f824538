package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/TwistedFury/RayTracer/pkg/core"
)

// ErrDegenerateCamera is returned for camera configurations without a usable view frame
var ErrDegenerateCamera = errors.New("geometry: degenerate camera configuration")

// CameraConfig contains the parameters used to build a camera
type CameraConfig struct {
	Center      core.Vec3 // Camera position
	LookAt      core.Vec3 // Point the camera looks at
	Up          core.Vec3 // Up direction
	AspectRatio float64   // Width / height
	VFov        float64   // Vertical field of view in degrees
}

// DefaultCameraConfig looks down -Z from the origin with a 90 degree field of view
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 16.0 / 9.0,
		VFov:        90.0,
	}
}

// Validate reports configurations that cannot produce a view frame
func (c CameraConfig) Validate() error {
	forward := c.LookAt.Subtract(c.Center)
	if forward.LengthSquared() == 0 {
		return fmt.Errorf("%w: center and look-at coincide", ErrDegenerateCamera)
	}
	if forward.Cross(c.Up).LengthSquared() == 0 {
		return fmt.Errorf("%w: up is parallel to the view direction", ErrDegenerateCamera)
	}
	if c.AspectRatio <= 0 || c.VFov <= 0 || c.VFov >= 180 {
		return fmt.Errorf("%w: aspect ratio %g, vfov %g", ErrDegenerateCamera, c.AspectRatio, c.VFov)
	}
	return nil
}

// Camera generates world-space rays for normalized screen points
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3 // Direction to the bottom-left of the image plane at distance 1
	horizontal      core.Vec3
	vertical        core.Vec3
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) *Camera {
	halfHeight := math.Tan(mgl64.DegToRad(config.VFov) / 2)
	halfWidth := config.AspectRatio * halfHeight

	// The inverse view matrix takes camera-space directions to world space
	view := mgl64.LookAtV(toMgl(config.Center), toMgl(config.LookAt), toMgl(config.Up))
	cameraToWorld := view.Inv()

	return &Camera{
		origin:          config.Center,
		lowerLeftCorner: transformDirection(cameraToWorld, -halfWidth, -halfHeight, -1),
		horizontal:      transformDirection(cameraToWorld, 2*halfWidth, 0, 0),
		vertical:        transformDirection(cameraToWorld, 0, 2*halfHeight, 0),
	}
}

// GetRay generates a ray through point p where (0,0) is the bottom-left
// and (1,1) the top-right of the image
func (c *Camera) GetRay(p core.Vec2) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(p.X)).
		Add(c.vertical.Multiply(p.Y))

	return core.NewRay(c.origin, direction)
}

// Forward returns the unit viewing direction
func (c *Camera) Forward() core.Vec3 {
	return c.lowerLeftCorner.
		Add(c.horizontal.Multiply(0.5)).
		Add(c.vertical.Multiply(0.5)).
		Normalize()
}

func transformDirection(m mgl64.Mat4, x, y, z float64) core.Vec3 {
	v := m.Mul4x1(mgl64.Vec4{x, y, z, 0}).Vec3()
	return core.NewVec3(v.X(), v.Y(), v.Z())
}

func toMgl(v core.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}
