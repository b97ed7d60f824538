package scene

import "errors"

var (
	ErrUnknownScene      = errors.New("scene: unknown scene")
	ErrInvalidSamples    = errors.New("scene: samples per pixel must be at least 1")
	ErrInvalidDimensions = errors.New("scene: image width and height must be at least 1")
	ErrInvalidBounds     = errors.New("scene: trace bounds must satisfy 0 <= min < max")
	ErrInvalidShape      = errors.New("scene: invalid shape")
)
