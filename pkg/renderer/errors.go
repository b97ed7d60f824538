package renderer

import "errors"

var (
	ErrNilScene    = errors.New("renderer: no scene defined")
	ErrInterrupted = errors.New("renderer: interrupted while rendering")
)
