package material

import (
	"errors"
	"fmt"
)

// ErrUnknownHandle is returned when a handle does not refer to a registered material
var ErrUnknownHandle = errors.New("material: unknown handle")

// Handle is a stable index into a Registry.
// The zero value is not a valid handle.
type Handle int

// Registry owns the materials of a scene. Objects refer to materials by Handle,
// so one material can be shared by many objects.
type Registry struct {
	materials []Material
	names     map[string]Handle
}

// NewRegistry creates an empty material registry
func NewRegistry() *Registry {
	return &Registry{
		names: make(map[string]Handle),
	}
}

// Add registers a material and returns its handle
func (r *Registry) Add(m Material) Handle {
	r.materials = append(r.materials, m)
	return Handle(len(r.materials))
}

// AddNamed registers a material under a name that can be looked up later
func (r *Registry) AddNamed(name string, m Material) Handle {
	h := r.Add(m)
	r.names[name] = h
	return h
}

// Named returns the handle registered under name
func (r *Registry) Named(name string) (Handle, bool) {
	h, ok := r.names[name]
	return h, ok
}

// Lookup resolves a handle, reporting whether it exists
func (r *Registry) Lookup(h Handle) (Material, bool) {
	if h <= 0 || int(h) > len(r.materials) {
		return nil, false
	}
	return r.materials[h-1], true
}

// Get resolves a handle. It panics on handles that were not issued by this registry;
// scenes check their handles with Resolve before rendering.
func (r *Registry) Get(h Handle) Material {
	return r.materials[h-1]
}

// Resolve returns an error if h is not registered
func (r *Registry) Resolve(h Handle) error {
	if _, ok := r.Lookup(h); !ok {
		return fmt.Errorf("%w: %d", ErrUnknownHandle, h)
	}
	return nil
}

// Len returns the number of registered materials
func (r *Registry) Len() int {
	return len(r.materials)
}
