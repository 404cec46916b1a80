package extension

import (
	"strings"
	"sync"

	"github.com/viant/x"

	"github.com/ursalint/ursa/model/bear"
)

// Registry indexes bear descriptors by lower-cased name.
type Registry struct {
	types       *x.Registry
	descriptors map[string]*bear.Descriptor
	mux         sync.RWMutex
}

// NewRegistry creates an empty registry. Optional goTypes pre-register the
// payload types bears attach to their findings.
func NewRegistry(goTypes ...*x.Type) *Registry {
	registry := &Registry{
		types:       x.NewRegistry(),
		descriptors: make(map[string]*bear.Descriptor),
	}
	for _, t := range goTypes {
		if t != nil {
			registry.types.Register(t)
		}
	}
	return registry
}

// Types exposes the payload type registry.
func (r *Registry) Types() *x.Registry {
	return r.types
}

// Register adds a bear descriptor, replacing any previous descriptor with
// the same name.
func (r *Registry) Register(descriptor *bear.Descriptor) {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.descriptors[lower(descriptor.Name)] = descriptor
}

// RegisterType adds a payload type to the type registry.
func (r *Registry) RegisterType(dataType *x.Type) {
	r.types.Register(dataType)
}

// Lookup returns a descriptor by name, nil when unknown.
func (r *Registry) Lookup(name string) *bear.Descriptor {
	r.mux.RLock()
	defer r.mux.RUnlock()
	return r.descriptors[lower(name)]
}

// Descriptors returns every registered descriptor split into local and
// global lists.
func (r *Registry) Descriptors() (local, global []*bear.Descriptor) {
	r.mux.RLock()
	defer r.mux.RUnlock()
	for _, descriptor := range r.descriptors {
		if descriptor.IsLocal() {
			local = append(local, descriptor)
		} else {
			global = append(global, descriptor)
		}
	}
	return local, global
}

func lower(name string) string {
	return strings.ToLower(name)
}
