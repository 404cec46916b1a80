// Package deps orders bear descriptors so that every bear runs after the
// bears it depends on. Resolution happens once, before any worker is
// spawned; an unsatisfiable dependency set fails the whole execution.
package deps

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ursalint/ursa/model/bear"
)

// ErrCircular marks an unresolvable dependency cycle.
var ErrCircular = errors.New("circular bear dependency")

// ErrMissing marks a dependency on a bear that is not part of the run.
var ErrMissing = errors.New("missing bear dependency")

// Resolve returns the descriptors in an order where a bear's dependencies
// precede it. Dependency names are matched case-insensitively. The input
// slice is not modified.
func Resolve(descriptors []*bear.Descriptor) ([]*bear.Descriptor, error) {
	byName := make(map[string]*bear.Descriptor, len(descriptors))
	for _, descriptor := range descriptors {
		byName[strings.ToLower(descriptor.Name)] = descriptor
	}

	ordered := make([]*bear.Descriptor, 0, len(descriptors))
	visiting := make(map[string]bool)
	visited := make(map[string]bool)

	var visit func(descriptor *bear.Descriptor) error
	visit = func(descriptor *bear.Descriptor) error {
		key := strings.ToLower(descriptor.Name)
		visiting[key] = true
		for _, depName := range descriptor.DependsOn {
			depKey := strings.ToLower(depName)
			dep, ok := byName[depKey]
			if !ok {
				return fmt.Errorf("%w: %s requires %s", ErrMissing, descriptor.Name, depName)
			}
			if visiting[depKey] {
				return fmt.Errorf("%w: involving %s", ErrCircular, dep.Name)
			}
			if !visited[depKey] {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}
		delete(visiting, key)
		visited[key] = true
		ordered = append(ordered, descriptor)
		return nil
	}

	for _, descriptor := range descriptors {
		if !visited[strings.ToLower(descriptor.Name)] {
			if err := visit(descriptor); err != nil {
				return nil, err
			}
		}
	}
	return ordered, nil
}
