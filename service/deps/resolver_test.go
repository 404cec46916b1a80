package deps

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ursalint/ursa/model/bear"
)

func descriptor(name string, dependsOn ...string) *bear.Descriptor {
	return &bear.Descriptor{Name: name, DependsOn: dependsOn}
}

func indexOf(descriptors []*bear.Descriptor, name string) int {
	for i, d := range descriptors {
		if d.Name == name {
			return i
		}
	}
	return -1
}

func TestResolve_Order(t *testing.T) {
	ordered, err := Resolve([]*bear.Descriptor{
		descriptor("CBear", "BBear"),
		descriptor("ABear"),
		descriptor("BBear", "ABear"),
	})
	assert.NoError(t, err)
	assert.Len(t, ordered, 3)
	assert.Less(t, indexOf(ordered, "ABear"), indexOf(ordered, "BBear"))
	assert.Less(t, indexOf(ordered, "BBear"), indexOf(ordered, "CBear"))
}

func TestResolve_CaseInsensitiveNames(t *testing.T) {
	ordered, err := Resolve([]*bear.Descriptor{
		descriptor("UseBear", "basebear"),
		descriptor("BaseBear"),
	})
	assert.NoError(t, err)
	assert.Less(t, indexOf(ordered, "BaseBear"), indexOf(ordered, "UseBear"))
}

func TestResolve_Cycle(t *testing.T) {
	_, err := Resolve([]*bear.Descriptor{
		descriptor("ABear", "BBear"),
		descriptor("BBear", "ABear"),
	})
	assert.ErrorIs(t, err, ErrCircular)
}

func TestResolve_MissingDependency(t *testing.T) {
	_, err := Resolve([]*bear.Descriptor{
		descriptor("ABear", "GhostBear"),
	})
	assert.ErrorIs(t, err, ErrMissing)
}
