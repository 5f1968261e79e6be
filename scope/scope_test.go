package scope

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReleaseIsIdempotent(t *testing.T) {
	calls := 0
	g := New(func() { calls++ })

	assert.False(t, g.Released())
	g.Release()
	g.Release()
	assert.NoError(t, g.Close())

	assert.Equal(t, 1, calls)
	assert.True(t, g.Released())
}

func TestNilGuard(t *testing.T) {
	var g *Guard
	g.Release()
	assert.NoError(t, g.Close())
	assert.False(t, g.Released())

	empty := New(nil)
	empty.Release()
	assert.True(t, empty.Released())
}

func TestGuardIsCloser(t *testing.T) {
	var _ io.Closer = New(func() {})
}

func TestGroupReleasesInReverseOrder(t *testing.T) {
	var order []int
	var gr Group
	for i := 1; i <= 3; i++ {
		gr.Add(New(func() { order = append(order, i) }))
	}

	gr.Release()
	gr.Release()

	assert.Equal(t, []int{3, 2, 1}, order)
}
