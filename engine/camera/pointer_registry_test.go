package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointerRegistryInsertIfAbsent(t *testing.T) {
	r := newPointerRegistry()

	assert.True(t, r.add(1, common.Vec2{X: 1, Y: 1}))
	assert.False(t, r.add(1, common.Vec2{X: 9, Y: 9}))
	assert.Equal(t, 1, r.len())

	_, pos, ok := r.first()
	require.True(t, ok)
	assert.Equal(t, common.Vec2{X: 1, Y: 1}, pos)
}

func TestPointerRegistryRemoveOutOfOrder(t *testing.T) {
	r := newPointerRegistry()
	r.add(1, common.Vec2{X: 1})
	r.add(2, common.Vec2{X: 2})
	r.add(3, common.Vec2{X: 3})

	assert.True(t, r.remove(1))
	assert.False(t, r.remove(1))
	assert.False(t, r.has(1))

	id, pos, ok := r.first()
	require.True(t, ok)
	assert.Equal(t, common.PointerID(2), id)
	assert.Equal(t, common.Vec2{X: 2}, pos)
	assert.Equal(t, 2, r.len())
}

func TestPointerRegistryOther(t *testing.T) {
	r := newPointerRegistry()
	r.add(10, common.Vec2{X: 100, Y: 100})

	_, ok := r.other(10)
	assert.False(t, ok)

	r.add(20, common.Vec2{X: 200, Y: 100})
	pos, ok := r.other(10)
	require.True(t, ok)
	assert.Equal(t, common.Vec2{X: 200, Y: 100}, pos)

	pos, ok = r.other(20)
	require.True(t, ok)
	assert.Equal(t, common.Vec2{X: 100, Y: 100}, pos)
}

func TestPointerRegistryTrack(t *testing.T) {
	r := newPointerRegistry()
	r.add(1, common.Vec2{})
	r.track(1, common.Vec2{X: 5, Y: 6})

	_, pos, _ := r.first()
	assert.Equal(t, common.Vec2{X: 5, Y: 6}, pos)
}

func TestPointerRegistryReset(t *testing.T) {
	r := newPointerRegistry()
	r.add(1, common.Vec2{})
	r.add(2, common.Vec2{})
	r.reset()

	assert.Zero(t, r.len())
	_, _, ok := r.first()
	assert.False(t, ok)
}
