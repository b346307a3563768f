package camera

import (
	"github.com/Carmen-Shannon/oxy-orbit/common"
)

// pointerRegistry tracks active pointers in arrival order with their last known positions.
// Entries are keyed by identity so pointers may lift in any order.
type pointerRegistry struct {
	order     []common.PointerID
	positions map[common.PointerID]common.Vec2
}

func newPointerRegistry() *pointerRegistry {
	return &pointerRegistry{
		positions: make(map[common.PointerID]common.Vec2),
	}
}

// add registers id if it is not already tracked. It reports whether id was new.
func (r *pointerRegistry) add(id common.PointerID, pos common.Vec2) bool {
	if r.has(id) {
		return false
	}
	r.order = append(r.order, id)
	r.positions[id] = pos
	return true
}

// track records the latest position of id, inserting a position entry on first sight.
func (r *pointerRegistry) track(id common.PointerID, pos common.Vec2) {
	r.positions[id] = pos
}

// remove drops id and its position. It reports whether id was tracked.
func (r *pointerRegistry) remove(id common.PointerID) bool {
	delete(r.positions, id)
	for i, p := range r.order {
		if p == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return true
		}
	}
	return false
}

func (r *pointerRegistry) has(id common.PointerID) bool {
	for _, p := range r.order {
		if p == id {
			return true
		}
	}
	return false
}

func (r *pointerRegistry) len() int {
	return len(r.order)
}

func (r *pointerRegistry) first() (common.PointerID, common.Vec2, bool) {
	if len(r.order) == 0 {
		return 0, common.Vec2{}, false
	}
	id := r.order[0]
	return id, r.positions[id], true
}

// other returns the position of the pointer paired with id in a two-pointer gesture.
func (r *pointerRegistry) other(id common.PointerID) (common.Vec2, bool) {
	if len(r.order) < 2 {
		return common.Vec2{}, false
	}
	otherID := r.order[0]
	if id == r.order[0] {
		otherID = r.order[1]
	}
	pos, ok := r.positions[otherID]
	return pos, ok
}

func (r *pointerRegistry) reset() {
	r.order = nil
	r.positions = make(map[common.PointerID]common.Vec2)
}
