package camera

import (
	"sync"

	"github.com/unixpickle/model3d/model3d"
)

// EventType identifies a controller notification.
type EventType int

const (
	// EventStart fires when a gesture begins.
	EventStart EventType = iota
	// EventChange fires when the camera pose or target moved beyond the change threshold.
	EventChange
	// EventEnd fires when the last pointer of a gesture is released.
	EventEnd
)

func (t EventType) String() string {
	switch t {
	case EventStart:
		return "start"
	case EventChange:
		return "change"
	case EventEnd:
		return "end"
	}
	return "unknown"
}

// Event is delivered to listeners with the pose at the time of dispatch.
type Event struct {
	Type     EventType
	Position model3d.Coord3D
	Target   model3d.Coord3D
}

// ListenerID is the handle returned by AddListener.
type ListenerID uint64

type listenerEntry struct {
	id   ListenerID
	kind EventType
	fn   func(Event)
}

// listenerRegistry is an ordered observer list. It has its own lock so listeners may
// call back into the controller.
type listenerRegistry struct {
	mu      sync.Mutex
	nextID  ListenerID
	entries []listenerEntry
}

func (r *listenerRegistry) add(kind EventType, fn func(Event)) ListenerID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.entries = append(r.entries, listenerEntry{id: r.nextID, kind: kind, fn: fn})
	return r.nextID
}

func (r *listenerRegistry) remove(id ListenerID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.entries {
		if e.id == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (r *listenerRegistry) clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}

// dispatch delivers each pending notification in order to every listener of that kind.
func (r *listenerRegistry) dispatch(pending []EventType, position, target model3d.Coord3D) {
	if len(pending) == 0 {
		return
	}
	r.mu.Lock()
	entries := make([]listenerEntry, len(r.entries))
	copy(entries, r.entries)
	r.mu.Unlock()

	for _, kind := range pending {
		ev := Event{Type: kind, Position: position, Target: target}
		for _, e := range entries {
			if e.kind == kind && e.fn != nil {
				e.fn(ev)
			}
		}
	}
}
