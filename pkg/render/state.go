package render

import (
	"sort"

	"github.com/vango-dev/retain/pkg/vdom"
)

// StateStore maps a component node's ID to its state slots. Slots are
// indexed by the order of UseState calls within one invocation.
type StateStore struct {
	slots map[vdom.ID][]any
}

// NewStateStore creates an empty store.
func NewStateStore() *StateStore {
	return &StateStore{slots: make(map[vdom.ID][]any)}
}

// Init returns the value of slot for id, storing initial first if the slot
// has never been written.
func (s *StateStore) Init(id vdom.ID, slot int, initial any) any {
	vals := s.slots[id]
	if slot < len(vals) {
		return vals[slot]
	}
	s.Set(id, slot, initial)
	return initial
}

// Get returns the value of slot for id.
func (s *StateStore) Get(id vdom.ID, slot int) (any, bool) {
	vals := s.slots[id]
	if slot < 0 || slot >= len(vals) {
		return nil, false
	}
	return vals[slot], true
}

// Set stores v in slot for id. Unwritten slots below it hold nil.
func (s *StateStore) Set(id vdom.ID, slot int, v any) {
	vals := s.slots[id]
	for len(vals) <= slot {
		vals = append(vals, nil)
	}
	vals[slot] = v
	s.slots[id] = vals
}

// Move transfers all slots of from to to, replacing any slots to had.
func (s *StateStore) Move(from, to vdom.ID) {
	if from == to {
		return
	}
	vals, ok := s.slots[from]
	if !ok {
		return
	}
	delete(s.slots, from)
	s.slots[to] = vals
}

// Delete drops all slots of id.
func (s *StateStore) Delete(id vdom.ID) {
	delete(s.slots, id)
}

// Len returns the number of components holding state.
func (s *StateStore) Len() int {
	return len(s.slots)
}

// IDs returns the component IDs holding state, ascending.
func (s *StateStore) IDs() []vdom.ID {
	ids := make([]vdom.ID, 0, len(s.slots))
	for id := range s.slots {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
