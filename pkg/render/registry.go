package render

import (
	"sort"

	"github.com/vango-dev/retain/pkg/vdom"
)

// Registry owns node records by ID. IDs increase monotonically and are never
// reused, so an evicted ID can never alias a newer node.
type Registry struct {
	nodes map[vdom.ID]*vdom.Node
	next  vdom.ID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{nodes: make(map[vdom.ID]*vdom.Node)}
}

// Adopt registers n unless it is already a live entry of this registry.
// Tombstoned or foreign nodes get a fresh ID and cleared bookkeeping, so a
// node object reused after removal starts over as a new node. When n was a
// tombstoned entry of this registry its old entry is dropped and returned.
func (r *Registry) Adopt(n *vdom.Node) (evicted vdom.ID) {
	if n == nil {
		return vdom.NoID
	}
	if n.ID != vdom.NoID && r.nodes[n.ID] == n {
		if !n.Tombstone {
			return vdom.NoID
		}
		evicted = n.ID
		delete(r.nodes, n.ID)
	}
	r.next++
	n.ID = r.next
	n.Children = nil
	n.Parent = vdom.NoID
	n.Sibling = 0
	n.Handle = 0
	n.Listener = 0
	n.Tombstone = false
	r.nodes[n.ID] = n
	return evicted
}

// Reset drops every entry. IDs keep increasing afterwards.
func (r *Registry) Reset() {
	r.nodes = make(map[vdom.ID]*vdom.Node)
}

// Get returns the node for id, or nil.
func (r *Registry) Get(id vdom.ID) *vdom.Node {
	if id == vdom.NoID {
		return nil
	}
	return r.nodes[id]
}

// Len returns the number of entries, tombstoned ones included.
func (r *Registry) Len() int {
	return len(r.nodes)
}

// LiveIDs returns the IDs of entries that are not tombstoned, ascending.
func (r *Registry) LiveIDs() []vdom.ID {
	ids := make([]vdom.ID, 0, len(r.nodes))
	for id, n := range r.nodes {
		if !n.Tombstone {
			ids = append(ids, id)
		}
	}
	sortIDs(ids)
	return ids
}

// Collect removes every tombstoned entry when the registry holds more than
// threshold entries. It reports the removed IDs, ascending, and whether a
// sweep ran at all.
func (r *Registry) Collect(threshold int) ([]vdom.ID, bool) {
	if len(r.nodes) <= threshold {
		return nil, false
	}
	var dead []vdom.ID
	for id, n := range r.nodes {
		if n.Tombstone {
			dead = append(dead, id)
		}
	}
	for _, id := range dead {
		delete(r.nodes, id)
	}
	sortIDs(dead)
	return dead, true
}

func sortIDs(ids []vdom.ID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
