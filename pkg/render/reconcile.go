package render

import (
	"reflect"
	"sort"
	"strconv"

	"github.com/vango-dev/retain/internal/errors"
	"github.com/vango-dev/retain/pkg/canvas"
	"github.com/vango-dev/retain/pkg/vdom"
)

// debugIDAttr is the attribute WithDebugIDs writes on created elements.
const debugIDAttr = "data-id"

// render reconciles node against the node registered as prevID. parent is
// the presentation parent and ref the handle new output is inserted before
// (NoHandle appends).
func (r *Renderer) render(node *vdom.Node, parent canvas.Handle, prevID vdom.ID, ref canvas.Handle) {
	if r.opts.GCPolicy == GCOnEntry {
		r.collect()
	}

	old := r.nodes.Get(prevID)
	if old != nil && old.Tombstone {
		old = nil
	}
	if node == nil && old == nil {
		return
	}
	if node != nil {
		r.adopt(node)
	}

	op := Classify(node, old)
	r.notify(op, node, old)

	switch op {
	case OpDelete:
		r.bury(old)
		return

	case OpCreate:
		r.create(node, parent, ref)
		if node.Kind == vdom.KindComponent {
			return
		}

	case OpReplace:
		r.replace(node, old, parent)

	case OpUpdate:
		r.update(node, old, parent, ref)
		if node.Kind == vdom.KindComponent {
			return
		}
	}

	if node.Kind == vdom.KindElement {
		r.reconcileChildren(node)
	}
}

// create materializes node and attaches it under parent. A component gets
// no element of its own: it records parent as its anchor and renders its
// child there.
func (r *Renderer) create(node *vdom.Node, parent, ref canvas.Handle) {
	if node.Kind == vdom.KindComponent {
		node.Handle = parent
		r.resolve(node, parent, ref)
		return
	}
	r.attach(parent, r.materialize(node), ref)
}

// materialize creates the element for a text or element node.
func (r *Renderer) materialize(node *vdom.Node) canvas.Handle {
	switch node.Kind {
	case vdom.KindText:
		node.Handle = r.canvas.CreateText(node.Text)
	case vdom.KindElement:
		h := r.canvas.CreateElement(node.Tag)
		keys := make([]string, 0, len(node.Props.Style))
		for k := range node.Props.Style {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			r.canvas.SetStyle(h, k, node.Props.Style[k])
		}
		if node.Props.OnClick != nil {
			node.Listener = r.canvas.AddClickListener(h, node.Props.OnClick)
		}
		if r.opts.DebugIDs {
			r.canvas.SetAttribute(h, debugIDAttr, strconv.FormatUint(uint64(node.ID), 10))
		}
		node.Handle = h
	}
	return node.Handle
}

func (r *Renderer) attach(parent, h, ref canvas.Handle) {
	if ref != canvas.NoHandle {
		r.canvas.InsertBefore(parent, h, ref)
		return
	}
	r.canvas.AppendChild(parent, h)
}

// replace substitutes a fresh element for old's element in place. Only
// text and element nodes are ever replaced; a component on either side
// means the trees are corrupt, and replace panics with E101.
func (r *Renderer) replace(node, old *vdom.Node, parent canvas.Handle) {
	if node.Kind == vdom.KindComponent || old.Kind == vdom.KindComponent {
		panic(errors.New("E101").WithDetailf("node %d (%s) cannot replace node %d (%s) in place",
			node.ID, node.Kind, old.ID, old.Kind))
	}

	h := r.materialize(node)
	r.canvas.ReplaceChild(parent, h, old.Handle)
	old.Tombstone = true

	for _, id := range old.Children {
		r.bury(r.nodes.Get(id))
	}
	old.Children = nil
}

// update reuses old's element for node. When node is a different node than
// old, the element, listener and child sequence move over and old dies.
func (r *Renderer) update(node, old *vdom.Node, parent, ref canvas.Handle) {
	if node != old {
		node.Handle, node.Listener, node.Children = old.Handle, old.Listener, old.Children
		old.Listener, old.Children = 0, nil
		old.Tombstone = true

		if node.Kind == vdom.KindComponent && sameComponent(node.Comp, old.Comp) {
			r.moveState(old.ID, node.ID)
		}
		if node.Kind == vdom.KindElement && r.opts.DebugIDs {
			r.canvas.SetAttribute(node.Handle, debugIDAttr, strconv.FormatUint(uint64(node.ID), 10))
		}
	}

	switch node.Kind {
	case vdom.KindComponent:
		node.Handle = parent
		r.resolve(node, parent, ref)

	case vdom.KindElement:
		if node.Listener != 0 {
			r.canvas.RemoveClickListener(node.Handle, node.Listener)
			node.Listener = 0
		}
		if node.Props.OnClick != nil {
			node.Listener = r.canvas.AddClickListener(node.Handle, node.Props.OnClick)
		}
		if r.opts.UpdateStyles && node != old {
			r.patchStyle(node.Handle, old.Props.Style, node.Props.Style)
		}

	case vdom.KindText:
		// Equal values; the element already shows the text.
	}
}

// patchStyle sets changed keys and clears dropped ones.
func (r *Renderer) patchStyle(h canvas.Handle, prev, next vdom.Style) {
	keys := make([]string, 0, len(prev)+len(next))
	for k := range prev {
		if _, ok := next[k]; !ok {
			keys = append(keys, k)
		}
	}
	for k, v := range next {
		if prev[k] != v {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		r.canvas.SetStyle(h, k, next[k])
	}
}

// resolve runs a component function and renders its single child against
// the child the component produced last time.
func (r *Renderer) resolve(node *vdom.Node, parent, ref canvas.Handle) {
	prev := node.Child(0)

	child := r.invoke(node)
	if child == nil {
		node.Children = nil
		r.render(nil, parent, prev, ref)
		return
	}

	child = r.claim(child, prev)
	child.Parent, child.Sibling = node.ID, 0
	node.Children = []vdom.ID{child.ID}
	r.render(child, parent, prev, ref)
}

// invoke calls the component function with a fresh scope. Nested
// invocations restore the outer scope on return, panics included.
func (r *Renderer) invoke(node *vdom.Node) *vdom.Node {
	s := &scope{r: r, id: node.ID}
	outer := r.active
	r.active = s
	defer func() {
		s.done = true
		r.active = outer
	}()
	return node.Comp(s, node.Props)
}

// reconcileChildren matches an element's declared children to its previous
// children by position. There is no keyed matching: an insertion in the
// middle rebinds every later sibling.
func (r *Renderer) reconcileChildren(node *vdom.Node) {
	next := vdom.Flatten(node.Props.Children)
	prev := node.Children

	var ids []vdom.ID
	if len(next) > 0 {
		ids = make([]vdom.ID, len(next))
	}

	n := max(len(next), len(prev))
	for i := 0; i < n; i++ {
		prevID := vdom.NoID
		if i < len(prev) {
			prevID = prev[i]
		}

		var child *vdom.Node
		if i < len(next) {
			child = r.promote(next[i], prevID)
		}
		if child != nil {
			child = r.claim(child, prevID)
			child.Parent, child.Sibling = node.ID, i
			ids[i] = child.ID
		}

		r.render(child, node.Handle, prevID, r.refAfter(prev, i))
	}

	node.Children = ids
}

// promote turns a declared child into a node. A literal equal to the text
// node previously at the same position reuses that node.
func (r *Renderer) promote(decl any, prevID vdom.ID) *vdom.Node {
	child := vdom.Promote(decl)
	if child == nil || child.Kind != vdom.KindText {
		return child
	}
	if _, isNode := decl.(*vdom.Node); isNode {
		return child
	}
	if old := r.nodes.Get(prevID); old.Live() && old.Kind == vdom.KindText && old.Text == child.Text {
		return old
	}
	return child
}

// claim prepares n to be rendered at the position previously held by
// prevID. A node object still mounted at another position is copied.
func (r *Renderer) claim(n *vdom.Node, prevID vdom.ID) *vdom.Node {
	if n.ID != vdom.NoID && !n.Tombstone && n.ID != prevID {
		n = n.Clone()
	}
	r.adopt(n)
	return n
}

func (r *Renderer) adopt(n *vdom.Node) {
	before := r.nodes.Len()
	if evicted := r.nodes.Adopt(n); evicted != vdom.NoID && r.opts.ReclaimState {
		r.dropState(evicted)
	}
	r.opts.Metrics.addEntries(r.nodes.Len() - before)
}

// bury tombstones n and its whole subtree, detaching every element.
func (r *Renderer) bury(n *vdom.Node) {
	if n == nil {
		return
	}
	if n.Kind != vdom.KindComponent && n.Handle != canvas.NoHandle {
		if n.Listener != 0 {
			r.canvas.RemoveClickListener(n.Handle, n.Listener)
			n.Listener = 0
		}
		r.canvas.Remove(n.Handle)
	}
	n.Tombstone = true
	for _, id := range n.Children {
		r.bury(r.nodes.Get(id))
	}
}

// refAfter returns the first mounted element among ids after position i.
func (r *Renderer) refAfter(ids []vdom.ID, i int) canvas.Handle {
	for j := i + 1; j < len(ids); j++ {
		if h := r.firstHandle(r.nodes.Get(ids[j])); h != canvas.NoHandle {
			return h
		}
	}
	return canvas.NoHandle
}

// firstHandle returns the element n occupies in its presentation parent.
func (r *Renderer) firstHandle(n *vdom.Node) canvas.Handle {
	for n.Live() {
		if n.Kind != vdom.KindComponent {
			return n.Handle
		}
		n = r.nodes.Get(n.Child(0))
	}
	return canvas.NoHandle
}

// presentationParent returns the element n renders into. A component
// parent holds its own anchor as its handle.
func (r *Renderer) presentationParent(n *vdom.Node) canvas.Handle {
	if p := r.nodes.Get(n.Parent); p != nil {
		return p.Handle
	}
	return r.mount
}

// followingHandle returns the element that output created for n must be
// inserted before, climbing through component parents.
func (r *Renderer) followingHandle(n *vdom.Node) canvas.Handle {
	for {
		p := r.nodes.Get(n.Parent)
		if p == nil {
			return canvas.NoHandle
		}
		if p.Kind != vdom.KindComponent {
			return r.refAfter(p.Children, n.Sibling)
		}
		n = p
	}
}

func (r *Renderer) notify(op Op, node, old *vdom.Node) {
	ev := Event{Op: op}
	if node != nil {
		ev.ID, ev.Kind = node.ID, node.Kind
	}
	if old != nil {
		ev.Prev = old.ID
		if node == nil {
			ev.Kind = old.Kind
		}
	}

	switch op {
	case OpCreate:
		r.stats.Creates++
	case OpDelete:
		r.stats.Deletes++
	case OpReplace:
		r.stats.Replaces++
	case OpUpdate:
		r.stats.Updates++
		if ev.Rebind() {
			r.stats.Rebinds++
		}
	}
	r.opts.Metrics.recordOp(op)

	if r.opts.OnReconcile != nil {
		r.opts.OnReconcile(ev)
	}
}

// sameComponent reports whether two component functions are the same
// function value.
func sameComponent(a, b vdom.Component) bool {
	if a == nil || b == nil {
		return false
	}
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}
