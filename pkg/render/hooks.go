package render

import (
	"github.com/vango-dev/retain/internal/errors"
	"github.com/vango-dev/retain/pkg/vdom"
)

// scope is the vdom.Scope of one component invocation. It is valid only
// while the component function runs.
type scope struct {
	r    *Renderer
	id   vdom.ID
	slot int
	done bool
}

// ID implements vdom.Scope.
func (s *scope) ID() vdom.ID {
	return s.id
}

// Slot implements vdom.Scope. Each call takes the next slot of the
// component, so slots are identified by call order within one invocation.
func (s *scope) Slot(initial any) (any, func(any)) {
	if s.done || s.r.active != s {
		panic(errors.New("E102").WithDetailf("component %d used its scope after returning", s.id))
	}

	o, slot := s.r.ownerOf(s.id), s.slot
	s.slot++

	v := s.r.states.Init(s.id, slot, initial)
	return v, func(next any) {
		s.r.setState(o, slot, next)
	}
}

// owner is the identity setters hold for a component's state. When an
// update moves the state to a new node ID the owner moves with it, so a
// setter captured before a parent re-render still reaches the component.
type owner struct {
	id vdom.ID
}

func (r *Renderer) ownerOf(id vdom.ID) *owner {
	o := r.owners[id]
	if o == nil {
		o = &owner{id: id}
		r.owners[id] = o
	}
	return o
}

// moveState hands the state of from over to to.
func (r *Renderer) moveState(from, to vdom.ID) {
	r.states.Move(from, to)
	if o := r.owners[from]; o != nil {
		delete(r.owners, from)
		o.id = to
		r.owners[to] = o
	}
}

// dropState deletes the state of id. Setters still holding it are ignored
// from then on.
func (r *Renderer) dropState(id vdom.ID) {
	r.states.Delete(id)
	if o := r.owners[id]; o != nil {
		delete(r.owners, id)
		o.id = vdom.NoID
	}
}

// UseState returns the current value of the next state slot of the
// rendering component and a setter for it. initial is stored the first
// time the slot is used and ignored afterwards.
//
// The setter stores the value and synchronously re-renders the component.
// Calling it while a render pass is running panics with E103. Calling it
// after the component was unmounted does nothing.
//
// Example:
//
//	func Counter(s vdom.Scope, _ vdom.Props) *vdom.Node {
//	    count, setCount := render.UseState(s, 0)
//	    return vdom.Button(vdom.OnClick(func() { setCount(count + 1) }), count)
//	}
func UseState[T any](s vdom.Scope, initial T) (T, func(T)) {
	if s == nil {
		panic(errors.New("E102").WithDetail("UseState was called with a nil scope."))
	}
	v, set := s.Slot(initial)
	cur, _ := v.(T)
	return cur, func(next T) {
		set(next)
	}
}

// setState stores v and re-renders the owning component against itself.
func (r *Renderer) setState(o *owner, slot int, v any) {
	id := o.id
	if r.rendering {
		panic(errors.New("E103").WithDetailf("component %d set state slot %d while a render pass was running", id, slot).
			WithSuggestion("Call state setters from event handlers, not from component functions"))
	}

	node := r.nodes.Get(id)
	if !node.Live() {
		r.opts.Logger.Debug("state set on unmounted component", "id", id, "slot", slot)
		return
	}

	r.states.Set(id, slot, v)
	r.pass(r.baseCtx, "state", func() {
		r.render(node, r.presentationParent(node), id, r.followingHandle(node))
	})
}
