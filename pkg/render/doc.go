// Package render reconciles vdom node trees onto a canvas.
//
// A Renderer keeps the previously rendered tree in a registry keyed by node
// ID. Each call to Render walks the new tree and the retained tree in
// lockstep, parents before children, and classifies every position:
//
//   - Create: nothing was there; build the element and attach it
//   - Delete: nothing is wanted; tombstone the old subtree
//   - Replace: kind, tag or text changed; swap in a fresh element
//   - Update: reuse the old element, moving it to the new node
//
// Children are matched by position only. Components own no element; each
// renders exactly one child into its parent's element. A component never
// takes part in a Replace: a component and an element or text trading
// places at one position panics with E101.
//
// # State
//
// Component functions receive a vdom.Scope. UseState hands out one slot
// per call, keyed by the component's ID and the call order:
//
//	count, setCount := render.UseState(s, 0)
//
// A setter stores the new value and immediately re-renders only the owning
// component.
//
// # Garbage Collection
//
// Removed nodes stay in the registry as tombstones until a sweep. Sweeps
// run when the registry exceeds the GC threshold, on every reconciler
// entry, once per pass, or only on Collect depending on the GCPolicy.
package render
