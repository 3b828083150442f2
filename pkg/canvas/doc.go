// Package canvas defines the presentation tree the reconciler mutates.
//
// Canvas is the boundary between the reconciler and whatever actually shows
// the UI. It is deliberately close to the browser DOM: elements and text
// nodes are created detached, then appended, inserted, replaced or removed.
// Elements are addressed by opaque Handles.
//
// # Implementations
//
// Document is a complete in-memory tree. It supports clicking elements,
// querying by tag or text, and HTML serialization, which makes it the
// canvas of choice for tests, the CLI demo, and the server side of a live
// session.
//
// Recorder wraps another Canvas and logs one Patch per mutation:
//
//	doc := canvas.NewDocument()
//	rec := canvas.NewRecorder(doc)
//	r := render.New(rec)
//	r.Render(ctx, app, rec.Root())
//	patches := rec.Drain()
package canvas
