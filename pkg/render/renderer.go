package render

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/retain/internal/errors"
	"github.com/vango-dev/retain/pkg/canvas"
	"github.com/vango-dev/retain/pkg/vdom"
)

// Stats counts the reconciler decisions of one render pass.
type Stats struct {
	Creates   int
	Deletes   int
	Replaces  int
	Updates   int
	Rebinds   int // Updates that substituted a new node for an old one
	Collected int // Registry entries removed by GC during the pass
}

// Renderer reconciles node trees onto a canvas. It owns the node registry
// and the state store of one tree.
//
// A Renderer is not safe for concurrent use. Every render, including one
// triggered by a state setter, runs to completion before returning.
type Renderer struct {
	opts   Options
	canvas canvas.Canvas
	nodes  *Registry
	states *StateStore
	owners map[vdom.ID]*owner

	mount  canvas.Handle
	rootID vdom.ID

	// baseCtx parents the spans of setter-triggered passes.
	baseCtx context.Context

	active    *scope
	rendering bool
	stats     Stats
	last      Stats
}

// New creates a Renderer that mutates c.
func New(c canvas.Canvas, opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = defaultOptions().Logger
	}
	if o.Tracer == nil {
		o.Tracer = defaultOptions().Tracer
	}
	return &Renderer{
		opts:    o,
		canvas:  c,
		nodes:   NewRegistry(),
		states:  NewStateStore(),
		owners:  make(map[vdom.ID]*owner),
		mount:   c.Root(),
		baseCtx: context.Background(),
	}
}

// Render reconciles root against the previously rendered root and mounts
// the result under mount. A zero mount means the canvas root. Rendering a
// nil root unmounts the current tree. Rendering under a different mount
// than before unmounts the old tree first.
//
// Render panics with E103 when called from inside a render pass.
func (r *Renderer) Render(ctx context.Context, root *vdom.Node, mount canvas.Handle) {
	if r.rendering {
		panic(errors.New("E103").WithDetail("Render was called while a render pass was running."))
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if mount == canvas.NoHandle {
		mount = r.canvas.Root()
	}
	r.baseCtx = ctx

	r.pass(ctx, "render", func() {
		if r.rootID != vdom.NoID && mount != r.mount {
			r.render(nil, r.mount, r.rootID, canvas.NoHandle)
			r.rootID = vdom.NoID
		}
		r.mount = mount

		if root != nil {
			root = r.claim(root, r.rootID)
			root.Parent, root.Sibling = vdom.NoID, 0
		}
		r.render(root, mount, r.rootID, canvas.NoHandle)

		r.rootID = vdom.NoID
		if root != nil {
			r.rootID = root.ID
		}
	})
}

// Unmount removes the current tree from the canvas.
func (r *Renderer) Unmount(ctx context.Context) {
	r.Render(ctx, nil, r.mount)
}

// Release unmounts the tree and empties the registry and the state store.
// The released entries leave the registry gauge, and setters of released
// components are ignored from then on. The Renderer can render again.
func (r *Renderer) Release(ctx context.Context) {
	r.Unmount(ctx)

	r.opts.Metrics.addEntries(-r.nodes.Len())
	r.nodes.Reset()
	for id := range r.owners {
		r.dropState(id)
	}
	r.states = NewStateStore()
}

// pass runs fn as one top-level render pass.
func (r *Renderer) pass(ctx context.Context, trigger string, fn func()) {
	ctx, span := r.opts.Tracer.Start(ctx, "retain.render",
		trace.WithAttributes(attribute.String("retain.trigger", trigger)))
	defer span.End()

	start := time.Now()
	r.rendering = true
	r.stats = Stats{}

	defer func() {
		r.rendering = false
		r.active = nil
		if p := recover(); p != nil {
			span.SetStatus(codes.Error, fmt.Sprint(p))
			panic(p)
		}
	}()

	fn()
	if r.opts.GCPolicy == GCOnCommit {
		r.collect()
	}

	r.last = r.stats
	duration := time.Since(start)
	r.opts.Metrics.recordPass(trigger, duration)

	span.SetAttributes(
		attribute.Int("retain.creates", r.stats.Creates),
		attribute.Int("retain.deletes", r.stats.Deletes),
		attribute.Int("retain.replaces", r.stats.Replaces),
		attribute.Int("retain.updates", r.stats.Updates),
		attribute.Int("retain.collected", r.stats.Collected),
	)
	span.SetStatus(codes.Ok, "")

	r.opts.Logger.DebugContext(ctx, "render pass",
		"trigger", trigger,
		"creates", r.stats.Creates,
		"deletes", r.stats.Deletes,
		"replaces", r.stats.Replaces,
		"updates", r.stats.Updates,
		"rebinds", r.stats.Rebinds,
		"collected", r.stats.Collected,
		"entries", r.nodes.Len(),
		"duration", duration,
	)
}

// Collect sweeps tombstoned nodes out of the registry if it holds more
// entries than the GC threshold. It returns the number of entries removed.
func (r *Renderer) Collect() int {
	return r.collect()
}

// Registry returns the node registry.
func (r *Renderer) Registry() *Registry {
	return r.nodes
}

// States returns the state store.
func (r *Renderer) States() *StateStore {
	return r.states
}

// Node returns the registered node for id, or nil.
func (r *Renderer) Node(id vdom.ID) *vdom.Node {
	return r.nodes.Get(id)
}

// RootID returns the ID of the mounted root, or NoID.
func (r *Renderer) RootID() vdom.ID {
	return r.rootID
}

// Mount returns the handle the tree is mounted under.
func (r *Renderer) Mount() canvas.Handle {
	return r.mount
}

// LiveIDs returns the IDs of all registered nodes that are not tombstoned.
func (r *Renderer) LiveIDs() []vdom.ID {
	return r.nodes.LiveIDs()
}

// LastPass returns the statistics of the most recent completed pass.
func (r *Renderer) LastPass() Stats {
	return r.last
}

// Rendering reports whether a render pass is running.
func (r *Renderer) Rendering() bool {
	return r.rendering
}
