package render

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/retain/pkg/canvas"
	"github.com/vango-dev/retain/pkg/vdom"
)

func TestCollectIdempotent(t *testing.T) {
	r, _, _ := newTestRenderer(t, WithGCThreshold(1), WithGCPolicy(GCManual))
	ctx := context.Background()

	r.Render(ctx, vdom.Div(vdom.P("a"), vdom.P("b")), canvas.NoHandle)
	r.Render(ctx, vdom.Div(), canvas.NoHandle)
	live := r.LiveIDs()

	if got := r.Registry().Len(); got != 6 {
		t.Fatalf("Registry().Len() = %d, want 6", got)
	}
	if got := r.Collect(); got != 5 {
		t.Errorf("first Collect() = %d, want 5", got)
	}
	if got := r.Collect(); got != 0 {
		t.Errorf("second Collect() = %d, want 0", got)
	}
	if diff := cmp.Diff(live, r.LiveIDs()); diff != "" {
		t.Errorf("Collect changed live IDs (-want +got):\n%s", diff)
	}
}

func TestCollectBelowThreshold(t *testing.T) {
	r, _, _ := newTestRenderer(t, WithGCThreshold(100), WithGCPolicy(GCManual))
	ctx := context.Background()

	r.Render(ctx, vdom.Div(vdom.P("a")), canvas.NoHandle)
	r.Render(ctx, vdom.Div(), canvas.NoHandle)

	if got := r.Collect(); got != 0 {
		t.Errorf("Collect() = %d, want 0 below threshold", got)
	}
	if got := r.Registry().Len(); got != 4 {
		t.Errorf("Registry().Len() = %d, want 4", got)
	}
}

func TestGCOnEntryBoundsRegistry(t *testing.T) {
	r, _, _ := newTestRenderer(t)
	ctx := context.Background()

	build := func(i int) *vdom.Node {
		return vdom.Div(vdom.H1("title"), vdom.P("n = ", i), vdom.Ul(vdom.Li("a"), vdom.Li("b")))
	}
	for i := 0; i < 50; i++ {
		r.Render(ctx, build(i), canvas.NoHandle)
	}

	if got := r.Registry().Len(); got > 42+10 {
		t.Errorf("Registry().Len() = %d, want it bounded near the threshold", got)
	}
	if got := len(r.LiveIDs()); got != 11 {
		t.Errorf("live nodes = %d, want 11", got)
	}
}

func TestGCOnCommit(t *testing.T) {
	r, _, _ := newTestRenderer(t, WithGCThreshold(0), WithGCPolicy(GCOnCommit))
	ctx := context.Background()

	r.Render(ctx, vdom.Div(vdom.P("a")), canvas.NoHandle)
	r.Render(ctx, vdom.Div(vdom.Span("b")), canvas.NoHandle)

	if got, live := r.Registry().Len(), len(r.LiveIDs()); got != live {
		t.Errorf("Registry().Len() = %d, want %d (no tombstones after commit)", got, live)
	}
	if r.LastPass().Collected == 0 {
		t.Error("LastPass().Collected = 0, want a sweep")
	}
}

func TestReclaimState(t *testing.T) {
	tests := []struct {
		name    string
		reclaim bool
		want    int
	}{
		{"reclaim", true, 0},
		{"keep", false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newTestRenderer(t,
				WithGCThreshold(0), WithGCPolicy(GCManual), WithReclaimState(tt.reclaim))
			ctx := context.Background()
			c := &counter{}

			r.Render(ctx, vdom.C(c.render), canvas.NoHandle)
			c.set(2)
			r.Unmount(ctx)
			r.Collect()

			if got := r.States().Len(); got != tt.want {
				t.Errorf("States().Len() = %d, want %d", got, tt.want)
			}
		})
	}
}
