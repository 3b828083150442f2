package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vango-dev/retain/internal/config"
	"github.com/vango-dev/retain/pkg/canvas"
	"github.com/vango-dev/retain/pkg/vdom"
)

func TestParseGCPolicy(t *testing.T) {
	tests := []struct {
		in   string
		want GCPolicy
		ok   bool
	}{
		{"entry", GCOnEntry, true},
		{"commit", GCOnCommit, true},
		{"manual", GCManual, true},
		{"never", GCOnEntry, false},
	}

	for _, tt := range tests {
		got, ok := ParseGCPolicy(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseGCPolicy(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
		if ok && got.String() != tt.in {
			t.Errorf("String() = %q, want %q", got.String(), tt.in)
		}
	}
}

func TestFromConfig(t *testing.T) {
	off := false
	cfg := config.RenderConfig{
		GCThreshold:  7,
		GCPolicy:     config.GCPolicyManual,
		ReclaimState: &off,
		DebugIDs:     true,
	}

	o := defaultOptions()
	FromConfig(cfg)(&o)

	if o.GCThreshold != 7 || o.GCPolicy != GCManual || o.ReclaimState || !o.DebugIDs {
		t.Errorf("options = %+v", o)
	}
	if !o.UpdateStyles {
		t.Error("UpdateStyles should keep its default when unset")
	}
}

func TestFromConfigKeepsDebugIDs(t *testing.T) {
	o := defaultOptions()
	WithDebugIDs(true)(&o)
	FromConfig(config.RenderConfig{})(&o)

	if !o.DebugIDs {
		t.Error("FromConfig without debugIds turned off an explicit WithDebugIDs(true)")
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithNamespace("test"))

	r, _, _ := newTestRenderer(t, WithMetrics(m), WithGCThreshold(0), WithGCPolicy(GCOnCommit))
	ctx := context.Background()
	r.Render(ctx, vdom.Div(vdom.Button(func() {}, "x")), canvas.NoHandle)
	r.Render(ctx, vdom.Div(vdom.Button(func() {}, "y")), canvas.NoHandle)

	if got := testutil.ToFloat64(m.opsTotal.WithLabelValues("create")); got != 3 {
		t.Errorf("create ops = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.opsTotal.WithLabelValues("replace")); got != 1 {
		t.Errorf("replace ops = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.passesTotal.WithLabelValues("render")); got != 2 {
		t.Errorf("passes = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.registryEntries); int(got) != r.Registry().Len() {
		t.Errorf("registry gauge = %v, want %d", got, r.Registry().Len())
	}

	// A nil *Metrics records nothing and does not panic.
	var none *Metrics
	none.recordOp(OpCreate)
	none.recordSweep(3)
}

func TestReleaseReturnsEntries(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg))
	ctx := context.Background()
	c := &counter{}

	r, doc, _ := newTestRenderer(t, WithMetrics(m))
	r.Render(ctx, vdom.Div(vdom.C(c.render), vdom.P("tail")), canvas.NoHandle)
	c.set(2)
	stale := c.set

	r.Release(ctx)

	if got := testutil.ToFloat64(m.registryEntries); got != 0 {
		t.Errorf("registry gauge = %v, want 0", got)
	}
	if r.Registry().Len() != 0 || r.States().Len() != 0 {
		t.Errorf("Registry().Len() = %d, States().Len() = %d, want 0 and 0", r.Registry().Len(), r.States().Len())
	}
	if got := doc.InnerHTML(doc.Root()); got != "" {
		t.Errorf("InnerHTML() = %q, want empty", got)
	}

	stale(3)
	r.Render(ctx, vdom.C(c.render), canvas.NoHandle)
	if got := doc.TextContent(doc.Root()); got != "count: 0+" {
		t.Errorf("TextContent() after release = %q, want a fresh counter", got)
	}
}

func TestDump(t *testing.T) {
	r, _, _ := newTestRenderer(t)
	c := &counter{}
	r.Render(context.Background(), vdom.C(c.render), canvas.NoHandle)
	c.set(3)

	var buf bytes.Buffer
	if err := r.Dump(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"NODES", "<div>", `"count: "`, "func", "STATES"} {
		if !strings.Contains(out, want) {
			t.Errorf("Dump() missing %q:\n%s", want, out)
		}
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	last := strings.Fields(lines[len(lines)-1])
	if diff := cmp.Diff([]string{"1", "0", "3"}, last); diff != "" {
		t.Errorf("state row (-want +got):\n%s", diff)
	}
}
