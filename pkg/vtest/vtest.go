package vtest

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/retain/pkg/canvas"
	"github.com/vango-dev/retain/pkg/render"
	"github.com/vango-dev/retain/pkg/vdom"
)

// Harness is a render tree mounted on an in-memory document. Every canvas
// mutation goes through a Recorder so tests can inspect patches.
type Harness struct {
	t        testing.TB
	Doc      *canvas.Document
	Recorder *canvas.Recorder
	Renderer *render.Renderer
}

// Mount renders root into a fresh document.
//
// Example:
//
//	h := vtest.Mount(t, vdom.C(Counter))
//	h.Click("Click me")
//	h.ExpectText("You clicked 1 timesClick me")
func Mount(t testing.TB, root *vdom.Node, opts ...render.Option) *Harness {
	t.Helper()
	doc := canvas.NewDocument()
	rec := canvas.NewRecorder(doc)
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts = append([]render.Option{render.WithLogger(quiet)}, opts...)

	h := &Harness{
		t:        t,
		Doc:      doc,
		Recorder: rec,
		Renderer: render.New(rec, opts...),
	}
	h.Render(root)
	return h
}

// Render re-renders the tree with a new root.
func (h *Harness) Render(root *vdom.Node) {
	h.t.Helper()
	h.Renderer.Render(context.Background(), root, canvas.NoHandle)
}

// HTML returns the markup of everything mounted under the document root.
func (h *Harness) HTML() string {
	return h.Doc.InnerHTML(h.Doc.Root())
}

// Text returns the text content of the document.
func (h *Harness) Text() string {
	return h.Doc.TextContent(h.Doc.Root())
}

// Find returns the innermost element whose text content equals text.
func (h *Harness) Find(text string) canvas.Handle {
	h.t.Helper()
	el, ok := h.Doc.FindByText(text)
	if !ok {
		h.t.Fatalf("no element with text %q in:\n%s", text, truncate(h.HTML(), 500))
	}
	return el
}

// Click clicks the innermost element whose text content equals text.
func (h *Harness) Click(text string) {
	h.t.Helper()
	if err := h.Doc.Click(h.Find(text)); err != nil {
		h.t.Fatalf("click %q: %v", text, err)
	}
}

// ClickTag clicks the i-th connected element with the given tag.
func (h *Harness) ClickTag(tag string, i int) {
	h.t.Helper()
	els := h.Doc.FindByTag(tag)
	if i < 0 || i >= len(els) {
		h.t.Fatalf("want <%s> #%d, document has %d", tag, i, len(els))
	}
	if err := h.Doc.Click(els[i]); err != nil {
		h.t.Fatalf("click <%s> #%d: %v", tag, i, err)
	}
}

// Patches returns the patches recorded since the last call and clears them.
func (h *Harness) Patches() []canvas.Patch {
	return h.Recorder.Drain()
}

// ExpectHTML asserts the document markup.
func (h *Harness) ExpectHTML(want string) {
	h.t.Helper()
	if diff := cmp.Diff(want, h.HTML()); diff != "" {
		h.t.Errorf("HTML mismatch (-want +got):\n%s", diff)
	}
}

// ExpectText asserts the document text content.
func (h *Harness) ExpectText(want string) {
	h.t.Helper()
	if diff := cmp.Diff(want, h.Text()); diff != "" {
		h.t.Errorf("text mismatch (-want +got):\n%s", diff)
	}
}

// ExpectOps asserts the ops of the patches recorded since the last drain,
// then clears them.
//
// Example:
//
//	h.Click("+")
//	h.ExpectOps(canvas.PatchCreateText, canvas.PatchReplace)
func (h *Harness) ExpectOps(want ...canvas.PatchOp) {
	h.t.Helper()
	var got []canvas.PatchOp
	for _, p := range h.Patches() {
		got = append(got, p.Op)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		h.t.Errorf("patch ops mismatch (-want +got):\n%s", diff)
	}
}

// ExpectNoStructural asserts that no element was created, moved or removed
// since the last drain, then clears the log.
func (h *Harness) ExpectNoStructural() {
	h.t.Helper()
	if n := h.Recorder.Structural(); n != 0 {
		h.t.Errorf("expected no structural patches, got %d: %v", n, h.Recorder.Patches())
	}
	h.Recorder.Reset()
}

// RenderToString renders a node into a fresh document and returns its HTML.
// This is useful for asserting on rendered output.
//
// Example:
//
//	html := vtest.RenderToString(vdom.C(Hello))
//	if !strings.Contains(html, "hello") {
//	    t.Error("missing greeting")
//	}
func RenderToString(node *vdom.Node) string {
	doc := canvas.NewDocument()
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	render.New(doc, render.WithLogger(quiet)).Render(context.Background(), node, canvas.NoHandle)
	return doc.InnerHTML(doc.Root())
}

// ExpectContains asserts that rendered output contains expected substring.
//
// Example:
//
//	vtest.ExpectContains(t, vdom.C(Counter), "You clicked 0 times")
func ExpectContains(t testing.TB, node *vdom.Node, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t testing.TB, node *vdom.Node, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that rendered output contains a specific tag.
//
// Example:
//
//	vtest.ExpectElement(t, vdom.C(Counter), "button")
func ExpectElement(t testing.TB, node *vdom.Node, tag string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, "<"+tag) {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
