// Package vtest provides testing helpers for retain components.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    h := vtest.Mount(t, vdom.C(Counter))
//	    h.Click("Click me")
//	    h.ExpectHTML(`<div><p>You clicked 1 times</p><button>Click me</button></div>`)
//	}
//
// # Harness
//
// Mount renders a tree on a canvas.Document wrapped in a canvas.Recorder.
// Click and ClickTag dispatch clicks the way a browser would. ExpectHTML,
// ExpectText and ExpectOps report mismatches as go-cmp diffs.
//
// # Render Assertions
//
// For one-shot checks without a harness:
//
//	vtest.ExpectContains(t, vdom.C(Hello), "hello")
//	vtest.ExpectNotContains(t, vdom.C(Hello), "goodbye")
package vtest
