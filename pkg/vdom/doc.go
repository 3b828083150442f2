// Package vdom provides the node model and tree builder for retain.
//
// A Node describes one position of the retained UI tree: a Component (a
// function producing one child), an Element (a tag with style, a click
// handler and children) or Text (a literal). Builders only allocate nodes;
// identity, mounting and lifetime belong to the reconciler in package
// render.
//
// # Building Trees
//
// H is the general constructor taking a kind and Props:
//
//	vdom.H("p", vdom.Props{
//	    Style:    vdom.Style{"color": "red"},
//	    Children: []any{"You clicked ", count, " times"},
//	})
//
// El, C and the tag helpers take variadic arguments instead:
//
//	vdom.Div(
//	    vdom.P(vdom.Style{"color": "red"}, "You clicked ", count, " times"),
//	    vdom.Button(vdom.OnClick(inc), "Click me"),
//	    vdom.If(count%2 == 0, vdom.C(Hello)),
//	)
//
// # Children
//
// Children are matched by position. Literals are promoted to text nodes
// when the tree is rendered; nil, false and nil nodes hold their position
// but render nothing. Nested slices are flattened in place.
package vdom
