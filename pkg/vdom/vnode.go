package vdom

import "github.com/vango-dev/retain/pkg/canvas"

// Kind is the node type discriminator.
type Kind uint8

const (
	KindComponent Kind = iota + 1 // Function producing exactly one child
	KindElement                   // <div>, <button>, etc.
	KindText                      // Literal text
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindComponent:
		return "Component"
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

// ID identifies a node in a render registry. The zero ID means the node has
// not been registered yet.
type ID uint64

// NoID is the zero ID.
const NoID ID = 0

// Node is one position in the retained tree.
//
// The payload fields (Kind through Props) describe what to show and are set
// by the builder. The remaining fields are owned by the reconciler and
// should not be written by application code.
type Node struct {
	Kind  Kind
	Tag   string    // For KindElement
	Text  string    // For KindText, normalized with Literal
	Comp  Component // For KindComponent
	Props Props

	ID        ID                // Registry identifier
	Children  []ID              // Child IDs by position, NoID where absent
	Parent    ID                // Owning node, NoID for the root
	Sibling   int               // Position among the parent's children
	Handle    canvas.Handle     // Mounted element; a component's anchor
	Listener  canvas.ListenerID // Attached click listener
	Tombstone bool              // Logically removed, awaiting collection
}

// Live reports whether n is registered and not tombstoned.
func (n *Node) Live() bool {
	return n != nil && n.ID != NoID && !n.Tombstone
}

// Clone returns an unregistered copy of n's payload. Props are shared.
func (n *Node) Clone() *Node {
	return &Node{Kind: n.Kind, Tag: n.Tag, Text: n.Text, Comp: n.Comp, Props: n.Props}
}

// Child returns the child ID at position i, or NoID.
func (n *Node) Child(i int) ID {
	if n == nil || i < 0 || i >= len(n.Children) {
		return NoID
	}
	return n.Children[i]
}

// Props holds the description of a node.
//
// For elements, Style, OnClick and Children are realized on the canvas.
// For components, Props is the input handed to the component function;
// Children is passed through untouched.
type Props struct {
	Style    Style
	OnClick  func()
	Children []any
	Values   map[string]any
}

// Get returns a component input value.
func (p Props) Get(key string) any {
	return p.Values[key]
}

// Style maps CSS property names to values.
type Style map[string]string

// Scope is handed to a component function while it runs. It identifies the
// component node being rendered and hands out its state slots.
type Scope interface {
	// ID returns the identifier of the component node.
	ID() ID

	// Slot returns the value of the next state slot, storing initial on
	// first use, and a setter that re-renders the component.
	Slot(initial any) (any, func(any))
}

// Component renders to exactly one node. Returning nil renders nothing.
type Component func(s Scope, props Props) *Node
