package render

import "github.com/vango-dev/retain/pkg/vdom"

// Op is the operation the reconciler applies to one node.
type Op uint8

const (
	OpCreate  Op = iota + 1 // Materialize the new node
	OpDelete                // Bury the old node
	OpReplace               // Swap the old element for a fresh one
	OpUpdate                // Reuse the old element
)

// String returns the string representation of the Op.
func (o Op) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpDelete:
		return "delete"
	case OpReplace:
		return "replace"
	case OpUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// Classify decides what to do with next given the previously rendered prev.
// It is pure and never looks at the canvas.
//
// Components and elements of the same kind are always updatable; there is
// no dirty check. Elements with different tags are replaced, as are text
// nodes whose normalized values differ.
func Classify(next, prev *vdom.Node) Op {
	switch {
	case next == nil:
		return OpDelete
	case prev == nil:
		return OpCreate
	case next.Kind != prev.Kind:
		return OpReplace
	}

	switch next.Kind {
	case vdom.KindElement:
		if next.Tag != prev.Tag {
			return OpReplace
		}
	case vdom.KindText:
		if next.Text != prev.Text {
			return OpReplace
		}
	}
	return OpUpdate
}
