package render

import (
	"testing"

	"github.com/vango-dev/retain/pkg/vdom"
)

func hello(s vdom.Scope, p vdom.Props) *vdom.Node { return vdom.Text("hello") }
func world(s vdom.Scope, p vdom.Props) *vdom.Node { return vdom.Text("world") }

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		next *vdom.Node
		prev *vdom.Node
		want Op
	}{
		{"both absent", nil, nil, OpDelete},
		{"new text", vdom.Text("a"), nil, OpCreate},
		{"new element", vdom.Div(), nil, OpCreate},
		{"new component", vdom.C(hello), nil, OpCreate},
		{"removed text", nil, vdom.Text("a"), OpDelete},
		{"removed component", nil, vdom.C(hello), OpDelete},
		{"text to element", vdom.Div(), vdom.Text("a"), OpReplace},
		{"element to component", vdom.C(hello), vdom.Div(), OpReplace},
		{"tag changed", vdom.Span(), vdom.Div(), OpReplace},
		{"same tag", vdom.Div(vdom.Style{"color": "red"}), vdom.Div(), OpUpdate},
		{"different components", vdom.C(world), vdom.C(hello), OpUpdate},
		{"equal text", vdom.Text("a"), vdom.Text("a"), OpUpdate},
		{"different text", vdom.Text("a"), vdom.Text("b"), OpReplace},
		{"number equals its string", vdom.Promote(0), vdom.Text("0"), OpUpdate},
		{"number changed", vdom.Promote(1), vdom.Promote(0), OpReplace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.next, tt.prev); got != tt.want {
				t.Errorf("Classify() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassifyAbsentSides(t *testing.T) {
	nodes := []*vdom.Node{
		vdom.Text(""),
		vdom.Text("x"),
		vdom.Div(),
		vdom.El("custom-tag", vdom.P("child")),
		vdom.C(hello),
	}
	for _, n := range nodes {
		if got := Classify(n, nil); got != OpCreate {
			t.Errorf("Classify(%s, nil) = %s, want create", n.Kind, got)
		}
		if got := Classify(nil, n); got != OpDelete {
			t.Errorf("Classify(nil, %s) = %s, want delete", n.Kind, got)
		}
	}
}

func TestClassifyDoesNotTouchNodes(t *testing.T) {
	next, prev := vdom.Div(), vdom.Div()
	Classify(next, prev)
	if next.ID != vdom.NoID || prev.ID != vdom.NoID || next.Handle != 0 {
		t.Error("Classify should not register or mount nodes")
	}
}
