package vdom

import (
	"testing"
	"time"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindComponent, "Component"},
		{KindElement, "Element"},
		{KindText, "Text"},
		{Kind(0), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestNodeLiveAndChild(t *testing.T) {
	var nilNode *Node
	if nilNode.Live() {
		t.Error("nil node should not be live")
	}

	n := Text("x")
	if n.Live() {
		t.Error("unregistered node should not be live")
	}
	n.ID = 4
	if !n.Live() {
		t.Error("registered node should be live")
	}
	n.Tombstone = true
	if n.Live() {
		t.Error("tombstoned node should not be live")
	}

	n.Children = []ID{7, NoID}
	if n.Child(0) != 7 || n.Child(1) != NoID || n.Child(5) != NoID || n.Child(-1) != NoID {
		t.Error("Child() returned wrong IDs")
	}
}

func TestH(t *testing.T) {
	el := H("div", Props{Children: []any{"a"}})
	if el.Kind != KindElement || el.Tag != "div" || len(el.Props.Children) != 1 {
		t.Errorf("H(div) = %+v", el)
	}

	comp := H(func(s Scope, p Props) *Node { return nil }, Props{})
	if comp.Kind != KindComponent || comp.Comp == nil {
		t.Errorf("H(func) = %+v", comp)
	}

	var named Component = func(s Scope, p Props) *Node { return nil }
	if H(named, Props{}).Kind != KindComponent {
		t.Error("H(Component) should build a component node")
	}

	defer func() {
		if recover() == nil {
			t.Error("H(42) should panic")
		}
	}()
	H(42, Props{})
}

func TestElArguments(t *testing.T) {
	clicked := false
	n := El("button",
		Style{"color": "red"},
		Props{Style: Style{"margin": "0"}},
		OnClick(func() { clicked = true }),
		"Click ",
		nil,
		3,
	)

	if n.Props.Style["color"] != "red" || n.Props.Style["margin"] != "0" {
		t.Errorf("Style = %v", n.Props.Style)
	}
	if n.Props.OnClick == nil {
		t.Fatal("OnClick not set")
	}
	n.Props.OnClick()
	if !clicked {
		t.Error("OnClick not wired to the handler")
	}
	if len(n.Props.Children) != 3 {
		t.Errorf("Children = %v, want 3 entries including the nil", n.Props.Children)
	}
}

func TestElPlainFuncIsClickHandler(t *testing.T) {
	n := Button(func() {}, "go")
	if n.Props.OnClick == nil {
		t.Error("plain func() argument should become OnClick")
	}
	if len(n.Props.Children) != 1 {
		t.Errorf("Children = %v", n.Props.Children)
	}
}

func TestCValues(t *testing.T) {
	comp := func(s Scope, p Props) *Node { return Text(p.Get("label").(string)) }
	n := C(comp, Values{"label": "hi"}, "child")

	if n.Kind != KindComponent {
		t.Fatalf("Kind = %v", n.Kind)
	}
	if n.Props.Get("label") != "hi" {
		t.Errorf("Get(label) = %v", n.Props.Get("label"))
	}
	if n.Props.Get("missing") != nil {
		t.Error("Get(missing) should be nil")
	}
	if len(n.Props.Children) != 1 {
		t.Errorf("Children = %v", n.Props.Children)
	}
}

type stringer struct{}

func (stringer) String() string { return "S" }

func TestPromote(t *testing.T) {
	node := Text("x")
	var nilNode *Node

	if Promote(nil) != nil || Promote(false) != nil || Promote(nilNode) != nil {
		t.Error("absent children should promote to nil")
	}
	if Promote(node) != node {
		t.Error("nodes should be returned as is")
	}

	tests := []struct {
		in   any
		want string
	}{
		{"hello", "hello"},
		{0, "0"},
		{int64(-5), "-5"},
		{1.5, "1.5"},
		{true, "true"},
		{stringer{}, "S"},
		{uint8(7), "7"},
		{2 * time.Second, "2s"},
	}
	for _, tt := range tests {
		n := Promote(tt.in)
		if n == nil || n.Kind != KindText || n.Text != tt.want {
			t.Errorf("Promote(%#v) = %+v, want text %q", tt.in, n, tt.want)
		}
	}
}

func TestAbsent(t *testing.T) {
	var nilNode *Node
	for _, c := range []any{nil, false, nilNode} {
		if !Absent(c) {
			t.Errorf("Absent(%#v) = false", c)
		}
	}
	for _, c := range []any{true, 0, "", Text("")} {
		if Absent(c) {
			t.Errorf("Absent(%#v) = true", c)
		}
	}
}

func TestLiteralLooseEquality(t *testing.T) {
	if Literal(1) != Literal("1") || Literal(int64(1)) != Literal(1.0) {
		t.Error("numbers and their string forms should normalize to the same literal")
	}
}

func TestClone(t *testing.T) {
	n := Div(Style{"color": "red"}, "hi")
	n.ID, n.Handle, n.Parent, n.Sibling = 4, 9, 2, 1
	n.Children = []ID{5}

	c := n.Clone()
	if c == n {
		t.Fatal("Clone() returned the receiver")
	}
	if c.Kind != n.Kind || c.Tag != "div" || c.Props.Style["color"] != "red" {
		t.Errorf("Clone() payload = %+v", c)
	}
	if c.ID != NoID || c.Handle != 0 || c.Parent != NoID || c.Sibling != 0 || c.Children != nil {
		t.Errorf("Clone() kept registry state: %+v", c)
	}
}
