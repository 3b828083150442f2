package vdom

import (
	"fmt"
	"strconv"
)

// H builds a node from a kind and its properties. kind is a tag name for an
// element or a Component (or a plain func with the Component signature).
// H only allocates; nothing is registered or mounted.
func H(kind any, props Props) *Node {
	switch k := kind.(type) {
	case string:
		return &Node{Kind: KindElement, Tag: k, Props: props}
	case Component:
		return &Node{Kind: KindComponent, Comp: k, Props: props}
	case func(Scope, Props) *Node:
		return &Node{Kind: KindComponent, Comp: k, Props: props}
	default:
		panic(fmt.Sprintf("vdom: H called with unsupported kind %T", kind))
	}
}

// Text creates a text node.
func Text(content string) *Node {
	return &Node{Kind: KindText, Text: content}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *Node {
	return Text(fmt.Sprintf(format, args...))
}

// OnClick marks a click handler argument for El and the tag helpers.
type OnClick func()

// Values marks component input values for C.
type Values map[string]any

// El creates an element. Arguments can be: Props, Style, OnClick, or
// children (*Node, []*Node, []any, strings and other literals, nil, false).
// Children keep their argument positions; nil and false hold a position
// that renders nothing.
func El(tag string, args ...any) *Node {
	n := &Node{Kind: KindElement, Tag: tag}
	applyArgs(&n.Props, args)
	return n
}

// C creates a component node. Arguments are handled like El, with Values
// merged into the component's input values.
func C(comp Component, args ...any) *Node {
	n := &Node{Kind: KindComponent, Comp: comp}
	applyArgs(&n.Props, args)
	return n
}

func applyArgs(p *Props, args []any) {
	for _, arg := range args {
		switch v := arg.(type) {
		case Props:
			mergeProps(p, v)
		case Style:
			if p.Style == nil {
				p.Style = make(Style, len(v))
			}
			for k, val := range v {
				p.Style[k] = val
			}
		case OnClick:
			p.OnClick = v
		case func():
			p.OnClick = v
		case Values:
			if p.Values == nil {
				p.Values = make(map[string]any, len(v))
			}
			for k, val := range v {
				p.Values[k] = val
			}
		default:
			p.Children = append(p.Children, v)
		}
	}
}

func mergeProps(dst *Props, src Props) {
	if src.Style != nil {
		if dst.Style == nil {
			dst.Style = make(Style, len(src.Style))
		}
		for k, v := range src.Style {
			dst.Style[k] = v
		}
	}
	if src.OnClick != nil {
		dst.OnClick = src.OnClick
	}
	if src.Values != nil {
		if dst.Values == nil {
			dst.Values = make(map[string]any, len(src.Values))
		}
		for k, v := range src.Values {
			dst.Values[k] = v
		}
	}
	dst.Children = append(dst.Children, src.Children...)
}

// Promote turns a declared child into a node. Absent children (nil, false,
// a nil *Node) yield nil. Nodes are returned as is. Every other value
// becomes a fresh text node holding its Literal form.
func Promote(child any) *Node {
	switch v := child.(type) {
	case nil:
		return nil
	case bool:
		if !v {
			return nil
		}
		return Text("true")
	case *Node:
		return v
	default:
		return Text(Literal(v))
	}
}

// Absent reports whether a declared child renders nothing.
func Absent(child any) bool {
	switch v := child.(type) {
	case nil:
		return true
	case bool:
		return !v
	case *Node:
		return v == nil
	}
	return false
}

// Literal normalizes a value to the string a text node displays. Text
// nodes compare by this form, so 1, int64(1) and "1" are the same text.
func Literal(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(v)
	}
}
