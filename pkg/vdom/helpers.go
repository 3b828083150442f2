package vdom

// Flatten expands nested child lists ([]any, []*Node, []string) in place,
// in order. Absent entries keep their positions: children are matched by
// position, so dropping a nil would shift every later sibling.
func Flatten(children []any) []any {
	nested := false
	for _, c := range children {
		switch c.(type) {
		case []any, []*Node, []string:
			nested = true
		}
	}
	if !nested {
		return children
	}

	out := make([]any, 0, len(children))
	for _, c := range children {
		switch v := c.(type) {
		case []any:
			out = append(out, Flatten(v)...)
		case []*Node:
			for _, n := range v {
				out = append(out, n)
			}
		case []string:
			for _, s := range v {
				out = append(out, s)
			}
		default:
			out = append(out, v)
		}
	}
	return out
}

// If returns the node if condition is true, nil otherwise.
func If(condition bool, node *Node) *Node {
	if condition {
		return node
	}
	return nil
}

// IfElse returns the first node if condition is true, the second otherwise.
func IfElse(condition bool, ifTrue, ifFalse *Node) *Node {
	if condition {
		return ifTrue
	}
	return ifFalse
}

// When is like If but with lazy evaluation.
// The function is only called if condition is true.
func When(condition bool, fn func() *Node) *Node {
	if condition {
		return fn()
	}
	return nil
}

// Unless is the inverse of If.
func Unless(condition bool, node *Node) *Node {
	if !condition {
		return node
	}
	return nil
}

// Range maps a slice to nodes. Nil results keep their position.
func Range[T any](items []T, fn func(item T, index int) *Node) []*Node {
	result := make([]*Node, 0, len(items))
	for i, item := range items {
		result = append(result, fn(item, i))
	}
	return result
}

// Repeat creates n nodes using the given function.
func Repeat(n int, fn func(i int) *Node) []*Node {
	if n <= 0 {
		return nil
	}
	result := make([]*Node, 0, n)
	for i := 0; i < n; i++ {
		result = append(result, fn(i))
	}
	return result
}
