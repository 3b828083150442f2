package vdom

// Element helpers. Each takes the same arguments as El.

func Div(args ...any) *Node     { return El("div", args...) }
func Span(args ...any) *Node    { return El("span", args...) }
func P(args ...any) *Node       { return El("p", args...) }
func H1(args ...any) *Node      { return El("h1", args...) }
func H2(args ...any) *Node      { return El("h2", args...) }
func H3(args ...any) *Node      { return El("h3", args...) }
func Ul(args ...any) *Node      { return El("ul", args...) }
func Ol(args ...any) *Node      { return El("ol", args...) }
func Li(args ...any) *Node      { return El("li", args...) }
func Section(args ...any) *Node { return El("section", args...) }
func Header(args ...any) *Node  { return El("header", args...) }
func Footer(args ...any) *Node  { return El("footer", args...) }
func Strong(args ...any) *Node  { return El("strong", args...) }
func Em(args ...any) *Node      { return El("em", args...) }
func Code(args ...any) *Node    { return El("code", args...) }
func Button(args ...any) *Node  { return El("button", args...) }
func Label(args ...any) *Node   { return El("label", args...) }
func Hr(args ...any) *Node      { return El("hr", args...) }
func Br(args ...any) *Node      { return El("br", args...) }
