package canvas

import (
	"sort"
	"strings"

	"github.com/vango-dev/retain/internal/errors"
)

// Element is one node of a Document. Text nodes have an empty Tag.
type Element struct {
	Handle   Handle
	Tag      string
	Text     string
	Style    map[string]string
	Attrs    map[string]string
	Parent   Handle
	Children []Handle

	listeners []listener
}

type listener struct {
	id ListenerID
	fn func()
}

// IsText reports whether e is a text node.
func (e *Element) IsText() bool {
	return e.Tag == ""
}

// Listeners returns the number of attached click listeners.
func (e *Element) Listeners() int {
	return len(e.listeners)
}

// Document is an in-memory Canvas. Removing or replacing an element
// releases it together with its descendants; a released handle no longer
// resolves. Created elements that were never attached stay until removed.
type Document struct {
	elements     map[Handle]*Element
	root         Handle
	nextHandle   Handle
	nextListener ListenerID
}

// NewDocument creates a Document whose root is a <body> element.
func NewDocument() *Document {
	d := &Document{elements: make(map[Handle]*Element)}
	d.root = d.CreateElement("body")
	return d
}

// Root implements Canvas.
func (d *Document) Root() Handle {
	return d.root
}

// CreateText implements Canvas.
func (d *Document) CreateText(value string) Handle {
	h := d.alloc()
	d.elements[h] = &Element{Handle: h, Text: value}
	return h
}

// CreateElement implements Canvas.
func (d *Document) CreateElement(tag string) Handle {
	h := d.alloc()
	d.elements[h] = &Element{Handle: h, Tag: tag}
	return h
}

func (d *Document) alloc() Handle {
	d.nextHandle++
	return d.nextHandle
}

// SetStyle implements Canvas.
func (d *Document) SetStyle(h Handle, key, value string) {
	e := d.elements[h]
	if e == nil || e.IsText() {
		return
	}
	e.Style = setOrDelete(e.Style, key, value)
}

// SetAttribute implements Canvas.
func (d *Document) SetAttribute(h Handle, key, value string) {
	e := d.elements[h]
	if e == nil || e.IsText() {
		return
	}
	e.Attrs = setOrDelete(e.Attrs, key, value)
}

func setOrDelete(m map[string]string, key, value string) map[string]string {
	if value == "" {
		delete(m, key)
		return m
	}
	if m == nil {
		m = make(map[string]string)
	}
	m[key] = value
	return m
}

// AddClickListener implements Canvas.
func (d *Document) AddClickListener(h Handle, fn func()) ListenerID {
	e := d.elements[h]
	if e == nil || fn == nil {
		return 0
	}
	d.nextListener++
	e.listeners = append(e.listeners, listener{id: d.nextListener, fn: fn})
	return d.nextListener
}

// RemoveClickListener implements Canvas.
func (d *Document) RemoveClickListener(h Handle, id ListenerID) {
	e := d.elements[h]
	if e == nil {
		return
	}
	for i, l := range e.listeners {
		if l.id == id {
			e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
			return
		}
	}
}

// AppendChild implements Canvas.
func (d *Document) AppendChild(parent, child Handle) {
	p, c := d.elements[parent], d.elements[child]
	if p == nil || c == nil || p.IsText() {
		return
	}
	d.detach(c)
	p.Children = append(p.Children, child)
	c.Parent = parent
}

// InsertBefore implements Canvas.
func (d *Document) InsertBefore(parent, child, ref Handle) {
	p, c := d.elements[parent], d.elements[child]
	if p == nil || c == nil || p.IsText() {
		return
	}
	d.detach(c)
	i := indexOf(p.Children, ref)
	if i < 0 {
		p.Children = append(p.Children, child)
	} else {
		p.Children = append(p.Children[:i], append([]Handle{child}, p.Children[i:]...)...)
	}
	c.Parent = parent
}

// ReplaceChild implements Canvas.
func (d *Document) ReplaceChild(parent, newChild, oldChild Handle) {
	p, n, o := d.elements[parent], d.elements[newChild], d.elements[oldChild]
	if p == nil || n == nil || p.IsText() {
		return
	}
	if o == nil || o.Parent != parent {
		d.AppendChild(parent, newChild)
		return
	}
	d.detach(n)
	i := indexOf(p.Children, oldChild)
	p.Children[i] = newChild
	n.Parent = parent
	o.Parent = NoHandle
	d.release(o)
}

// Remove implements Canvas.
func (d *Document) Remove(h Handle) {
	if h == d.root {
		return
	}
	if e := d.elements[h]; e != nil {
		d.detach(e)
		d.release(e)
	}
}

// release forgets e and its descendants.
func (d *Document) release(e *Element) {
	for _, c := range e.Children {
		if ce := d.elements[c]; ce != nil && ce.Parent == e.Handle {
			d.release(ce)
		}
	}
	delete(d.elements, e.Handle)
}

func (d *Document) detach(e *Element) {
	if e.Parent == NoHandle {
		return
	}
	if p := d.elements[e.Parent]; p != nil {
		if i := indexOf(p.Children, e.Handle); i >= 0 {
			p.Children = append(p.Children[:i], p.Children[i+1:]...)
		}
	}
	e.Parent = NoHandle
}

func indexOf(hs []Handle, h Handle) int {
	if h == NoHandle {
		return -1
	}
	for i, x := range hs {
		if x == h {
			return i
		}
	}
	return -1
}

// Element returns the element for h.
func (d *Document) Element(h Handle) (*Element, bool) {
	e, ok := d.elements[h]
	return e, ok
}

// Click runs the click listeners of h in attachment order.
func (d *Document) Click(h Handle) error {
	e := d.elements[h]
	if e == nil {
		return errors.New("E104").WithDetailf("handle %d is not part of this document", h)
	}
	// A listener may re-render and swap listeners on this element.
	ls := append([]listener(nil), e.listeners...)
	for _, l := range ls {
		l.fn()
	}
	return nil
}

// Connected reports whether h is attached, directly or transitively, to the root.
func (d *Document) Connected(h Handle) bool {
	for h != NoHandle {
		if h == d.root {
			return true
		}
		e := d.elements[h]
		if e == nil {
			return false
		}
		h = e.Parent
	}
	return false
}

// Retained returns the number of elements the document holds, attached or
// not, root included.
func (d *Document) Retained() int {
	return len(d.elements)
}

// Len returns the number of elements attached to the root, root included.
func (d *Document) Len() int {
	return d.count(d.root)
}

func (d *Document) count(h Handle) int {
	e := d.elements[h]
	if e == nil {
		return 0
	}
	n := 1
	for _, c := range e.Children {
		n += d.count(c)
	}
	return n
}

// TextContent returns the concatenated text of h and its descendants.
func (d *Document) TextContent(h Handle) string {
	var b strings.Builder
	d.writeText(&b, h)
	return b.String()
}

func (d *Document) writeText(b *strings.Builder, h Handle) {
	e := d.elements[h]
	if e == nil {
		return
	}
	if e.IsText() {
		b.WriteString(e.Text)
		return
	}
	for _, c := range e.Children {
		d.writeText(b, c)
	}
}

// FindByTag returns the connected elements with the given tag in document order.
func (d *Document) FindByTag(tag string) []Handle {
	var out []Handle
	d.walk(d.root, func(e *Element) {
		if e.Tag == tag {
			out = append(out, e.Handle)
		}
	})
	return out
}

// FindByText returns the first connected non-text element, in document
// order, whose text content equals text. Nested matches resolve to the
// innermost element.
func (d *Document) FindByText(text string) (Handle, bool) {
	h := d.findText(d.root, text)
	return h, h != NoHandle
}

func (d *Document) findText(h Handle, text string) Handle {
	e := d.elements[h]
	if e == nil || e.IsText() {
		return NoHandle
	}
	for _, c := range e.Children {
		if found := d.findText(c, text); found != NoHandle {
			return found
		}
	}
	if d.TextContent(h) == text {
		return h
	}
	return NoHandle
}

// walk visits connected elements depth-first, parents before children.
func (d *Document) walk(h Handle, fn func(*Element)) {
	e := d.elements[h]
	if e == nil {
		return
	}
	fn(e)
	for _, c := range e.Children {
		d.walk(c, fn)
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
