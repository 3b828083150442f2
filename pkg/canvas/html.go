package canvas

import (
	"io"
	"strings"
)

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// HTML returns the outer HTML of h. Attributes are written in sorted order
// and the style attribute is built from the style map, so output is stable.
func (d *Document) HTML(h Handle) string {
	var b strings.Builder
	_ = d.WriteHTML(&b, h)
	return b.String()
}

// InnerHTML returns the HTML of h's children.
func (d *Document) InnerHTML(h Handle) string {
	var b strings.Builder
	if e := d.elements[h]; e != nil {
		for _, c := range e.Children {
			_ = d.WriteHTML(&b, c)
		}
	}
	return b.String()
}

// WriteHTML streams the outer HTML of h to w.
func (d *Document) WriteHTML(w io.Writer, h Handle) error {
	e := d.elements[h]
	if e == nil {
		return nil
	}
	if e.IsText() {
		_, err := io.WriteString(w, escapeHTML(e.Text))
		return err
	}

	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(e.Tag)
	for _, k := range sortedKeys(e.Attrs) {
		b.WriteString(" " + k + `="` + escapeAttr(e.Attrs[k]) + `"`)
	}
	if len(e.Style) > 0 {
		var style []string
		for _, k := range sortedKeys(e.Style) {
			style = append(style, k+": "+e.Style[k])
		}
		b.WriteString(` style="` + escapeAttr(strings.Join(style, "; ")) + `"`)
	}
	b.WriteByte('>')
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	if voidElements[e.Tag] {
		return nil
	}

	for _, c := range e.Children {
		if err := d.WriteHTML(w, c); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</"+e.Tag+">")
	return err
}
