package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/vango-dev/retain/pkg/vdom"
)

// Dump writes the live nodes and the state table to w.
func (r *Renderer) Dump(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "NODES")
	fmt.Fprintln(tw, "ID\tKIND\tPAYLOAD\tPARENT\tCHILDREN\tHANDLE")
	for _, id := range r.nodes.LiveIDs() {
		n := r.nodes.Get(id)
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%d\n",
			n.ID, n.Kind, payload(n), n.Parent, joinIDs(n.Children), n.Handle)
	}

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "STATES")
	fmt.Fprintln(tw, "ID\tSLOT\tVALUE")
	for _, id := range r.states.IDs() {
		for slot := 0; ; slot++ {
			v, ok := r.states.Get(id, slot)
			if !ok {
				break
			}
			fmt.Fprintf(tw, "%d\t%d\t%v\n", id, slot, v)
		}
	}

	return tw.Flush()
}

func payload(n *vdom.Node) string {
	switch n.Kind {
	case vdom.KindElement:
		return "<" + n.Tag + ">"
	case vdom.KindText:
		return fmt.Sprintf("%q", n.Text)
	default:
		return "func"
	}
}

func joinIDs(ids []vdom.ID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(uint64(id))
	}
	return strings.Join(parts, ",")
}
