package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/retain/examples/counter"
	"github.com/vango-dev/retain/pkg/canvas"
	"github.com/vango-dev/retain/pkg/render"
	"github.com/vango-dev/retain/pkg/vdom"
)

func demoCmd(flags *globalFlags) *cobra.Command {
	var (
		clicks  []int
		patches bool
		dump    bool
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the counter app headless",
		Long: `Mount the two-counter app on an in-memory document, click the
given buttons in order and print the document after every click.

Examples:
  retain demo
  retain demo --click 0,0,1 --patches
  retain demo --click 1 --dump`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(flags)
			if err != nil {
				return err
			}
			r := func(c canvas.Canvas) *render.Renderer {
				return render.New(c, render.FromConfig(cfg.Render), render.WithLogger(logger))
			}
			return runDemo(cmd.Context(), cmd.OutOrStdout(), r, clicks, patches, dump)
		},
	}

	cmd.Flags().IntSliceVar(&clicks, "click", []int{0}, "Indexes of the buttons to click, in order")
	cmd.Flags().BoolVar(&patches, "patches", false, "Print the canvas patches of every step")
	cmd.Flags().BoolVar(&dump, "dump", false, "Print the node registry and state table at the end")

	return cmd
}

func runDemo(ctx context.Context, w io.Writer, newRenderer func(canvas.Canvas) *render.Renderer, clicks []int, showPatches, dump bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	doc := canvas.NewDocument()
	rec := canvas.NewRecorder(doc)
	r := newRenderer(rec)

	r.Render(ctx, vdom.C(counter.App), canvas.NoHandle)
	step(w, "mount", doc, rec, showPatches)

	for _, i := range clicks {
		buttons := doc.FindByTag("button")
		if i < 0 || i >= len(buttons) {
			return fmt.Errorf("no button %d (have %d)", i, len(buttons))
		}
		if err := doc.Click(buttons[i]); err != nil {
			return err
		}
		step(w, fmt.Sprintf("click %d", i), doc, rec, showPatches)
	}

	if dump {
		fmt.Fprintln(w)
		return r.Dump(w)
	}
	return nil
}

func step(w io.Writer, label string, doc *canvas.Document, rec *canvas.Recorder, showPatches bool) {
	ps := rec.Drain()
	fmt.Fprintf(w, "# %s (%d patches)\n", label, len(ps))
	if showPatches {
		for _, p := range ps {
			fmt.Fprintf(w, "  %-13s h=%d p=%d r=%d %s%s%s\n", p.Op, p.Handle, p.Parent, p.Ref, p.Tag, p.Key, quoteValue(p.Value))
		}
	}
	fmt.Fprintln(w, doc.InnerHTML(doc.Root()))
}

func quoteValue(v string) string {
	if v == "" {
		return ""
	}
	return fmt.Sprintf(" %q", v)
}
