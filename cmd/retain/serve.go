package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/retain/examples/counter"
	"github.com/vango-dev/retain/pkg/live"
	"github.com/vango-dev/retain/pkg/render"
	"github.com/vango-dev/retain/pkg/vdom"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		port    int
		host    string
		codec   string
		metrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the counter app over websockets",
		Long: `Serve the two-counter app. Every browser tab gets its own tree,
rendered on the server and streamed as patches.

Examples:
  retain serve
  retain serve --port=8080 --metrics
  retain serve --codec=msgpack`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(flags)
			if err != nil {
				return err
			}

			if port > 0 {
				cfg.Live.Port = port
			}
			if host != "" {
				cfg.Live.Host = host
			}
			if codec != "" {
				cfg.Live.Codec = codec
			}
			if metrics {
				cfg.Live.Metrics = true
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			s, err := live.New(live.Config{
				Address:       cfg.LiveAddress(),
				Root:          func() *vdom.Node { return vdom.C(counter.App) },
				Codec:         cfg.Live.Codec,
				RenderOptions: []render.Option{render.FromConfig(cfg.Render)},
				Metrics:       cfg.Live.Metrics,
				Logger:        logger,
			})
			if err != nil {
				return err
			}

			printBanner(cmd)
			fmt.Fprintf(cmd.OutOrStdout(), "  Listening on http://%s\n\n", cfg.LiveAddress())

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return s.Run(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from retain.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from retain.json)")
	cmd.Flags().StringVar(&codec, "codec", "", "Frame codec: json or msgpack (default from retain.json)")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "Serve Prometheus metrics on /metrics")

	return cmd
}
