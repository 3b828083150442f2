package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/retain/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┬─┐┌─┐┌┬┐┌─┐┬┌┐┌
  ├┬┘├┤  │ ├─┤││││
  ┴└─└─┘ ┴ ┴ ┴┴┘└┘
`

// globalFlags are shared by every command.
type globalFlags struct {
	dir       string
	logLevel  string
	logFormat string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "retain",
		Short: "A retained-mode UI renderer with a positional reconciler",
		Long: `retain reconciles declarative node trees onto a live presentation tree.

Commands:
  • demo   run the two-counter app headless and print each frame
  • serve  serve the app to browsers over websockets`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.dir, "dir", "C", ".", "Directory containing retain.json")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error (default from retain.json)")
	rootCmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Log format: auto, text, json (default from retain.json)")

	rootCmd.AddCommand(
		demoCmd(flags),
		serveCmd(flags),
		versionCmd(),
	)

	return rootCmd
}

// printBanner prints the retain ASCII art banner.
func printBanner(cmd *cobra.Command) {
	fmt.Fprint(cmd.OutOrStdout(), banner)
}
