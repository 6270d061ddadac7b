// Command skychart is a terminal planetarium: a panable, zoomable map of the
// bright stars on which constellation lines can be drawn, saved and quizzed.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/litescript/skychart/internal/version"
)

var rootCmd = &cobra.Command{
	Use:     "skychart",
	Short:   "Terminal sky map for drawing and learning constellations",
	Version: version.Version,
	Args:    cobra.NoArgs,
	RunE:    runTUI,
	// main reports errors; usage after every runtime error buries them.
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errMismatch) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		stop()
		os.Exit(1)
	}
}

func init() {
	bindConfigFlags(rootCmd)
	rootCmd.Flags().StringVar(&sessionName, "session", "default", "Name used by the S/O library keys")

	rootCmd.AddCommand(renderCmd, checkCmd, starCmd, sessionsCmd)
}
