package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/skychart/internal/ui"
)

const (
	defaultRenderWidth  = 80
	defaultRenderHeight = 24
)

var (
	renderWidth  int
	renderHeight int
	renderLoad   string
	renderColor  string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print a one-off sky snapshot",
	Long: `Render draws the sky for the configured site and time once and exits.
The size defaults to the terminal's, or 80x24 when stdout is not a terminal.
With --load the drawing and view of a save file are shown instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log := stderrLogger(cfg)

		isTTY := term.IsTerminal(int(os.Stdout.Fd()))
		width, height := renderWidth, renderHeight
		if isTTY {
			if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				if width <= 0 {
					width = w
				}
				if height <= 0 {
					height = h - 1 // leave the prompt line
				}
			}
		}
		if width <= 0 {
			width = defaultRenderWidth
		}
		if height <= 0 {
			height = defaultRenderHeight
		}

		sess, err := newSession(cmd.Context(), cfg, width, height, log)
		if err != nil {
			return err
		}
		if renderLoad != "" {
			if err := sess.Load(cmd.Context(), renderLoad); err != nil {
				return err
			}
		}

		var out string
		switch renderColor {
		case "always":
			out = ui.RenderColor(sess, labelMode())
		case "never":
			out = ui.RenderPlain(sess, labelMode())
		case "auto":
			if isTTY {
				out = ui.RenderColor(sess, labelMode())
			} else {
				out = ui.RenderPlain(sess, labelMode())
			}
		default:
			return fmt.Errorf("--color must be auto, always or never, got %q", renderColor)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	renderCmd.Flags().IntVar(&renderWidth, "width", 0, "Width in cells (default terminal width)")
	renderCmd.Flags().IntVar(&renderHeight, "height", 0, "Height in cells (default terminal height)")
	renderCmd.Flags().StringVar(&renderLoad, "load", "", "Show the drawing from this save file")
	renderCmd.Flags().StringVar(&renderColor, "color", "auto", "Colour output: auto, always, never")
}
