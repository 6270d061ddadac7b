package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/litescript/skychart/internal/annotate"
	"github.com/litescript/skychart/internal/astro"
	"github.com/litescript/skychart/internal/catalog"
	"github.com/litescript/skychart/internal/quiz"
	"github.com/litescript/skychart/internal/session"
)

// errMismatch makes check exit non-zero; the hint is already printed.
var errMismatch = errors.New("drawing does not match")

var checkCmd = &cobra.Command{
	Use:   "check <save-file> <constellation>",
	Short: "Compare a saved drawing with a reference constellation",
	Long: `Check replays the drawing in a save file and prints the first hint the
quiz would give for it, or "Correct". It exits non-zero unless the drawing
matches.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		stars := catalog.New(astro.BrightStars())
		list, err := loadConstellations(cfg, stars)
		if err != nil {
			return err
		}
		ref, ok := quiz.Find(list, args[1])
		if !ok {
			return fmt.Errorf("unknown constellation %q (have %s)", args[1], constellationNames(list))
		}

		saved, err := session.LoadFile(args[0], stars)
		if err != nil {
			return err
		}
		drawing := annotate.New(0)
		if err := drawing.Replay(saved.Actions); err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}

		hint := ref.Diagnose(drawing.Vertices(), drawing.Edges())
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", ref.Name, hint)
		if !hint.Correct() {
			return errMismatch
		}
		return nil
	},
}

func constellationNames(list []quiz.Constellation) string {
	names := make([]string, len(list))
	for i, c := range list {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}
