package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/litescript/skychart/internal/astro"
)

const timeLayout = "2006-01-02 15:04 UTC"

var starCmd = &cobra.Command{
	Use:   "star <name>",
	Short: "Show where a star is and when it rises and sets",
	Long: `Star prints a star's position for the configured site and start time,
and its next rise, transit and set within a day.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		site, err := astro.SiteByName(cfg.Location)
		if err != nil {
			return err
		}
		at, err := cfg.StartTime(time.Now())
		if err != nil {
			return err
		}

		star, ok := findStar(args[0])
		if !ok {
			return fmt.Errorf("unknown star %q", args[0])
		}

		out := cmd.OutOrStdout()
		h := astro.EquatorialToHorizontal(star.RAdeg, star.DecDeg, site, at)
		fmt.Fprintf(out, "%s (mag %.2f) from %s at %s\n", star.Name, star.Mag, site.Name, at.Format(timeLayout))
		fmt.Fprintf(out, "  now:     %s\n", h)
		fmt.Fprintf(out, "  sky:     %s\n", astro.TwilightAt(astro.SunHorizon(site, at).Altitude))

		w, err := astro.RiseSet(site, star.RAdeg, star.DecDeg, at, 24*time.Hour, 5*time.Minute)
		if err != nil {
			return err
		}
		switch {
		case w.NeverVisible:
			fmt.Fprintln(out, "  never rises here")
		case w.AlwaysVisible:
			fmt.Fprintf(out, "  circumpolar, transit %s at %.1f°\n", w.Transit.Format(timeLayout), w.MaxAltitude)
		default:
			fmt.Fprintf(out, "  rise:    %s\n", formatEvent(w.Rise, "already up"))
			fmt.Fprintf(out, "  transit: %s at %.1f°\n", w.Transit.Format(timeLayout), w.MaxAltitude)
			fmt.Fprintf(out, "  set:     %s\n", formatEvent(w.Set, "not within a day"))
		}
		return nil
	},
}

func findStar(name string) (astro.BrightStar, bool) {
	for _, s := range astro.BrightStars() {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return astro.BrightStar{}, false
}

func formatEvent(t time.Time, missing string) string {
	if t.IsZero() {
		return missing
	}
	return t.Format(timeLayout)
}
