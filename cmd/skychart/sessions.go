package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/litescript/skychart/internal/astro"
	"github.com/litescript/skychart/internal/catalog"
	"github.com/litescript/skychart/internal/session"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage the session library",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		lib, err := openLibrary(cmd)
		if err != nil {
			return err
		}
		defer lib.Close()

		entries, err := lib.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No sessions in %s\n", lib.Path)
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tLOCATION\tOBSERVED (UTC)\tACTIONS\tID")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
				e.Name, e.Location, e.ObservedAt.Format("2006-01-02 15:04"), e.Actions, e.ID[:8])
		}
		return w.Flush()
	},
}

var sessionsExportCmd = &cobra.Command{
	Use:   "export <name> [file]",
	Short: "Write a stored session as a save file (default stdout)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openLibrary(cmd)
		if err != nil {
			return err
		}
		defer lib.Close()

		s, err := lib.Get(cmd.Context(), args[0], catalog.New(astro.BrightStars()))
		if err != nil {
			return err
		}
		if len(args) == 1 {
			return session.Encode(cmd.OutOrStdout(), s)
		}
		if err := session.SaveFile(args[1], s); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %s to %s\n", args[0], args[1])
		return nil
	},
}

var sessionsImportCmd = &cobra.Command{
	Use:   "import <file> [name]",
	Short: "Store a save file in the library (name defaults to the file's base name)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := session.LoadFile(args[0], catalog.New(astro.BrightStars()))
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		if len(args) == 2 {
			name = args[1]
		}

		lib, err := openLibrary(cmd)
		if err != nil {
			return err
		}
		defer lib.Close()

		if err := lib.Put(cmd.Context(), name, s); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stored %s (%d actions)\n", name, len(s.Actions))
		return nil
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Remove a stored session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openLibrary(cmd)
		if err != nil {
			return err
		}
		defer lib.Close()
		return lib.Delete(cmd.Context(), args[0])
	},
}

func openLibrary(cmd *cobra.Command) (*session.Library, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(filepath.Dir(cfg.LibraryPath)); err != nil {
		return nil, fmt.Errorf("library directory: %w", err)
	}
	return session.OpenLibrary(cfg.LibraryPath)
}

func init() {
	sessionsCmd.AddCommand(sessionsListCmd, sessionsExportCmd, sessionsImportCmd, sessionsDeleteCmd)
}
