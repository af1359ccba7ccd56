package commands

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.trai.ch/reuse/internal/app"
	"go.trai.ch/reuse/internal/ui/output"
	"go.trai.ch/reuse/internal/ui/style"
)

func (c *CLI) newHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash [units...]",
		Short: "Print the current fingerprint of each unit",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fingerprints, err := c.components.App.Hash(cmd.Context(), c.target(args))
			if err != nil {
				return err
			}

			if c.json {
				return c.encode(fingerprints)
			}

			width := 0
			for _, f := range fingerprints {
				width = max(width, len(f.Unit))
			}
			for _, f := range fingerprints {
				_, _ = fmt.Fprintf(c.out, "%-*s  %s\n", width, f.Unit, f.Fingerprint)
			}
			return nil
		},
	}
}

func (c *CLI) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [units...]",
		Short: "Report whether the next run of each unit is served from the cache",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses, err := c.components.App.Status(cmd.Context(), c.target(args))
			if err != nil {
				return err
			}

			if c.json {
				return c.encode(statuses)
			}

			r := output.NewRenderer(c.out)
			hit := r.NewStyle().Foreground(style.Green)
			miss := r.NewStyle().Foreground(style.Yellow)
			dim := r.NewStyle().Foreground(style.Slate)

			for _, s := range statuses {
				_, _ = fmt.Fprintln(c.out, statusLine(s, hit, miss, dim))
			}
			return nil
		},
	}
}

func statusLine(s app.UnitStatus, hit, miss, dim lipgloss.Style) string {
	line := miss.Render(style.Dot) + " " + s.Unit + " " + miss.Render("stale")
	if s.Cached {
		line = hit.Render(style.Check) + " " + s.Unit + " " + hit.Render("cached")
		if !s.Current.BuiltAt.IsZero() {
			line += dim.Render(" built " + s.Current.BuiltAt.Local().Format("2006-01-02 15:04:05"))
		}
	}
	if n := len(s.Stale); n > 0 {
		line += dim.Render(" (" + strconv.Itoa(n) + " outdated entries)")
	}
	return line + "\n  " + dim.Render(s.Fingerprint.String())
}

func (c *CLI) encode(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [units...]",
		Short: "Remove the cache entries of the units so the next run rebuilds them",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			return c.components.App.Clean(cmd.Context(), c.target(args), app.CleanOptions{All: all})
		},
	}
	cmd.Flags().BoolP("all", "a", false, "Remove every entry in the cache directory")
	return cmd
}
