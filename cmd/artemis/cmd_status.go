package main

import (
	"fmt"

	"github.com/IdrisFallout/artemis-vcs/pkg/repo"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show working tree status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			report, err := r.Status()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			branch := repo.DefaultBranch
			noCommits := true
			if name, err := r.CurrentBranch(); err == nil && name != "" {
				branch = name
			}
			if tip, err := r.ResolveRef("HEAD"); err == nil && tip != "" {
				noCommits = false
			}

			if noCommits {
				fmt.Fprintf(out, "on %s (no commits yet)\n", branch)
			} else {
				fmt.Fprintf(out, "on %s\n", branch)
			}

			// A staged path can also be modified: staged earlier, edited since.
			modified := make(map[string]bool, len(report.Modified))
			for _, p := range report.Modified {
				modified[p] = true
			}

			if len(report.Staged) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, "staged:")
				for _, p := range report.Staged {
					if modified[p] {
						fmt.Fprintf(out, "  %s %s\n", color.YellowString("~"), p)
					} else {
						fmt.Fprintf(out, "  %s %s\n", color.GreenString("+"), p)
					}
				}
			}

			if len(report.Modified) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, "modified since staging:")
				for _, p := range report.Modified {
					fmt.Fprintf(out, "  %s\n", color.YellowString(p))
				}
			}

			if len(report.Untracked) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, "untracked:")
				for _, p := range report.Untracked {
					fmt.Fprintf(out, "  %s\n", color.RedString(p))
				}
			}

			if len(report.Staged) == 0 && len(report.Untracked) == 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, "nothing to commit, working tree clean")
			}
			return nil
		},
	}
}
