package main

import (
	"fmt"

	"github.com/IdrisFallout/artemis-vcs/pkg/repo"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <a> <b>",
		Short: "Show paths added, deleted, or modified between two commits",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			entries, err := r.Diff(args[0], args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, e := range entries {
				switch e.Kind {
				case repo.DiffAdded:
					fmt.Fprintf(out, "%s %s\n", color.GreenString("+"), e.Path)
				case repo.DiffDeleted:
					fmt.Fprintf(out, "%s %s\n", color.RedString("-"), e.Path)
				case repo.DiffModified:
					fmt.Fprintf(out, "%s %s\n", color.YellowString("~"), e.Path)
				}
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "no differences")
			}
			return nil
		},
	}
}
