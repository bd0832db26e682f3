package main

import (
	"fmt"

	"github.com/IdrisFallout/artemis-vcs/pkg/repo"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newBranchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "branch [name]",
		Short: "List branches, or create one pointing at the current commit",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			if len(args) == 0 {
				names, err := r.ListBranches()
				if err != nil {
					return err
				}
				current, _ := r.CurrentBranch()
				out := cmd.OutOrStdout()
				for _, name := range names {
					if name == current {
						fmt.Fprintf(out, "* %s\n", color.GreenString(name))
					} else {
						fmt.Fprintf(out, "  %s\n", name)
					}
				}
				return nil
			}

			name := args[0]
			if err := r.CreateBranch(name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created branch %q\n", name)
			return nil
		},
	}
}
