package main

import (
	"fmt"

	"github.com/IdrisFallout/artemis-vcs/pkg/repo"
	"github.com/spf13/cobra"
)

func newCheckoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout <branch-or-commit>",
		Short: "Switch HEAD to a branch or commit and restore its snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			target := args[0]
			if err := r.Checkout(target); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if name, err := r.CurrentBranch(); err == nil && name != "" {
				fmt.Fprintf(out, "switched to branch %q\n", name)
			} else {
				fmt.Fprintf(out, "HEAD is now detached at %s\n", shortHash(target))
			}
			return nil
		},
	}
}
