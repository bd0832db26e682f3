package main

import (
	"fmt"

	"github.com/IdrisFallout/artemis-vcs/pkg/repo"
	"github.com/spf13/cobra"
)

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <files...>",
		Short: "Stage files for the next commit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			warnings, err := r.Add(args)
			if err != nil {
				return err
			}
			for _, w := range warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
			}
			if len(warnings) == len(args) && len(args) > 0 {
				return fmt.Errorf("add: no paths could be staged")
			}
			return nil
		},
	}
}
