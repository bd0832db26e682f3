package main

import (
	"fmt"

	"github.com/IdrisFallout/artemis-vcs/pkg/repo"
	"github.com/spf13/cobra"
)

func newCloneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clone <destination>",
		Short: "Copy this repository's full history into a new directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			clone, err := r.Clone(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "cloned %s into %s\n", r.RootDir, clone.RootDir)
			return nil
		},
	}
}
