package main

import (
	"fmt"
	"time"

	"github.com/IdrisFallout/artemis-vcs/pkg/repo"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log",
		Short: "Show commit history from the current HEAD",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			entries, err := r.Log()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "no commits yet")
				return nil
			}

			for _, e := range entries {
				fmt.Fprintf(out, "%s %s\n", color.CyanString("commit"), e.Hash)
				fmt.Fprintf(out, "author: %s\n", e.Commit.Author)
				fmt.Fprintf(out, "date:   %s\n", time.Unix(e.Commit.Timestamp, 0).Format(time.RFC1123))
				if e.Commit.Signature != "" {
					fmt.Fprintln(out, "signed: yes")
				}
				fmt.Fprintf(out, "\n    %s\n\n", e.Commit.Message)
			}
			return nil
		},
	}
}
