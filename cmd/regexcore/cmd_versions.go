package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/0x4d5352/regexcore/internal/pattern"
)

func newVersionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "List the supported target dialect versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, v := range pattern.List() {
				table, _ := pattern.Get(v)
				fmt.Fprintf(out, "%s\t%s\n", render(styleBold, string(v)), table.Description())
			}
			return nil
		},
	}
}
