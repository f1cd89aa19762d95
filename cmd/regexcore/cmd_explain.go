package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/0x4d5352/regexcore"
	"github.com/0x4d5352/regexcore/internal/explain"
)

func newExplainCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "explain [pattern]",
		Short: "Render a pattern's AST as an indented walk or JSON tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := getInput(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			cfg, err := loadConfiguration()
			if err != nil {
				return err
			}
			f, err := regexcore.New(cfg)
			if err != nil {
				return err
			}

			out, err := f.Explain(src, explain.Format(format))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or json")
	return cmd
}
