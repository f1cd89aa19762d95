package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/0x4d5352/regexcore"
	"github.com/0x4d5352/regexcore/internal/explain"
)

func newParseCmd() *cobra.Command {
	var tolerant bool
	cmd := &cobra.Command{
		Use:   "parse [pattern]",
		Short: "Parse a delimited pattern and print its AST",
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

			if tolerant {
				res := f.TolerantParse(src)
				out, err := explain.Render(res.Regex.Body, explain.Text)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				for _, e := range res.Errors {
					fmt.Fprintln(cmd.ErrOrStderr(), render(styleBad, "warning:"), e.Error())
				}
				return nil
			}

			res, err := f.Parse(src)
			if err != nil {
				return err
			}
			out, err := explain.Render(res.Regex.Body, explain.Text)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&tolerant, "tolerant", false, "never abort on the first syntax error; collect every error found")
	return cmd
}
