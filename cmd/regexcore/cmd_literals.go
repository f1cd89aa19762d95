package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/0x4d5352/regexcore"
	"github.com/0x4d5352/regexcore/internal/literal"
)

func newLiteralsCmd() *cobra.Command {
	var maxLiterals, maxLiteralLen, maxClassSize int
	cmd := &cobra.Command{
		Use:   "literals [pattern]",
		Short: "Extract the bounded prefix/suffix literal set a pattern's matches must contain",
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

			set, err := f.Literals(src, literal.Options{MaxLiterals: maxLiterals, MaxLiteralLen: maxLiteralLen, MaxClassSize: maxClassSize})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "prefixes: %s\n", strings.Join(set.Prefixes, ", "))
			fmt.Fprintf(out, "suffixes: %s\n", strings.Join(set.Suffixes, ", "))
			fmt.Fprintf(out, "complete: %v\n", set.Complete)
			return nil
		},
	}
	d := literal.DefaultOptions()
	cmd.Flags().IntVar(&maxLiterals, "max-literals", d.MaxLiterals, "cap on alternation fan-out")
	cmd.Flags().IntVar(&maxLiteralLen, "max-literal-len", d.MaxLiteralLen, "cap on any single candidate's length")
	cmd.Flags().IntVar(&maxClassSize, "max-class-size", d.MaxClassSize, "cap on character classes worth expanding")
	return cmd
}
