package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/0x4d5352/regexcore"
	"github.com/0x4d5352/regexcore/internal/normalizer"
)

func newOptimizeCmd() *cobra.Command {
	var canonicalize, unicode bool
	cmd := &cobra.Command{
		Use:   "optimize [pattern]",
		Short: "Apply the normalizer's rewrite catalogue and print the result",
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

			res, err := f.Optimize(src, normalizer.Options{CanonicalizeClasses: canonicalize, Unicode: unicode})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", render(styleDim, "original: "), res.Original)
			fmt.Fprintf(out, "%s %s\n", render(styleBold, "optimized:"), res.Optimized)
			if res.Changed {
				fmt.Fprintf(out, "%s %d bytes saved\n", render(styleOK, "changed"), res.Savings)
			} else {
				fmt.Fprintln(out, render(styleDim, "no rewrite applied"))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&canonicalize, "canonicalize-classes", true, "collapse character classes into their shorthand form (e.g. [0-9] -> \\d)")
	cmd.Flags().BoolVar(&unicode, "unicode", false, "apply unicode-aware rewrites")
	return cmd
}
