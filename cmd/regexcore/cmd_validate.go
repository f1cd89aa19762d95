package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/0x4d5352/regexcore"
)

func newValidateCmd() *cobra.Command {
	var fromLiteral bool
	cmd := &cobra.Command{
		Use:   "validate [pattern]",
		Short: "Validate a pattern against resource limits and dialect rules",
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
			if fromLiteral {
				src = f.UnescapeStringLiteral(src)
			}

			vr, err := f.Validate(src)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if vr.Valid {
				fmt.Fprintf(out, "%s pattern is valid (complexity score %d)\n", render(styleOK, "ok"), vr.ComplexityScore)
				return nil
			}
			fmt.Fprintf(out, "%s %s: %s\n", render(styleBad, "invalid"), vr.Code, vr.Message)
			if vr.Snippet != "" {
				fmt.Fprintln(out, vr.Snippet)
			}
			if vr.Hint != "" {
				fmt.Fprintln(out, render(styleDim, vr.Hint))
			}
			cmd.SilenceErrors = true
			return fmt.Errorf("pattern is invalid")
		},
	}
	cmd.Flags().BoolVar(&fromLiteral, "from-literal", false, "treat the pattern as text pasted from a Java/C#/JavaScript source string literal and unescape it first")
	return cmd
}
