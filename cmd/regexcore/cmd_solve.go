package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/0x4d5352/regexcore"
	"github.com/0x4d5352/regexcore/internal/solver"
)

func newSolveCmd() *cobra.Command {
	var maxProductStates int
	root := &cobra.Command{
		Use:   "solve",
		Short: "Decide language-level relationships between two regular-subset patterns",
	}
	root.PersistentFlags().IntVar(&maxProductStates, "max-product-states", solver.DefaultMaxProductStates, "state budget for the product-automaton walk")

	newSolver := func() (*regexcore.LanguageSolver, error) {
		cfg, err := loadConfiguration()
		if err != nil {
			return nil, err
		}
		f, err := regexcore.New(cfg)
		if err != nil {
			return nil, err
		}
		return regexcore.NewLanguageSolver(f), nil
	}

	root.AddCommand(&cobra.Command{
		Use:   "intersect [a] [b]",
		Short: "Report whether two patterns' languages are disjoint",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSolver()
			if err != nil {
				return err
			}
			res, err := s.IntersectionEmpty(context.Background(), args[0], args[1], solver.Options{MaxProductStates: maxProductStates})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if res.Empty {
				fmt.Fprintln(out, render(styleOK, "disjoint"))
				return nil
			}
			fmt.Fprintln(out, render(styleBad, "intersecting"), "example:", res.Example)
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "subset [a] [b]",
		Short: "Report whether a's language is a subset of b's",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSolver()
			if err != nil {
				return err
			}
			res, err := s.SubsetOf(context.Background(), args[0], args[1], solver.Options{MaxProductStates: maxProductStates})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if res.IsSubset {
				fmt.Fprintln(out, render(styleOK, "subset"))
				return nil
			}
			fmt.Fprintln(out, render(styleBad, "not a subset"), "counter-example:", res.CounterExample)
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "equivalent [a] [b]",
		Short: "Report whether a and b denote the same language",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSolver()
			if err != nil {
				return err
			}
			res, err := s.Equivalent(context.Background(), args[0], args[1], solver.Options{MaxProductStates: maxProductStates})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if res.IsEquivalent {
				fmt.Fprintln(out, render(styleOK, "equivalent"))
				return nil
			}
			fmt.Fprintln(out, render(styleBad, "not equivalent"))
			if res.LeftOnlyExample != "" {
				fmt.Fprintln(out, "  only in a:", res.LeftOnlyExample)
			}
			if res.RightOnlyExample != "" {
				fmt.Fprintln(out, "  only in b:", res.RightOnlyExample)
			}
			return nil
		},
	})

	return root
}
