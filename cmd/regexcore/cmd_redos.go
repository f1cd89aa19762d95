package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/0x4d5352/regexcore"
	"github.com/0x4d5352/regexcore/internal/redos"
)

func newRedosCmd() *cobra.Command {
	var (
		repeaterThreshold int
		confirm           bool
		confirmAt         string
		confirmTimeout    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "redos [pattern]",
		Short: "Run the static (and optionally empirical) ReDoS analyzer",
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

			sev, err := parseSeverity(confirmAt)
			if err != nil {
				return err
			}
			opts := redos.Options{RepeaterThreshold: repeaterThreshold, ConfirmAt: sev, ConfirmTimeout: confirmTimeout}

			var report redos.Report
			if confirm {
				cfg.RuntimePCREValidation = true
				f, err = regexcore.New(cfg)
				if err != nil {
					return err
				}
				report, err = f.RedosWithRuntimeConfirm(src, opts)
			} else {
				report, err = f.Redos(src, opts)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "severity: %s (score %d)\n", renderSeverity(report.Severity), report.Score)
			if report.Confirmed {
				fmt.Fprintln(out, render(styleDim, "empirically confirmed"))
			}
			for _, finding := range report.Findings {
				fmt.Fprintf(out, "  [%s] %s\n", finding.Category, finding.Message)
				if finding.Suggestion != "" {
					fmt.Fprintf(out, "    %s %s\n", render(styleDim, "suggestion:"), finding.Suggestion)
				}
			}
			if report.Note != "" {
				fmt.Fprintln(out, render(styleDim, report.Note))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&repeaterThreshold, "repeater-threshold", redos.DefaultRepeaterThreshold, "largest max-min span of a bounded quantifier that is not treated as a repeater")
	cmd.Flags().BoolVar(&confirm, "confirm", false, "empirically confirm findings at or above --confirm-at against a live engine")
	cmd.Flags().StringVar(&confirmAt, "confirm-at", "high", "minimum severity that triggers empirical confirmation: safe, low, medium, high, critical")
	cmd.Flags().DurationVar(&confirmTimeout, "confirm-timeout", 2*time.Second, "per-pump timeout for empirical confirmation")
	return cmd
}

func parseSeverity(s string) (redos.Severity, error) {
	switch strings.ToLower(s) {
	case "safe":
		return redos.SeveritySafe, nil
	case "low":
		return redos.SeverityLow, nil
	case "medium":
		return redos.SeverityMedium, nil
	case "high":
		return redos.SeverityHigh, nil
	case "critical":
		return redos.SeverityCritical, nil
	case "unknown":
		return redos.SeverityUnknown, nil
	default:
		return 0, fmt.Errorf("unknown severity %q: expected safe, low, medium, high, critical or unknown", s)
	}
}
