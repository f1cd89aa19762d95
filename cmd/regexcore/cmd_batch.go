package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gammazero/workerpool"
	"github.com/spf13/cobra"

	"github.com/0x4d5352/regexcore"
	"github.com/0x4d5352/regexcore/internal/redos"
)

type batchResult struct {
	pattern string
	valid   bool
	code    string
	message string
	report  redos.Report
	err     error
}

func newBatchCmd() *cobra.Command {
	var (
		file    string
		workers int
	)
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Validate and ReDoS-scan many patterns concurrently, one per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if file != "" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			patterns, err := readPatterns(r)
			if err != nil {
				return err
			}
			if len(patterns) == 0 {
				return fmt.Errorf("no patterns to check (use --file or pipe patterns, one per line)")
			}

			cfg, err := loadConfiguration()
			if err != nil {
				return err
			}
			facade, err := regexcore.New(cfg)
			if err != nil {
				return err
			}

			results := make([]batchResult, len(patterns))
			pool := workerpool.New(workers)
			for i, p := range patterns {
				i, p := i, p
				pool.Submit(func() {
					results[i] = checkOne(facade, p)
				})
			}
			pool.StopWait()

			return printBatchResults(cmd.OutOrStdout(), results)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "read patterns from this file instead of stdin")
	cmd.Flags().IntVar(&workers, "workers", 8, "maximum number of patterns checked concurrently")
	return cmd
}

// readPatterns splits r into one pattern per non-blank, non-comment line,
// the same delimited-pattern-per-line convention a grep of a codebase for
// regex literals would naturally produce.
func readPatterns(r io.Reader) ([]string, error) {
	var out []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, scanner.Err()
}

func checkOne(f *regexcore.Facade, p string) batchResult {
	vr, err := f.Validate(p)
	if err != nil {
		return batchResult{pattern: p, err: err}
	}
	res := batchResult{pattern: p, valid: vr.Valid, code: vr.Code, message: vr.Message}
	if !vr.Valid {
		return res
	}
	report, err := f.Redos(p, redos.Options{})
	if err != nil {
		res.err = err
		return res
	}
	res.report = report
	return res
}

func printBatchResults(w io.Writer, results []batchResult) error {
	failures := 0
	for _, r := range results {
		switch {
		case r.err != nil:
			failures++
			fmt.Fprintf(w, "%s %s: %v\n", render(styleBad, "error"), r.pattern, r.err)
		case !r.valid:
			failures++
			fmt.Fprintf(w, "%s %s: %s %s\n", render(styleBad, "invalid"), r.pattern, r.code, r.message)
		default:
			fmt.Fprintf(w, "%s %s: severity %s\n", render(styleOK, "ok"), r.pattern, renderSeverity(r.report.Severity))
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d patterns failed", failures, len(results))
	}
	return nil
}
