// Command regexcore exposes the Facade's parse/validate/optimize/explain/
// redos/solve operations over delimited pattern strings from the command
// line, the CLI counterpart the teacher's own regolith binary provides for
// its diagram-generation pipeline.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, render(styleBad, "error:"), err)
		os.Exit(1)
	}
}

// getInput resolves a pattern argument from args, falling back to stdin
// when none is given — args take priority, the same precedence the
// teacher's own getInput helper uses.
func getInput(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if stdin != nil {
		input, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read from stdin: %w", err)
		}
		trimmed := strings.TrimSpace(string(input))
		if trimmed == "" {
			return "", fmt.Errorf("no pattern provided")
		}
		return trimmed, nil
	}
	return "", fmt.Errorf("no pattern provided")
}
