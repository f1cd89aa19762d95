package main

import (
	"fmt"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/cobra"

	"github.com/0x4d5352/regexcore/internal/config"
	"github.com/0x4d5352/regexcore/internal/pattern"
)

var (
	flagConfigPath     string
	flagTargetVersion  string
	flagRuntimeConfirm bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "regexcore [command]",
		Short:         "Parse, validate, optimize and analyze PCRE-family regular expressions",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.PersistentFlags().StringVar(&flagConfigPath, "config", "", "path to a regexcore.toml configuration file")
	root.PersistentFlags().StringVar(&flagTargetVersion, "target-version", "", "override the configured target dialect (pcre2, ecma, dotnet, java, posix-bre, posix-ere, pcre1)")
	root.PersistentFlags().BoolVar(&flagRuntimeConfirm, "runtime-confirm", false, "allow redos to empirically confirm high-severity findings against regexp2")

	root.AddCommand(
		newParseCmd(),
		newValidateCmd(),
		newOptimizeCmd(),
		newExplainCmd(),
		newRedosCmd(),
		newLiteralsCmd(),
		newSolveCmd(),
		newVersionsCmd(),
		newBatchCmd(),
		newConfigCmd(),
	)
	return root
}

// loadConfiguration builds the Configuration every subcommand's facade is
// constructed from: config.Default() unless --config names a document,
// then --target-version and --runtime-confirm overlay on top.
func loadConfiguration() (config.Configuration, error) {
	cfg := config.Default()
	if flagConfigPath != "" {
		loader, err := config.NewLoader(flagConfigPath)
		if err != nil {
			return config.Configuration{}, err
		}
		cfg, err = loader.Load()
		if err != nil {
			return config.Configuration{}, err
		}
	}
	if flagTargetVersion != "" {
		v := pattern.Version(flagTargetVersion)
		if _, ok := pattern.Get(v); !ok {
			return config.Configuration{}, fmt.Errorf("unknown target version %q%s", flagTargetVersion, suggestVersion(flagTargetVersion))
		}
		cfg.TargetVersion = v
	}
	if flagRuntimeConfirm {
		cfg.RuntimePCREValidation = true
	}
	return cfg, nil
}

// suggestVersion fuzzy-matches bad against every registered target version
// name for a "did you mean" hint, the same technique internal/pattern uses
// for unrecognized flag letters.
func suggestVersion(bad string) string {
	var candidates []string
	for _, v := range pattern.List() {
		candidates = append(candidates, string(v))
	}
	ranks := fuzzy.RankFindFold(bad, candidates)
	if len(ranks) == 0 {
		return ""
	}
	return fmt.Sprintf(" (did you mean %q?)", ranks[0].Target)
}
