package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/0x4d5352/regexcore/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or watch a regexcore configuration document",
	}
	cmd.AddCommand(newConfigShowCmd(), newConfigWatchCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration (--config plus flag overlays)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfiguration()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "target_version = %s\nmax_pattern_length = %d\ndfa_state_limit = %d\ncache.kind = %s\n",
				cfg.TargetVersion, cfg.MaxPatternLength, cfg.DFAStateLimit, cfg.Cache.Kind)
			return nil
		},
	}
}

// newConfigWatchCmd exercises internal/config.Loader.Watch: it reloads and
// reprints the document every time --config's file changes on disk, until
// interrupted. A failed reload is reported but does not stop the watch, so
// an operator can see and fix a typo without restarting the process.
func newConfigWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch --config's file and reprint the configuration on every change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagConfigPath == "" {
				return fmt.Errorf("config watch requires --config")
			}
			loader, err := config.NewLoader(flagConfigPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			cfg, err := loader.Load()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s: target_version = %s\n", render(styleOK, "loaded"), flagConfigPath, cfg.TargetVersion)

			loader.Watch(func(cfg config.Configuration, err error) {
				if err != nil {
					fmt.Fprintf(out, "%s %s: %v\n", render(styleBad, "reload failed"), flagConfigPath, err)
					return
				}
				fmt.Fprintf(out, "%s %s: target_version = %s\n", render(styleOK, "reloaded"), flagConfigPath, cfg.TargetVersion)
			})

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			<-sig
			return nil
		},
	}
}
