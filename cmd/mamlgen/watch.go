package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"mamlgen/internal/logger"
	"mamlgen/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [module]",
		Short: "Regenerate help whenever the module or its doc file changes",
		Long: `Generate once, then watch the module's Go files and its documentation
file and regenerate after each burst of changes. A failing run is logged and
watching continues. Stop with Ctrl+C.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	addGenerateFlags(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := a.loadConfig(cmd, args)
		if err != nil {
			return err
		}
		defer logger.Close()

		root := cfg.Module
		if info, err := os.Stat(root); err == nil && !info.IsDir() {
			root = filepath.Dir(root)
		}

		gen := a.newGenerator(cfg)
		run := func(ctx context.Context) error {
			result, err := gen.Run(ctx)
			if err != nil {
				return err
			}
			printSummary(a.stdout, result)
			return nil
		}

		w, err := watch.New(watch.Config{
			Root:     root,
			Files:    []string{cfg.Doc},
			Debounce: cfg.Watch.Debounce,
			OnChange: func(ctx context.Context, changed []string) error {
				logger.Info("Regenerating", "changed", len(changed))
				return run(ctx)
			},
		})
		if err != nil {
			return err
		}

		if err := run(cmd.Context()); err != nil {
			logger.Error("Generation failed", "err", err)
		}
		fmt.Fprintf(a.stdout, "Watching %s for changes...\n", root)
		return w.Run(cmd.Context())
	}
	return cmd
}
