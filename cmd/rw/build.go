package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/saminightshift/redwood/internal/build"
	"github.com/saminightshift/redwood/internal/config"
)

func buildCmd() *cobra.Command {
	var (
		prerender       bool
		noStaticImports bool
		clean           bool
		stats           bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the web side for deployment",
		Long: `Build the web side into web/dist.

This command:
  • Rewrites web/src/Routes.js with per-page loaders
  • Lowers JSX in .js and .jsx sources to plain function calls
  • Copies everything else as-is

Examples:
  rw build
  rw build --prerender
  rw build --clean --stats`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(build.Options{
				Prerender:       prerender,
				NoStaticImports: noStaticImports,
				Clean:           clean,
				OnProgress: func(step string) {
					info(step)
				},
			}, stats)
		},
	}

	cmd.Flags().BoolVar(&prerender, "prerender", false, "Generate the eager prerender form of the routes file")
	cmd.Flags().BoolVar(&noStaticImports, "no-static-imports", false, "Disable eager page imports in prerender output")
	cmd.Flags().BoolVar(&clean, "clean", true, "Clean web/dist before building")
	cmd.Flags().BoolVar(&stats, "stats", false, "Print per-build statistics")

	return cmd
}

func runBuild(opts build.Options, stats bool) error {
	paths, err := config.PathsFromDir(".")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	result, err := build.New(paths, opts).Build(ctx)
	if err != nil {
		return err
	}

	fmt.Println()
	success("Build complete in %s", result.Duration.Round(time.Millisecond))
	if !result.RoutesPrebuilt {
		warn("No routes file found under web/src")
	}
	if stats {
		fmt.Println()
		info("Output:      %s", result.OutputDir)
		info("Files:       %d", result.Files)
		info("Transformed: %d", result.Transformed)
	}
	return nil
}
