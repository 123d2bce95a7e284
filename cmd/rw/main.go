package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/saminightshift/redwood/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┬─┐┌─┐┌┬┐┬ ┬┌─┐┌─┐┌┬┐
  ├┬┘├┤  │││││││ ││ ││
  ┴└─└─┘─┴┘└┴┘└─┘└─┘─┴┘
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "rw",
		Short: "Build tooling for Redwood web sides",
		Long: `rw transforms a Redwood web side for deployment.

It rewrites the route declarations in web/src/Routes.js into the form the
target build needs, lowers JSX to plain function calls, and ships the
result:

  • Code-split route loading for browser builds
  • Eager, synchronous page resolution for prerendering
  • A dev server with rebuild-on-change and live reload
  • Static deploys to S3`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		prebuildCmd(),
		buildCmd(),
		devCmd(),
		deployCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

// printBanner prints the ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
