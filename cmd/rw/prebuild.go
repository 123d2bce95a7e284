package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/saminightshift/redwood/pkg/prebuild"
)

func prebuildCmd() *cobra.Command {
	var (
		prerender       bool
		jest            bool
		noStaticImports bool
		toStdout        bool
		output          string
	)

	cmd := &cobra.Command{
		Use:   "prebuild <routes-file>",
		Short: "Rewrite a routes file for the target build",
		Long: `Rewrite the route declarations in a Routes file.

For browser builds every page referenced by a <Route> gets a code-split
loader object. With --prerender the loader resolves pages synchronously
instead, so server-side rendering never suspends.

Examples:
  rw prebuild web/src/Routes.js
  rw prebuild web/src/Routes.js --prerender
  rw prebuild web/src/Routes.js --prerender --stdout`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrebuild(args[0], output, prebuild.Options{
				ForPrerender:    prerender,
				ForJest:         jest,
				NoStaticImports: noStaticImports,
			}, toStdout)
		},
	}

	cmd.Flags().BoolVar(&prerender, "prerender", false, "Generate the eager prerender form")
	cmd.Flags().BoolVar(&jest, "jest", false, "Skip page existence checks (test environments)")
	cmd.Flags().BoolVar(&noStaticImports, "no-static-imports", false, "Disable eager page imports in prerender output")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Print the result instead of writing a file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: <routes-file>.out.js)")

	return cmd
}

func runPrebuild(path, output string, opts prebuild.Options, toStdout bool) error {
	res, err := prebuild.PrebuildWebFile(path, opts)
	if err != nil {
		return err
	}
	if res == nil {
		return fmt.Errorf("%s is not the project routes file", path)
	}

	if toStdout {
		fmt.Print(res.Code)
		return nil
	}

	if output == "" {
		output = path + ".out.js"
	}
	if err := os.WriteFile(output, []byte(res.Code), 0644); err != nil {
		return err
	}
	success("Wrote %s", output)
	return nil
}
