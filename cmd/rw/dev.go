package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/saminightshift/redwood/internal/config"
	"github.com/saminightshift/redwood/internal/dev"
)

func devCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Start the development server",
		Long: `Start the development server.

Builds the web side, serves web/dist, and rebuilds on change. Connected
browsers reload over WebSocket; build metrics are exposed on /metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDev(port)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from redwood.toml)")

	return cmd
}

func runDev(port int) error {
	cfg, err := config.LoadFromDir(".")
	if err != nil {
		return err
	}
	if port != 0 {
		cfg.Web.Port = port
	}

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
		fmt.Println()
		info("Shutting down...")
		cancel()
	}()

	printBanner()
	fmt.Println()
	success("Dev server on http://%s:%d", cfg.Web.Host, cfg.Web.Port)
	info("Watching %s", paths.Web.Src)
	fmt.Println()

	server := dev.NewServer(cfg, paths)
	server.OnRebuild = func(err error) {
		if err != nil {
			warn("Rebuild failed: %s", err)
			return
		}
		success("Rebuilt")
	}
	return server.Run(ctx)
}
