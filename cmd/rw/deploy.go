package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/saminightshift/redwood/internal/config"
	"github.com/saminightshift/redwood/internal/deploy"
)

func deployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the built web side",
	}
	cmd.AddCommand(deployS3Cmd())
	return cmd
}

func deployS3Cmd() *cobra.Command {
	var (
		bucket  string
		region  string
		prefix  string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "s3",
		Short: "Upload web/dist to an S3 bucket",
		Long: `Upload the contents of web/dist to an S3 bucket.

Credentials are read from AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY.
Run rw build first.

Examples:
  rw deploy s3 --bucket my-site --region us-east-1
  rw deploy s3 --bucket my-site --region us-east-1 --prefix www/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeployS3(bucket, region, prefix, verbose)
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "", "Target bucket (required)")
	cmd.Flags().StringVar(&region, "region", "", "Bucket region (required)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix for uploaded objects")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print each uploaded object")
	cmd.MarkFlagRequired("bucket")
	cmd.MarkFlagRequired("region")

	return cmd
}

func runDeployS3(bucket, region, prefix string, verbose bool) error {
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

	opts := deploy.S3Options{
		Bucket: bucket,
		Region: region,
		Prefix: prefix,
	}
	if verbose {
		opts.OnUpload = func(key string) {
			info("↑ %s", key)
		}
	}

	start := time.Now()
	info("Deploying to s3://%s/%s", bucket, prefix)
	fmt.Println()

	uploaded, err := deploy.NewS3Deployer(paths, opts).Deploy(ctx)
	if err != nil {
		return err
	}

	fmt.Println()
	success("Uploaded %d objects in %s", uploaded, time.Since(start).Round(time.Millisecond))
	return nil
}
