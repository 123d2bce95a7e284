package deploy

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/saminightshift/redwood/internal/config"
	"github.com/saminightshift/redwood/internal/errors"
)

// S3Options configures an S3 deploy.
type S3Options struct {
	Bucket string
	Region string

	// Prefix is prepended to every object key, e.g. "site/".
	Prefix string

	// OnUpload is called with each object key as it is uploaded.
	OnUpload func(key string)
}

// S3Deployer uploads web/dist to an S3 bucket.
type S3Deployer struct {
	client *s3.Client
	paths  *config.Paths
	opts   S3Options
}

// NewS3Deployer creates a deployer using credentials from the environment
// (AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY, optionally AWS_SESSION_TOKEN).
func NewS3Deployer(paths *config.Paths, opts S3Options) *S3Deployer {
	cfg := aws.Config{
		Region: opts.Region,
		Credentials: aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
			key := os.Getenv("AWS_ACCESS_KEY_ID")
			secret := os.Getenv("AWS_SECRET_ACCESS_KEY")
			if key == "" || secret == "" {
				return aws.Credentials{}, fmt.Errorf("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set")
			}
			return aws.Credentials{
				AccessKeyID:     key,
				SecretAccessKey: secret,
				SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
			}, nil
		}),
	}
	return &S3Deployer{
		client: s3.NewFromConfig(cfg),
		paths:  paths,
		opts:   opts,
	}
}

// Deploy walks web/dist and uploads every file. It returns the number of
// objects uploaded.
func (d *S3Deployer) Deploy(ctx context.Context) (int, error) {
	dist := d.paths.Web.Dist
	if info, err := os.Stat(dist); err != nil || !info.IsDir() {
		return 0, errors.New("E401")
	}

	uploaded := 0
	err := filepath.WalkDir(dist, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dist, path)
		if err != nil {
			return err
		}
		key := d.opts.Prefix + filepath.ToSlash(rel)

		if err := d.putFile(ctx, key, path); err != nil {
			return errors.FromError(err, "E402").
				WithDetail(fmt.Sprintf("Uploading %s to s3://%s/%s failed.", rel, d.opts.Bucket, key))
		}

		uploaded++
		if d.opts.OnUpload != nil {
			d.opts.OnUpload(key)
		}
		return nil
	})
	if err != nil {
		return uploaded, err
	}
	return uploaded, nil
}

func (d *S3Deployer) putFile(ctx context.Context, key, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	_, err = d.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(d.opts.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(ContentType(path)),
	})
	return err
}

// contentTypes maps file extensions to MIME types for static hosting.
var contentTypes = map[string]string{
	".html":  "text/html; charset=utf-8",
	".css":   "text/css; charset=utf-8",
	".js":    "text/javascript; charset=utf-8",
	".mjs":   "text/javascript; charset=utf-8",
	".json":  "application/json",
	".svg":   "image/svg+xml",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".gif":   "image/gif",
	".webp":  "image/webp",
	".ico":   "image/x-icon",
	".txt":   "text/plain; charset=utf-8",
	".map":   "application/json",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".ttf":   "font/ttf",
	".wasm":  "application/wasm",
}

// ContentType returns the MIME type to serve a file as, based on its
// extension. Unknown extensions fall back to application/octet-stream.
func ContentType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}
