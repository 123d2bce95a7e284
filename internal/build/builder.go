package build

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/saminightshift/redwood/internal/config"
	"github.com/saminightshift/redwood/internal/errors"
	"github.com/saminightshift/redwood/pkg/prebuild"
)

// tracerName identifies build spans.
const tracerName = "redwood/build"

// transformableExtensions are the source files run through the JSX
// transformer. Everything else under web/src is copied as-is.
var transformableExtensions = map[string]bool{
	".js":  true,
	".jsx": true,
}

// Result contains the build output.
type Result struct {
	// Duration is how long the build took.
	Duration time.Duration

	// Files is the number of files written to the output directory.
	Files int

	// Transformed is the number of files rewritten by the transform.
	Transformed int

	// RoutesPrebuilt reports whether the routes file was found and
	// rewritten.
	RoutesPrebuilt bool

	// OutputDir is the directory the build was written to.
	OutputDir string
}

// Options configures the builder.
type Options struct {
	// Prerender generates the eager, synchronous page-resolution form of
	// the routes file instead of the code-split form.
	Prerender bool

	// NoStaticImports disables eager page imports in prerender output.
	NoStaticImports bool

	// Clean removes the output directory before building.
	Clean bool

	// OnProgress is called with progress updates.
	OnProgress func(step string)
}

// Builder handles web-side builds.
type Builder struct {
	paths   *config.Paths
	options Options
}

// New creates a new builder for the project described by paths.
func New(paths *config.Paths, options Options) *Builder {
	return &Builder{
		paths:   paths,
		options: options,
	}
}

// Build transforms web/src into web/dist.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	start := time.Now()

	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "build",
		trace.WithAttributes(
			attribute.Bool("prerender", b.options.Prerender),
			attribute.String("src", b.paths.Web.Src),
		))
	defer span.End()

	result := &Result{OutputDir: b.paths.Web.Dist}

	if b.options.Clean {
		b.progress("Cleaning " + b.paths.Web.Dist)
		if err := os.RemoveAll(b.paths.Web.Dist); err != nil {
			return nil, b.fail(span, errors.Newf(errors.CategoryCompile, "cleaning output: %v", err))
		}
	}
	if err := os.MkdirAll(b.paths.Web.Dist, 0755); err != nil {
		return nil, b.fail(span, errors.Newf(errors.CategoryCompile, "creating output: %v", err))
	}

	b.progress("Transforming web side...")
	err := filepath.WalkDir(b.paths.Web.Src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		return b.buildFile(ctx, path, result)
	})
	if err != nil {
		return nil, b.fail(span, err)
	}

	result.Duration = time.Since(start)
	span.SetAttributes(
		attribute.Int("files", result.Files),
		attribute.Int("transformed", result.Transformed),
	)
	return result, nil
}

// buildFile transforms or copies a single source file into the output tree.
func (b *Builder) buildFile(ctx context.Context, path string, result *Result) error {
	relPath, err := filepath.Rel(b.paths.Web.Src, path)
	if err != nil {
		return err
	}
	outPath := filepath.Join(b.paths.Web.Dist, relPath)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return err
	}

	tracer := otel.Tracer(tracerName)
	_, span := tracer.Start(ctx, "transform",
		trace.WithAttributes(attribute.String("file", relPath)))
	defer span.End()

	// The routes file goes through the import/loader synthesizer.
	res, err := prebuild.PrebuildWebFileWithPaths(path, b.paths, prebuild.Options{
		ForPrerender:    b.options.Prerender,
		NoStaticImports: b.options.NoStaticImports,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "prebuild failed")
		return err
	}
	if res != nil {
		result.RoutesPrebuilt = true
		result.Transformed++
		result.Files++
		return os.WriteFile(outPath, []byte(res.Code), 0644)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if transformableExtensions[strings.ToLower(filepath.Ext(path))] {
		code, err := prebuild.TransformJSX(source)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "transform failed")
			return err
		}
		if len(code) != len(source) || string(code) != string(source) {
			result.Transformed++
		}
		result.Files++
		return os.WriteFile(outPath, code, 0644)
	}

	result.Files++
	return os.WriteFile(outPath, source, 0644)
}

// progress reports a build step.
func (b *Builder) progress(step string) {
	if b.options.OnProgress != nil {
		b.options.OnProgress(step)
	}
}

// fail records the error on the build span before returning it.
func (b *Builder) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
