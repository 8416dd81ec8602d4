// Package app implements the application layer for relo.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/relo/internal/adapters/archive"
	"go.trai.ch/relo/internal/adapters/dsym"
	"go.trai.ch/relo/internal/adapters/fs"
	"go.trai.ch/relo/internal/adapters/linear"
	"go.trai.ch/relo/internal/adapters/macho"
	"go.trai.ch/relo/internal/adapters/telemetry"
	"go.trai.ch/relo/internal/core/domain"
	"go.trai.ch/relo/internal/core/ports"
	"go.trai.ch/relo/internal/engine/closure"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Toolset groups the per-workspace tool adapters. The default set drives
// the real otool, install_name_tool, and dsymutil binaries.
type Toolset struct {
	Lister     ports.DependencyLister
	Deployment ports.DeploymentReader
	Relocator  ports.Relocator
	Symbols    ports.SymbolSource
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	toolsetFor   func(domain.ToolPaths) Toolset
	renderer     ports.Renderer
	reportOut    io.Writer
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, log ports.Logger) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		toolsetFor:   defaultToolset,
		reportOut:    os.Stdout,
	}
}

func defaultToolset(tools domain.ToolPaths) Toolset {
	lister := macho.NewLister(tools.Otool)
	return Toolset{
		Lister:     lister,
		Deployment: lister,
		Relocator:  macho.NewRelocator(tools.InstallNameTool),
		Symbols:    dsym.NewSource(tools.Dsymutil),
	}
}

// WithToolset overrides the tool adapter factory.
// This is primarily used for testing against fake tools.
func (a *App) WithToolset(fn func(domain.ToolPaths) Toolset) *App {
	a.toolsetFor = fn
	return a
}

// WithRenderer overrides the renderer.
// This is primarily used for testing to capture output.
func (a *App) WithRenderer(r ports.Renderer) *App {
	a.renderer = r
	return a
}

// WithReportWriter redirects the end-of-run report.
// This is primarily used for testing.
func (a *App) WithReportWriter(w io.Writer) *App {
	a.reportOut = w
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	SkipArchive  bool
	SkipChecksum bool
}

// Run bundles every configured executable with its transitive workspace
// libraries into the output directory, then writes the manifest and
// archive artifacts.
//
//nolint:cyclop // orchestration function
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	cwd, err := os.Getwd()
	if err != nil {
		return zerr.Wrap(err, "failed to determine working directory")
	}

	ws, err := a.configLoader.Load(cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	// The output directory is rebuilt from scratch on every run; stale
	// files from a previous bundle must never survive into a new one.
	if err := os.RemoveAll(ws.OutputDir); err != nil {
		return zerr.Wrap(err, domain.ErrCopyFailed.Error())
	}
	if err := os.MkdirAll(ws.OutputDir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrCopyFailed.Error())
	}

	renderer := a.renderer
	if renderer == nil {
		renderer = linear.NewRenderer(os.Stdout, os.Stderr)
	}

	// Bridge OTel spans to the renderer, so every bundling stage shows up
	// as it runs.
	bridge := telemetry.NewBridge(renderer)
	setupOTel(bridge)

	tracer := telemetry.NewOTelTracer("relo").WithRenderer(renderer)
	defer func() {
		_ = tracer.Shutdown(ctx)
	}()

	toolset := a.toolsetFor(ws.Tools)
	builder := closure.NewBuilder(
		toolset.Lister,
		toolset.Relocator,
		toolset.Symbols,
		closure.NewClassifier(ws.LibDir, ws.ForeignPrefixes),
		closure.NewResolver(ws.Naming),
		a.logger,
		ws.OutputDir,
	)

	g, ctx := errgroup.WithContext(ctx)

	// Renderer routine
	g.Go(func() error {
		if err := renderer.Start(ctx); err != nil {
			return err
		}
		return renderer.Wait()
	})

	// Bundling routine
	g.Go(func() error {
		defer func() {
			_ = renderer.Stop()
		}()

		if err := a.bundle(ctx, ws, builder, toolset, tracer, opts); err != nil {
			return errors.Join(domain.ErrBundleFailed, err)
		}
		return nil
	})

	runErr := g.Wait()

	if err := closure.WriteReport(a.reportOut, builder.Closure()); err != nil {
		return errors.Join(runErr, err)
	}
	return runErr
}

// bundle runs the traversal for every root executable and the post
// stages, each under its own span.
func (a *App) bundle(
	ctx context.Context,
	ws *domain.Workspace,
	builder *closure.Builder,
	toolset Toolset,
	tracer ports.Tracer,
	opts RunOptions,
) error {
	tracer.EmitPlan(ctx, ws.Executables)

	for _, name := range ws.Executables {
		exePath := filepath.Join(ws.BinDir, name)
		if _, err := os.Stat(exePath); err != nil {
			wrapped := zerr.Wrap(err, domain.ErrExecutableNotFound.Error())
			return zerr.With(wrapped, "executable", name)
		}

		spanCtx, span := tracer.Start(ctx, name)
		builder.WithOutput(span)
		if err := builder.Bundle(spanCtx, exePath); err != nil {
			span.RecordError(err)
			span.End()
			return err
		}
		span.SetAttribute("copied_total", builder.Closure().CopiedCount())

		if ws.SmokeTest {
			if err := a.smokeTest(spanCtx, ws, name, span); err != nil {
				span.RecordError(err)
				span.End()
				return err
			}
		}
		span.End()
	}

	if err := a.copyHeaders(ctx, ws, tracer); err != nil {
		return err
	}

	if ws.DeploymentTarget != "" {
		if err := a.verifyDeploymentTarget(ctx, ws, builder, toolset, tracer); err != nil {
			return err
		}
	}

	if ws.Checksum && !opts.SkipChecksum {
		spanCtx, span := tracer.Start(ctx, "checksum")
		if err := archive.WriteManifest(spanCtx, ws.OutputDir); err != nil {
			span.RecordError(err)
			span.End()
			return err
		}
		span.End()
	}

	if ws.ArchiveName != "" && !opts.SkipArchive {
		_, span := tracer.Start(ctx, "archive")
		zipPath := filepath.Join(filepath.Dir(ws.OutputDir), ws.ArchiveName)
		if err := archive.CreateZip(ws.OutputDir, zipPath); err != nil {
			span.RecordError(err)
			span.End()
			return err
		}
		span.SetAttribute("archive", zipPath)
		span.End()
	}

	return nil
}

// smokeTest runs the freshly bundled executable with -version to prove
// it still loads its libraries after patching.
func (a *App) smokeTest(ctx context.Context, ws *domain.Workspace, name string, out io.Writer) error {
	bundled := filepath.Join(ws.OutputDir, name)
	// #nosec G204 -- bundled is derived from the workspace configuration
	cmd := exec.CommandContext(ctx, bundled, "-version")
	output, err := cmd.CombinedOutput()
	if len(output) > 0 {
		_, _ = out.Write(output)
	}
	if err != nil {
		wrapped := zerr.Wrap(err, domain.ErrSmokeTestFailed.Error())
		return zerr.With(wrapped, "executable", name)
	}
	return nil
}

// copyHeaders mirrors the workspace header tree into the bundle. A
// workspace without one is a no-op.
func (a *App) copyHeaders(ctx context.Context, ws *domain.Workspace, tracer ports.Tracer) error {
	info, err := os.Stat(ws.IncludeDir)
	if err != nil || !info.IsDir() {
		return nil
	}

	_, span := tracer.Start(ctx, "headers")
	defer span.End()

	dest := filepath.Join(ws.OutputDir, filepath.Base(ws.IncludeDir))
	if err := fs.CopyTree(ws.IncludeDir, dest, true); err != nil {
		wrapped := zerr.Wrap(err, domain.ErrCopyFailed.Error())
		wrapped = zerr.With(wrapped, "include_dir", ws.IncludeDir)
		span.RecordError(wrapped)
		return wrapped
	}
	span.SetAttribute("headers", dest)
	return nil
}

// verifyDeploymentTarget checks that every copied real file was built
// against the configured minimum OS version.
func (a *App) verifyDeploymentTarget(
	ctx context.Context,
	ws *domain.Workspace,
	builder *closure.Builder,
	toolset Toolset,
	tracer ports.Tracer,
) error {
	spanCtx, span := tracer.Start(ctx, "verify")
	defer span.End()

	for _, path := range builder.Closure().Copied() {
		if !strings.HasPrefix(path, ws.OutputDir+string(filepath.Separator)) {
			continue
		}
		info, err := os.Lstat(path)
		if err != nil || info.Mode()&os.ModeSymlink != 0 {
			continue
		}

		target, err := toolset.Deployment.DeploymentTarget(spanCtx, path)
		if err != nil {
			span.RecordError(err)
			return err
		}
		if target != "" && target != ws.DeploymentTarget {
			err := zerr.With(domain.ErrDeploymentTargetMismatch, "binary", filepath.Base(path))
			err = zerr.With(err, "want", ws.DeploymentTarget)
			err = zerr.With(err, "got", target)
			span.RecordError(err)
			return err
		}
	}
	return nil
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	Archive bool
}

// Clean removes the bundle output directory and, optionally, the archive.
func (a *App) Clean(_ context.Context, options CleanOptions) error {
	cwd, err := os.Getwd()
	if err != nil {
		return zerr.Wrap(err, "failed to determine working directory")
	}

	ws, err := a.configLoader.Load(cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	var errs error

	remove := func(path string, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.Wrap(err, fmt.Sprintf("failed to remove %s", name)))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	remove(ws.OutputDir, "bundle output")

	if options.Archive && ws.ArchiveName != "" {
		remove(filepath.Join(filepath.Dir(ws.OutputDir), ws.ArchiveName), "archive")
	}

	return errs
}

// setupOTel configures the OpenTelemetry SDK with the renderer bridge.
func setupOTel(bridge *telemetry.Bridge) {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bridge),
	)
	otel.SetTracerProvider(tp)
}
