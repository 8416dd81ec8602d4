package app_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/relo/internal/adapters/config"
	"go.trai.ch/relo/internal/adapters/linear"
	"go.trai.ch/relo/internal/app"
	"go.trai.ch/relo/internal/core/domain"
	"go.trai.ch/relo/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// chdir switches into dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = os.Chdir(cwd)
	})
	require.NoError(t, os.Chdir(dir))
}

// setupWorkspace builds a minimal on-disk workspace: one executable
// depending on one workspace library plus a system library.
func setupWorkspace(t *testing.T, extraConfig string) (root string, exePath, libPath string) {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(root, "lib"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "bin"), 0o750))

	libPath = filepath.Join(root, "lib", "libA.dylib")
	require.NoError(t, os.WriteFile(libPath, []byte("machO libA"), 0o644))
	exePath = filepath.Join(root, "bin", "app")
	require.NoError(t, os.WriteFile(exePath, []byte("machO app"), 0o755))

	cfg := "version: \"1\"\nexecutables: [app]\n" + extraConfig
	require.NoError(t, os.WriteFile(filepath.Join(root, domain.ConfigFileName), []byte(cfg), 0o600))
	return root, exePath, libPath
}

// fakeToolset wires mock tool adapters around a fake dependency graph.
func fakeToolset(t *testing.T, deps map[string][]domain.Reference, target string) app.Toolset {
	t.Helper()
	ctrl := gomock.NewController(t)

	lister := mocks.NewMockDependencyLister(ctrl)
	lister.EXPECT().ListDependencies(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, path string) ([]domain.Reference, error) {
			return deps[path], nil
		},
	).AnyTimes()

	relocator := mocks.NewMockRelocator(ctrl)
	relocator.EXPECT().Rewrite(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	symbols := mocks.NewMockSymbolSource(ctrl)
	symbols.EXPECT().CopyFor(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	deployment := mocks.NewMockDeploymentReader(ctrl)
	deployment.EXPECT().DeploymentTarget(gomock.Any(), gomock.Any()).Return(target, nil).AnyTimes()

	return app.Toolset{
		Lister:     lister,
		Deployment: deployment,
		Relocator:  relocator,
		Symbols:    symbols,
	}
}

func newTestLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()
	return logger
}

// newRealLoader returns the actual config adapter: the workspace for
// these tests lives on disk, so mocking the loader would only duplicate
// its resolution logic.
func newRealLoader(t *testing.T) *config.Loader {
	t.Helper()
	return config.NewLoader()
}

func TestRun_BundlesWorkspace(t *testing.T) {
	root, exePath, libPath := setupWorkspace(t, "archive: bundle.zip\n")
	chdir(t, root)

	deps := map[string][]domain.Reference{
		exePath: {domain.Reference(libPath), "/usr/lib/libSystem.B.dylib"},
		libPath: {domain.Reference(libPath), "/usr/lib/libSystem.B.dylib"},
	}

	var report bytes.Buffer
	loader := newRealLoader(t)
	a := app.New(loader, newTestLogger(t)).
		WithToolset(func(domain.ToolPaths) app.Toolset { return fakeToolset(t, deps, "") }).
		WithRenderer(linear.NewRenderer(&bytes.Buffer{}, &bytes.Buffer{})).
		WithReportWriter(&report)

	require.NoError(t, a.Run(context.Background(), app.RunOptions{}))

	bundleDir := filepath.Join(root, "bundle")
	assert.FileExists(t, filepath.Join(bundleDir, "app"))
	assert.FileExists(t, filepath.Join(bundleDir, "libA.dylib"))
	assert.FileExists(t, filepath.Join(bundleDir, domain.ManifestFileName))
	assert.FileExists(t, filepath.Join(root, "bundle.zip"))

	out := report.String()
	assert.Contains(t, out, "[NOTE] skipped /usr/lib/libSystem.B.dylib")
	assert.Contains(t, out, "Copied "+libPath)
}

func TestRun_SkipFlags(t *testing.T) {
	root, exePath, _ := setupWorkspace(t, "archive: bundle.zip\n")
	chdir(t, root)

	deps := map[string][]domain.Reference{
		exePath: {"/usr/lib/libSystem.B.dylib"},
	}

	a := app.New(newRealLoader(t), newTestLogger(t)).
		WithToolset(func(domain.ToolPaths) app.Toolset { return fakeToolset(t, deps, "") }).
		WithRenderer(linear.NewRenderer(&bytes.Buffer{}, &bytes.Buffer{})).
		WithReportWriter(&bytes.Buffer{})

	require.NoError(t, a.Run(context.Background(), app.RunOptions{SkipArchive: true, SkipChecksum: true}))

	assert.NoFileExists(t, filepath.Join(root, "bundle", domain.ManifestFileName))
	assert.NoFileExists(t, filepath.Join(root, "bundle.zip"))
}

func TestRun_CopiesHeaderTree(t *testing.T) {
	root, exePath, _ := setupWorkspace(t, "")
	headerPath := filepath.Join(root, "include", "libav", "avcodec.h")
	require.NoError(t, os.MkdirAll(filepath.Dir(headerPath), 0o750))
	require.NoError(t, os.WriteFile(headerPath, []byte("#pragma once\n"), 0o644))
	chdir(t, root)

	deps := map[string][]domain.Reference{
		exePath: {"/usr/lib/libSystem.B.dylib"},
	}

	a := app.New(newRealLoader(t), newTestLogger(t)).
		WithToolset(func(domain.ToolPaths) app.Toolset { return fakeToolset(t, deps, "") }).
		WithRenderer(linear.NewRenderer(&bytes.Buffer{}, &bytes.Buffer{})).
		WithReportWriter(&bytes.Buffer{})

	require.NoError(t, a.Run(context.Background(), app.RunOptions{}))

	assert.FileExists(t, filepath.Join(root, "bundle", "include", "libav", "avcodec.h"))

	// The manifest covers the top-level artifacts only; the header tree
	// stays out of it.
	manifest, err := os.ReadFile(filepath.Join(root, "bundle", domain.ManifestFileName))
	require.NoError(t, err)
	assert.NotContains(t, string(manifest), "avcodec.h")
}

func TestRun_SmokeTest(t *testing.T) {
	root, exePath, _ := setupWorkspace(t, "smokeTest: true\n")
	require.NoError(t, os.WriteFile(exePath, []byte("#!/bin/sh\necho app version 1.0\n"), 0o755))
	chdir(t, root)

	deps := map[string][]domain.Reference{
		exePath: {"/usr/lib/libSystem.B.dylib"},
	}

	a := app.New(newRealLoader(t), newTestLogger(t)).
		WithToolset(func(domain.ToolPaths) app.Toolset { return fakeToolset(t, deps, "") }).
		WithRenderer(linear.NewRenderer(&bytes.Buffer{}, &bytes.Buffer{})).
		WithReportWriter(&bytes.Buffer{})

	require.NoError(t, a.Run(context.Background(), app.RunOptions{}))
}

func TestRun_SmokeTestFailure(t *testing.T) {
	root, exePath, _ := setupWorkspace(t, "smokeTest: true\n")
	require.NoError(t, os.WriteFile(exePath, []byte("#!/bin/sh\nexit 1\n"), 0o755))
	chdir(t, root)

	deps := map[string][]domain.Reference{
		exePath: {"/usr/lib/libSystem.B.dylib"},
	}

	a := app.New(newRealLoader(t), newTestLogger(t)).
		WithToolset(func(domain.ToolPaths) app.Toolset { return fakeToolset(t, deps, "") }).
		WithRenderer(linear.NewRenderer(&bytes.Buffer{}, &bytes.Buffer{})).
		WithReportWriter(&bytes.Buffer{})

	err := a.Run(context.Background(), app.RunOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSmokeTestFailed)
}

func TestRun_ExecutableMissing(t *testing.T) {
	root, _, _ := setupWorkspace(t, "")
	require.NoError(t, os.Remove(filepath.Join(root, "bin", "app")))
	chdir(t, root)

	a := app.New(newRealLoader(t), newTestLogger(t)).
		WithToolset(func(domain.ToolPaths) app.Toolset { return fakeToolset(t, nil, "") }).
		WithRenderer(linear.NewRenderer(&bytes.Buffer{}, &bytes.Buffer{})).
		WithReportWriter(&bytes.Buffer{})

	err := a.Run(context.Background(), app.RunOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBundleFailed)
	assert.ErrorIs(t, err, domain.ErrExecutableNotFound)
}

func TestRun_DeploymentTargetMismatch(t *testing.T) {
	root, exePath, _ := setupWorkspace(t, "deploymentTarget: \"11.0\"\n")
	chdir(t, root)

	deps := map[string][]domain.Reference{
		exePath: {"/usr/lib/libSystem.B.dylib"},
	}

	a := app.New(newRealLoader(t), newTestLogger(t)).
		WithToolset(func(domain.ToolPaths) app.Toolset { return fakeToolset(t, deps, "10.13") }).
		WithRenderer(linear.NewRenderer(&bytes.Buffer{}, &bytes.Buffer{})).
		WithReportWriter(&bytes.Buffer{})

	err := a.Run(context.Background(), app.RunOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDeploymentTargetMismatch)
}

func TestRun_ConfigNotFound(t *testing.T) {
	empty, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	chdir(t, empty)

	a := app.New(newRealLoader(t), newTestLogger(t))

	runErr := a.Run(context.Background(), app.RunOptions{})
	require.Error(t, runErr)
	assert.ErrorIs(t, runErr, domain.ErrConfigNotFound)
}

func TestClean(t *testing.T) {
	root, _, _ := setupWorkspace(t, "archive: bundle.zip\n")
	chdir(t, root)

	bundleDir := filepath.Join(root, "bundle")
	require.NoError(t, os.MkdirAll(bundleDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "bundle.zip"), []byte("zip"), 0o644))

	a := app.New(newRealLoader(t), newTestLogger(t))

	require.NoError(t, a.Clean(context.Background(), app.CleanOptions{Archive: true}))
	assert.NoDirExists(t, bundleDir)
	assert.NoFileExists(t, filepath.Join(root, "bundle.zip"))
}
