package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/relo/internal/adapters/config"
	"go.trai.ch/relo/internal/core/domain"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(content), 0o600))
}

func makeDirs(t *testing.T, root string, dirs ...string) {
	t.Helper()
	for _, dir := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0o750))
	}
}

func TestLoad_Defaults(t *testing.T) {
	tmp := t.TempDir()
	makeDirs(t, tmp, "lib", "bin")
	writeConfig(t, tmp, `
version: "1"
executables:
  - ffmpeg
  - ffprobe
`)

	ws, err := config.NewLoader().Load(tmp)
	require.NoError(t, err)

	assert.Equal(t, tmp, ws.Root)
	assert.Equal(t, filepath.Join(tmp, "lib"), ws.LibDir)
	assert.Equal(t, filepath.Join(tmp, "bin"), ws.BinDir)
	assert.Equal(t, filepath.Join(tmp, "include"), ws.IncludeDir)
	assert.Equal(t, filepath.Join(tmp, "bundle"), ws.OutputDir)
	assert.Equal(t, []string{"ffmpeg", "ffprobe"}, ws.Executables)
	assert.Equal(t, []string{"/usr/local"}, ws.ForeignPrefixes)
	assert.Equal(t, domain.DefaultToolPaths(), ws.Tools)
	assert.True(t, ws.Checksum)
	assert.False(t, ws.SmokeTest)
	assert.Empty(t, ws.ArchiveName)
}

func TestLoad_FullConfig(t *testing.T) {
	tmp := t.TempDir()
	makeDirs(t, tmp, "build/lib", "build/bin")
	writeConfig(t, tmp, `
version: "1"
libDir: build/lib
binDir: build/bin
includeDir: build/include
output: dist
executables: [ffmpeg]
foreignPrefixes: [/opt/homebrew, /usr/local]
deploymentTarget: "11.0"
naming:
  - marker: libcustom
    family: libcustom
tools:
  otool: /opt/bin/otool
archive: ffmpeg-bundle.zip
checksum: false
smokeTest: true
`)

	ws, err := config.NewLoader().Load(tmp)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmp, "build", "lib"), ws.LibDir)
	assert.Equal(t, filepath.Join(tmp, "build", "bin"), ws.BinDir)
	assert.Equal(t, filepath.Join(tmp, "build", "include"), ws.IncludeDir)
	assert.Equal(t, filepath.Join(tmp, "dist"), ws.OutputDir)
	assert.Equal(t, []string{"/opt/homebrew", "/usr/local"}, ws.ForeignPrefixes)
	assert.Equal(t, "11.0", ws.DeploymentTarget)
	assert.Equal(t, "/opt/bin/otool", ws.Tools.Otool)
	assert.Equal(t, domain.DefaultToolPaths().InstallNameTool, ws.Tools.InstallNameTool)
	assert.Equal(t, "ffmpeg-bundle.zip", ws.ArchiveName)
	assert.False(t, ws.Checksum)
	assert.True(t, ws.SmokeTest)

	// File-defined naming rules come before the built-in table.
	assert.Equal(t, "libcustom", ws.Naming.FamilyOf("libcustom-1.2.dylib"))
	assert.Equal(t, "libSDL2", ws.Naming.FamilyOf("libSDL2-2.0.0.dylib"))
}

func TestLoad_UpwardDiscovery(t *testing.T) {
	tmp := t.TempDir()
	makeDirs(t, tmp, "lib", "bin", "sub/dir")
	writeConfig(t, tmp, `
executables: [tool]
`)

	ws, err := config.NewLoader().Load(filepath.Join(tmp, "sub", "dir"))
	require.NoError(t, err)
	assert.Equal(t, tmp, ws.Root)
}

func TestLoad_NotFound(t *testing.T) {
	tmp := t.TempDir()

	_, err := config.NewLoader().Load(tmp)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigNotFound)
}

func TestLoad_NoExecutables(t *testing.T) {
	tmp := t.TempDir()
	makeDirs(t, tmp, "lib", "bin")
	writeConfig(t, tmp, `
version: "1"
executables: []
`)

	_, err := config.NewLoader().Load(tmp)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoExecutables)
}

func TestLoad_MissingLibDir(t *testing.T) {
	tmp := t.TempDir()
	writeConfig(t, tmp, `
executables: [tool]
`)

	_, err := config.NewLoader().Load(tmp)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrWorkspaceNotFound)
}

func TestLoad_ParseFailure(t *testing.T) {
	tmp := t.TempDir()
	writeConfig(t, tmp, "executables: [unclosed\n")

	_, err := config.NewLoader().Load(tmp)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigParseFailed)
}
