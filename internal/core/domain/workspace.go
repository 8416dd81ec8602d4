package domain

import "path/filepath"

// Workspace is the fully resolved description of one bundling run: where the
// build placed its binaries, which executables to start the closure from,
// and how references are classified and renamed. It is produced by the
// config loader and read-only afterwards.
type Workspace struct {
	// Root is the absolute workspace root directory.
	Root string

	// LibDir is the flat library output directory of the build. References
	// under it are workspace scope.
	LibDir string

	// BinDir is the directory containing the built root executables.
	BinDir string

	// IncludeDir is the header tree shipped alongside the libraries. It is
	// copied into the bundle verbatim when it exists; a workspace without
	// one is fine.
	IncludeDir string

	// OutputDir is the absolute destination directory of the bundle.
	OutputDir string

	// Executables are the root executable names, relative to BinDir.
	Executables []string

	// ForeignPrefixes are the machine-local path prefixes whose references
	// are flagged as deployment risks rather than bundled or ignored.
	ForeignPrefixes []string

	// Naming is the family naming-convention table.
	Naming NamingTable

	// DeploymentTarget, when non-empty, is the minimum OS version every
	// copied binary must have been built against.
	DeploymentTarget string

	// Tools holds the external tool locations.
	Tools ToolPaths

	// ArchiveName, when non-empty, enables the archive stage and names the
	// zip file written next to the output directory.
	ArchiveName string

	// Checksum enables the checksum manifest stage.
	Checksum bool

	// SmokeTest runs each bundled executable with -version after patching.
	// Off by default: it requires a host that can execute the bundled
	// binaries.
	SmokeTest bool
}

// ToolPaths locates the external binary-inspection and patching tools.
// Configurable so tests and non-standard hosts can substitute them.
type ToolPaths struct {
	Otool           string
	InstallNameTool string
	Dsymutil        string
}

// DefaultToolPaths returns the standard macOS tool locations.
func DefaultToolPaths() ToolPaths {
	return ToolPaths{
		Otool:           "/usr/bin/otool",
		InstallNameTool: "/usr/bin/install_name_tool",
		Dsymutil:        "/usr/bin/dsymutil",
	}
}

// ExecutablePaths returns the absolute source path of every root executable.
func (w *Workspace) ExecutablePaths() []string {
	paths := make([]string, len(w.Executables))
	for i, name := range w.Executables {
		paths[i] = filepath.Join(w.BinDir, name)
	}
	return paths
}
