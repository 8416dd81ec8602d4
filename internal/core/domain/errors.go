package domain

import "go.trai.ch/zerr"

var (
	// ErrInspectionFailed is returned when a binary's dependency metadata
	// cannot be read. Fatal: the closure cannot be trusted to be complete.
	ErrInspectionFailed = zerr.New("failed to inspect binary dependencies")

	// ErrPatchFailed is returned when an identifier or reference rewrite
	// cannot be applied. Fatal: a half-relocated binary cannot load at all.
	ErrPatchFailed = zerr.New("failed to patch binary load commands")

	// ErrCopyFailed is returned when copying a binary or one of its version
	// siblings into the output directory fails.
	ErrCopyFailed = zerr.New("failed to copy file into bundle")

	// ErrSymbolCopyFailed is returned when a debug-symbol bundle cannot be
	// copied or generated. Non-fatal for the owning binary; logged only.
	ErrSymbolCopyFailed = zerr.New("failed to copy debug symbols")

	// ErrDeploymentTargetMismatch is returned when a copied binary was built
	// against a different minimum OS version than the bundle requires.
	ErrDeploymentTargetMismatch = zerr.New("deployment target mismatch")

	// ErrNoExecutables is returned when the configuration names no root
	// executables to bundle.
	ErrNoExecutables = zerr.New("no executables specified")

	// ErrExecutableNotFound is returned when a configured root executable
	// does not exist in the workspace bin directory.
	ErrExecutableNotFound = zerr.New("executable not found in workspace")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when no relo.yaml is found walking up
	// from the working directory.
	ErrConfigNotFound = zerr.New("could not find relo.yaml")

	// ErrWorkspaceNotFound is returned when the configured workspace lib
	// directory does not exist.
	ErrWorkspaceNotFound = zerr.New("workspace lib directory not found")

	// ErrSmokeTestFailed is returned when a bundled executable does not
	// run after patching.
	ErrSmokeTestFailed = zerr.New("bundled executable failed to run")

	// ErrBundleFailed wraps any fatal failure of the bundling run.
	ErrBundleFailed = zerr.New("bundle execution failed")

	// ErrArchiveFailed is returned when writing the output archive fails.
	ErrArchiveFailed = zerr.New("failed to write archive")

	// ErrManifestFailed is returned when the checksum manifest cannot be
	// produced.
	ErrManifestFailed = zerr.New("failed to write checksum manifest")
)
