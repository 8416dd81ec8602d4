package macho

import (
	"context"
	"strings"

	"go.trai.ch/relo/internal/core/domain"
	"go.trai.ch/zerr"
)

// Lister reads load commands out of Mach-O binaries with otool. It
// implements both ports.DependencyLister and ports.DeploymentReader.
type Lister struct {
	otoolPath string
}

// NewLister creates a Lister driving the otool binary at the given path.
func NewLister(otoolPath string) *Lister {
	return &Lister{otoolPath: otoolPath}
}

// ListDependencies returns every shared-library reference recorded in the
// binary's load commands, in load order. For a dylib the first entry is
// the library's own install name.
func (l *Lister) ListDependencies(ctx context.Context, binaryPath string) ([]domain.Reference, error) {
	out, err := runTool(ctx, l.otoolPath, "-L", binaryPath)
	if err != nil {
		wrapped := zerr.Wrap(err, domain.ErrInspectionFailed.Error())
		return nil, zerr.With(wrapped, "binary", binaryPath)
	}
	return parseDependencies(out), nil
}

// parseDependencies extracts the library paths from `otool -L` output.
// The first line names the inspected file and is skipped; every following
// line holds one indented entry of the form
//
//	/path/to/lib.dylib (compatibility version 1.0.0, current version 1.2.3)
func parseDependencies(out string) []domain.Reference {
	var refs []domain.Reference
	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, "\t") {
			continue
		}
		entry := strings.TrimSpace(line)
		if i := strings.Index(entry, " (compatibility"); i >= 0 {
			entry = entry[:i]
		}
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		refs = append(refs, domain.Reference(entry))
	}
	return refs
}

// DeploymentTarget returns the minimum macOS version the binary was built
// for, read from its LC_BUILD_VERSION or LC_VERSION_MIN_MACOSX load
// command. The empty string means the binary carries neither command.
func (l *Lister) DeploymentTarget(ctx context.Context, binaryPath string) (string, error) {
	out, err := runTool(ctx, l.otoolPath, "-l", binaryPath)
	if err != nil {
		wrapped := zerr.Wrap(err, domain.ErrInspectionFailed.Error())
		return "", zerr.With(wrapped, "binary", binaryPath)
	}
	return parseDeploymentTarget(out), nil
}

func parseDeploymentTarget(out string) string {
	const (
		cmdBuildVersion = "LC_BUILD_VERSION"
		cmdVersionMin   = "LC_VERSION_MIN_MACOSX"
	)

	var current string
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 2 && fields[0] == "cmd" {
			current = fields[1]
			continue
		}
		if len(fields) != 2 {
			continue
		}
		switch {
		case current == cmdBuildVersion && fields[0] == "minos":
			return fields[1]
		case current == cmdVersionMin && fields[0] == "version":
			return fields[1]
		}
	}
	return ""
}
