package macho

import (
	"context"

	"go.trai.ch/relo/internal/core/domain"
	"go.trai.ch/zerr"
)

// Relocator rewrites install names inside Mach-O binaries with
// install_name_tool. It implements ports.Relocator.
type Relocator struct {
	toolPath string
}

// NewRelocator creates a Relocator driving the install_name_tool binary
// at the given path.
func NewRelocator(toolPath string) *Relocator {
	return &Relocator{toolPath: toolPath}
}

// Rewrite sets the binary's own install name to selfID (when non-empty)
// and rewrites each dependency reference in changes. It stops at the
// first failing invocation so a partially patched binary is reported
// rather than silently shipped.
func (r *Relocator) Rewrite(ctx context.Context, binaryPath, selfID string, changes []domain.Rewrite) error {
	if selfID != "" {
		if _, err := runTool(ctx, r.toolPath, "-id", selfID, binaryPath); err != nil {
			return r.patchError(err, binaryPath, "identifier", selfID)
		}
	}

	for _, change := range changes {
		_, err := runTool(ctx, r.toolPath, "-change", change.Old, change.New, binaryPath)
		if err != nil {
			return r.patchError(err, binaryPath, "reference", change.Old)
		}
	}

	return nil
}

func (r *Relocator) patchError(err error, binaryPath, kind, value string) error {
	wrapped := zerr.Wrap(err, domain.ErrPatchFailed.Error())
	wrapped = zerr.With(wrapped, "binary", binaryPath)
	return zerr.With(wrapped, kind, value)
}
