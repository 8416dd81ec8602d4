package ports

import (
	"context"

	"go.trai.ch/relo/internal/core/domain"
)

// Relocator patches a binary's load commands in place.
//
//go:generate mockgen -source=relocator.go -destination=mocks/mock_relocator.go -package=mocks
type Relocator interface {
	// Rewrite sets the binary's own runtime identifier to selfID (skipped
	// when selfID is empty, as executables carry no identifier) and applies
	// every reference change. The new strings are always loader-relative;
	// absolute output-directory paths must never be written.
	//
	// Atomic from the caller's perspective: the first failed change returns
	// ErrPatchFailed and the run must abort, since a partially relocated
	// binary cannot load at all.
	Rewrite(ctx context.Context, binaryPath, selfID string, changes []domain.Rewrite) error
}
