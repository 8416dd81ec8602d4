package ports

import "context"

// SymbolSource guarantees a debug-symbol bundle for a binary and places it
// next to the binary's copy.
//
//go:generate mockgen -source=symbols.go -destination=mocks/mock_symbols.go -package=mocks
type SymbolSource interface {
	// CopyFor copies the pre-existing symbol bundle paired with binaryPath
	// into destDir, or generates one there if none exists. With overwrite
	// set, an existing destination bundle is replaced; otherwise it is kept.
	//
	// Failure is non-fatal for the owning binary: callers log it and ship
	// the binary without symbols.
	CopyFor(ctx context.Context, binaryPath, destDir string, overwrite bool) error
}
