// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/relo/internal/core/domain"
)

// DependencyLister reads the dependency metadata embedded in a binary.
//
//go:generate mockgen -source=inspector.go -destination=mocks/mock_inspector.go -package=mocks
type DependencyLister interface {
	// ListDependencies returns the binary's declared dependency references
	// in load-command order. When the binary is a library, the first entry
	// is its own install identifier. It returns ErrInspectionFailed if the
	// binary cannot be read or is not a recognized binary format.
	//
	// Pure query, no side effects.
	ListDependencies(ctx context.Context, binaryPath string) ([]domain.Reference, error)
}

// DeploymentReader reads the minimum OS version a binary was built against.
type DeploymentReader interface {
	// DeploymentTarget returns something like "11.0", or an empty string if
	// the binary carries no version load command.
	DeploymentTarget(ctx context.Context, binaryPath string) (string, error)
}
