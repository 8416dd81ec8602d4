package ports

import "go.trai.ch/relo/internal/core/domain"

// ConfigLoader loads the bundle configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load walks up from cwd to the nearest relo.yaml and returns the fully
	// resolved workspace description.
	Load(cwd string) (*domain.Workspace, error)
}
