// Package config provides the configuration loader for relo.
package config

import (
	"os"
	"path/filepath"

	"go.trai.ch/relo/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load walks upward from cwd until it finds a relo.yaml and resolves it
// into a fully defaulted workspace description.
func (l *Loader) Load(cwd string) (*domain.Workspace, error) {
	configPath, err := l.findConfiguration(cwd)
	if err != nil {
		return nil, err
	}

	var relofile Relofile
	if err := readAndUnmarshalYAML(configPath, &relofile); err != nil {
		return nil, err
	}

	return resolveWorkspace(configPath, &relofile)
}

func (l *Loader) findConfiguration(cwd string) (string, error) {
	currentDir, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrConfigNotFound.Error())
	}

	for {
		configPath := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

func resolveWorkspace(configPath string, relofile *Relofile) (*domain.Workspace, error) {
	root := resolveRoot(configPath, relofile.Root)

	if len(relofile.Executables) == 0 {
		return nil, zerr.With(domain.ErrNoExecutables, "config", configPath)
	}

	ws := &domain.Workspace{
		Root:             root,
		LibDir:           resolveDir(root, relofile.LibDir, "lib"),
		BinDir:           resolveDir(root, relofile.BinDir, "bin"),
		IncludeDir:       resolveDir(root, relofile.IncludeDir, "include"),
		OutputDir:        resolveDir(root, relofile.Output, "bundle"),
		Executables:      relofile.Executables,
		ForeignPrefixes:  relofile.ForeignPrefixes,
		Naming:           domain.DefaultNamingTable(),
		DeploymentTarget: relofile.DeploymentTarget,
		Tools:            domain.DefaultToolPaths(),
		ArchiveName:      relofile.Archive,
		Checksum:         relofile.Checksum == nil || *relofile.Checksum,
		SmokeTest:        relofile.SmokeTest,
	}

	if len(ws.ForeignPrefixes) == 0 {
		ws.ForeignPrefixes = []string{"/usr/local"}
	}

	// File-defined naming rules take precedence over the built-in table.
	var rules domain.NamingTable
	for _, dto := range relofile.Naming {
		rules = append(rules, domain.NamingRule{Marker: dto.Marker, Family: dto.Family})
	}
	ws.Naming = append(rules, ws.Naming...)

	if relofile.Tools.Otool != "" {
		ws.Tools.Otool = relofile.Tools.Otool
	}
	if relofile.Tools.InstallNameTool != "" {
		ws.Tools.InstallNameTool = relofile.Tools.InstallNameTool
	}
	if relofile.Tools.Dsymutil != "" {
		ws.Tools.Dsymutil = relofile.Tools.Dsymutil
	}

	if _, err := os.Stat(ws.LibDir); err != nil {
		wrapped := zerr.Wrap(err, domain.ErrWorkspaceNotFound.Error())
		return nil, zerr.With(wrapped, "lib_dir", ws.LibDir)
	}

	return ws, nil
}

// resolveRoot determines the workspace root: an explicit root entry is
// resolved relative to the config file, otherwise the config file's
// directory is the root.
func resolveRoot(configPath, root string) string {
	configDir := filepath.Dir(configPath)
	if root == "" {
		return configDir
	}
	if filepath.IsAbs(root) {
		return filepath.Clean(root)
	}
	return filepath.Join(configDir, root)
}

func resolveDir(root, entry, fallback string) string {
	if entry == "" {
		entry = fallback
	}
	if filepath.IsAbs(entry) {
		return filepath.Clean(entry)
	}
	return filepath.Join(root, entry)
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is validated by caller
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
