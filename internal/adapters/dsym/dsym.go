// Package dsym bundles debug-symbol companions alongside relocated
// binaries.
package dsym

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/relo/internal/adapters/fs"
	"go.trai.ch/relo/internal/core/domain"
	"go.trai.ch/zerr"
)

// Source locates the .dSYM bundle belonging to a Mach-O binary and copies
// it next to the relocated copy. When the build did not produce one, it is
// generated with dsymutil. It implements ports.SymbolSource.
type Source struct {
	dsymutilPath string
}

// NewSource creates a Source driving the dsymutil binary at the given path.
func NewSource(dsymutilPath string) *Source {
	return &Source{dsymutilPath: dsymutilPath}
}

// CopyFor places <name>.dSYM for the given source binary into destDir.
// Failures here never abort a bundle; the caller reports them as warnings.
func (s *Source) CopyFor(ctx context.Context, binaryPath, destDir string, overwrite bool) error {
	bundleName := domain.SymbolBundleName(filepath.Base(binaryPath))
	srcBundle := binaryPath + domain.SymbolBundleSuffix
	destBundle := filepath.Join(destDir, bundleName)

	info, err := os.Stat(srcBundle)
	switch {
	case err == nil && info.IsDir():
		if err := fs.CopyTree(srcBundle, destBundle, overwrite); err != nil {
			return s.symbolError(err, binaryPath)
		}
		return nil
	case err != nil && !os.IsNotExist(err):
		return s.symbolError(err, binaryPath)
	}

	if !overwrite {
		if _, err := os.Stat(destBundle); err == nil {
			return nil
		}
	}

	if err := s.extract(ctx, binaryPath, destBundle); err != nil {
		return s.symbolError(err, binaryPath)
	}
	return nil
}

func (s *Source) extract(ctx context.Context, binaryPath, destBundle string) error {
	cmd := exec.CommandContext(ctx, s.dsymutilPath, "-o", destBundle, binaryPath) //nolint:gosec // tool path comes from configuration
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		err = zerr.Wrap(err, "dsymutil failed")
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = zerr.With(err, "stderr", msg)
		}
		return err
	}
	return nil
}

func (s *Source) symbolError(err error, binaryPath string) error {
	wrapped := zerr.Wrap(err, domain.ErrSymbolCopyFailed.Error())
	return zerr.With(wrapped, "binary", binaryPath)
}
