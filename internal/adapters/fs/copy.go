// Package fs implements the file-placement machinery of the bundler:
// symlink-preserving copies, bundle-tree copies, and content comparison.
package fs

import (
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/relo/internal/core/domain"
	"go.trai.ch/zerr"
)

// CopyFile copies src to dest without following symlinks: a symlink is
// recreated as a symlink with the same target, a regular file is copied with
// its mode preserved. With overwrite set an existing dest is replaced;
// otherwise it is left untouched.
func CopyFile(src, dest string, overwrite bool) error {
	if _, err := os.Lstat(dest); err == nil {
		if !overwrite {
			return nil
		}
		if err := os.Remove(dest); err != nil {
			return zerr.Wrap(err, domain.ErrCopyFailed.Error())
		}
	}

	info, err := os.Lstat(src)
	if err != nil {
		return zerr.Wrap(err, domain.ErrCopyFailed.Error())
	}

	if info.Mode()&os.ModeSymlink != 0 {
		target, err := os.Readlink(src)
		if err != nil {
			return zerr.Wrap(err, domain.ErrCopyFailed.Error())
		}
		if err := os.Symlink(target, dest); err != nil {
			return zerr.Wrap(err, domain.ErrCopyFailed.Error())
		}
		return nil
	}

	return copyRegular(src, dest, info.Mode().Perm())
}

func copyRegular(src, dest string, perm os.FileMode) error {
	in, err := os.Open(src) // #nosec G304 -- paths come from the traversal, not user input
	if err != nil {
		return zerr.Wrap(err, domain.ErrCopyFailed.Error())
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm) // #nosec G304
	if err != nil {
		return zerr.Wrap(err, domain.ErrCopyFailed.Error())
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return zerr.Wrap(err, domain.ErrCopyFailed.Error())
	}

	if err := out.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrCopyFailed.Error())
	}

	return nil
}

// CopyTree recursively copies the directory tree at srcDir to destDir,
// preserving symlinks. With overwrite set an existing destDir is removed
// first; otherwise an existing destDir is kept as-is and the copy is
// skipped entirely.
func CopyTree(srcDir, destDir string, overwrite bool) error {
	if _, err := os.Lstat(destDir); err == nil {
		if !overwrite {
			return nil
		}
		if err := os.RemoveAll(destDir); err != nil {
			return zerr.Wrap(err, domain.ErrCopyFailed.Error())
		}
	}

	return filepath.WalkDir(srcDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return zerr.Wrap(err, domain.ErrCopyFailed.Error())
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return zerr.Wrap(err, domain.ErrCopyFailed.Error())
		}
		target := filepath.Join(destDir, rel)

		if d.IsDir() {
			info, err := d.Info()
			if err != nil {
				return zerr.Wrap(err, domain.ErrCopyFailed.Error())
			}
			if err := os.MkdirAll(target, info.Mode().Perm()); err != nil {
				return zerr.Wrap(err, domain.ErrCopyFailed.Error())
			}
			return nil
		}

		return CopyFile(path, target, true)
	})
}

// RealPath resolves every symlink in path and returns the absolute real
// file location.
func RealPath(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve symlinks")
	}
	return filepath.Abs(resolved)
}

// IsSymlink reports whether path is a symbolic link.
func IsSymlink(path string) (bool, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return false, zerr.Wrap(err, "failed to stat path")
	}
	return info.Mode()&os.ModeSymlink != 0, nil
}

// SameContent reports whether two files have identical contents, compared
// by xxhash digest. Used only to diagnose name collisions between version
// siblings; never for deduplication.
func SameContent(a, b string) (bool, error) {
	ha, err := hashFile(a)
	if err != nil {
		return false, err
	}
	hb, err := hashFile(b)
	if err != nil {
		return false, err
	}
	return ha == hb, nil
}

func hashFile(path string) (uint64, error) {
	f, err := os.Open(path) // #nosec G304 -- paths come from the traversal, not user input
	if err != nil {
		return 0, zerr.Wrap(err, "failed to open file for hashing")
	}
	defer func() { _ = f.Close() }()

	digest := xxhash.New()
	if _, err := io.Copy(digest, f); err != nil {
		return 0, zerr.Wrap(err, "failed to hash file content")
	}
	return digest.Sum64(), nil
}
