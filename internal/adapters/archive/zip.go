// Package archive produces the distributable artifacts of a finished
// bundle: a symlink-preserving zip and a checksum manifest.
package archive

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/relo/internal/core/domain"
	"go.trai.ch/zerr"
)

// CreateZip writes the tree at srcDir into a zip file at zipPath. Symbolic
// links are stored as link entries, not as copies of their target, so the
// version-alias chains inside a bundle survive extraction.
func CreateZip(srcDir, zipPath string) error {
	out, err := os.Create(zipPath) // #nosec G304 -- path comes from configuration
	if err != nil {
		return zerr.Wrap(err, domain.ErrArchiveFailed.Error())
	}
	defer func() { _ = out.Close() }()

	zw := zip.NewWriter(out)

	walkErr := filepath.WalkDir(srcDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == srcDir {
			return nil
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		info, err := d.Info()
		if err != nil {
			return err
		}

		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		header.Name = rel
		if d.IsDir() {
			header.Name += "/"
			_, err = zw.CreateHeader(header)
			return err
		}

		header.Method = zip.Deflate
		if info.Mode()&os.ModeSymlink != 0 {
			// Store the link target as the entry body.
			header.Method = zip.Store
			w, err := zw.CreateHeader(header)
			if err != nil {
				return err
			}
			target, err := os.Readlink(path)
			if err != nil {
				return err
			}
			_, err = w.Write([]byte(target))
			return err
		}

		w, err := zw.CreateHeader(header)
		if err != nil {
			return err
		}
		f, err := os.Open(path) // #nosec G304 -- path comes from the walk
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		_, err = io.Copy(w, f)
		return err
	})
	if walkErr != nil {
		return zerr.Wrap(walkErr, domain.ErrArchiveFailed.Error())
	}

	if err := zw.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrArchiveFailed.Error())
	}
	if err := out.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrArchiveFailed.Error())
	}
	return nil
}
