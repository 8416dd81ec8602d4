package archive

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"go.trai.ch/relo/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// WriteManifest hashes every top-level file of the bundle directory and
// writes a SHAMSUM256.txt manifest into it. Lines have the shasum check
// format "<hex digest>  *<file name>", sorted by file name; a previous
// manifest is replaced, never hashed into itself. Symbol bundle
// directories are not part of the manifest.
func WriteManifest(ctx context.Context, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return zerr.Wrap(err, domain.ErrManifestFailed.Error())
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == domain.ManifestFileName {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	lines := make([]string, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			digest, err := hashSHA256(filepath.Join(dir, name))
			if err != nil {
				return err
			}
			lines[i] = fmt.Sprintf("%s  *%s", digest, name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return zerr.Wrap(err, domain.ErrManifestFailed.Error())
	}

	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	manifestPath := filepath.Join(dir, domain.ManifestFileName)
	if err := os.WriteFile(manifestPath, []byte(content), domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrManifestFailed.Error())
	}
	return nil
}

// hashSHA256 returns the hex digest of the file's content, following
// symlinks the way shasum does.
func hashSHA256(path string) (string, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from the directory listing
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
