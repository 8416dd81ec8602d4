package closure

import (
	"path/filepath"

	"go.trai.ch/relo/internal/adapters/fs"
	"go.trai.ch/relo/internal/core/domain"
	"go.trai.ch/zerr"
)

// Resolver enumerates the version family of a shared library: the real
// versioned file plus every symlink alias sharing its family identifier.
type Resolver struct {
	naming domain.NamingTable
}

// NewResolver creates a Resolver using the given naming-convention table.
func NewResolver(naming domain.NamingTable) *Resolver {
	return &Resolver{naming: naming}
}

// Siblings returns every file in libPath's directory that belongs to the
// same version family, including libPath itself, plus the fully resolved
// real target when libPath is a symlink. A family with no siblings on disk
// is valid; the result then holds just the direct file.
func (r *Resolver) Siblings(libPath string) ([]domain.LibraryFile, error) {
	dir := filepath.Dir(libPath)
	family := r.naming.FamilyOf(filepath.Base(libPath))

	matches, err := filepath.Glob(filepath.Join(dir, family+"*"+domain.LibraryExtension))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to glob version family")
	}

	seen := make(map[string]struct{}, len(matches)+2)
	var files []domain.LibraryFile

	add := func(path string) error {
		if _, ok := seen[path]; ok {
			return nil
		}
		// The glob prefix over-matches: libfoo* also catches libfoobar.
		if r.naming.FamilyOf(filepath.Base(path)) != family {
			return nil
		}
		isLink, err := fs.IsSymlink(path)
		if err != nil {
			return err
		}
		seen[path] = struct{}{}
		files = append(files, domain.LibraryFile{
			Path:    path,
			Symlink: isLink,
			Family:  family,
		})
		return nil
	}

	if err := add(libPath); err != nil {
		return nil, err
	}
	for _, match := range matches {
		if err := add(match); err != nil {
			return nil, err
		}
	}

	// A symlinked input may resolve to a file the glob did not see, e.g.
	// a real file whose name family differs after an alias rename.
	isLink, err := fs.IsSymlink(libPath)
	if err != nil {
		return nil, err
	}
	if isLink {
		real, err := fs.RealPath(libPath)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[real]; !ok {
			seen[real] = struct{}{}
			files = append(files, domain.LibraryFile{
				Path:    real,
				Symlink: false,
				Family:  r.naming.FamilyOf(filepath.Base(real)),
			})
		}
	}

	return files, nil
}
