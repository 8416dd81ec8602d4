// Package closure implements the dependency-closure traversal: discovering
// the workspace libraries a set of executables transitively requires,
// copying them into a relocatable output directory, and rewriting every
// load-command reference to a loader-relative form.
package closure

import (
	"path/filepath"
	"strings"

	"go.trai.ch/relo/internal/core/domain"
)

// Classifier decides, for one dependency reference, whether it must be
// bundled, may be ignored, or has to be flagged as a deployment risk.
type Classifier struct {
	libDir          string
	foreignPrefixes []string
}

// NewClassifier creates a Classifier for the given workspace library
// directory and foreign prefixes.
func NewClassifier(libDir string, foreignPrefixes []string) *Classifier {
	return &Classifier{
		libDir:          filepath.Clean(libDir),
		foreignPrefixes: foreignPrefixes,
	}
}

// Normalize substitutes the search-path placeholder prefix with the
// workspace library directory. It reports whether a substitution happened,
// since a placeholder reference must be rewritten even when its target
// library was already bundled.
func (c *Classifier) Normalize(ref domain.Reference) (string, bool) {
	s := ref.String()
	if rest, ok := strings.CutPrefix(s, domain.PlaceholderPrefix); ok {
		return filepath.Join(c.libDir, rest), true
	}
	return s, false
}

// Classify assigns a normalized absolute reference to exactly one scope.
// A reference under the workspace library directory is workspace scope, one
// under a foreign prefix is foreign scope, and everything else is assumed
// to be an OS-provided library.
func (c *Classifier) Classify(absRef string) domain.Scope {
	if isUnder(absRef, c.libDir) {
		return domain.ScopeWorkspace
	}
	for _, prefix := range c.foreignPrefixes {
		if isUnder(absRef, prefix) {
			return domain.ScopeForeign
		}
	}
	return domain.ScopeSystem
}

// isUnder reports whether path sits inside dir, on a path-segment boundary.
func isUnder(path, dir string) bool {
	dir = filepath.Clean(dir)
	if path == dir {
		return true
	}
	return strings.HasPrefix(path, dir+string(filepath.Separator))
}
