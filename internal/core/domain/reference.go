// Package domain contains the pure types of the relocation engine.
package domain

// Reference is a dependency reference exactly as declared in a binary's load
// commands: an absolute path, or a search-path placeholder form such as
// "@rpath/libfoo.dylib". References are immutable once listed.
type Reference string

// String returns the reference as a plain string.
func (r Reference) String() string {
	return string(r)
}

// Scope is the three-way classification of a dependency reference.
type Scope uint8

const (
	// ScopeSystem marks an OS-provided library that is assumed resolvable on
	// every target machine and is never bundled.
	ScopeSystem Scope = iota

	// ScopeWorkspace marks a library under the workspace lib directory. It
	// must be bundled and its references rewritten.
	ScopeWorkspace

	// ScopeForeign marks an absolute path outside the workspace under a
	// machine-local prefix (a package manager tree, typically). The build
	// picked it up from the host; it cannot be bundled and cannot be assumed
	// present elsewhere, so it is surfaced as a deployment risk.
	ScopeForeign
)

// String returns a human-readable scope name.
func (s Scope) String() string {
	switch s {
	case ScopeWorkspace:
		return "workspace"
	case ScopeForeign:
		return "foreign"
	default:
		return "system"
	}
}

// Rewrite is one load-command rewrite to apply to a single destination
// binary: the reference string as currently embedded, and the
// loader-relative form that replaces it.
type Rewrite struct {
	Old string
	New string
}

// LibraryFile is one concrete file discovered on disk while expanding a
// version family.
type LibraryFile struct {
	// Path is the absolute source path of the file.
	Path string

	// Symlink reports whether the file is a symbolic link to another family
	// member rather than a real Mach-O file.
	Symlink bool

	// Family is the version-stripped family identifier of the file name.
	Family string
}
