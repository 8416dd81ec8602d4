package domain

import (
	"slices"
	"sort"
)

// ClosureSet is the accumulated state of one closure run: every source file
// copied into the output directory, every reference skipped as
// system-provided, and every reference flagged as a machine-local dependency
// that cannot ship. The three sets are mutually exclusive by construction; a
// path re-encountered after copying is a no-op, not an error.
//
// The set is owned exclusively by the traversal that created it. It is not
// safe for concurrent mutation.
type ClosureSet struct {
	copied  map[string]string // source path -> destination path
	seen    map[string]struct{}
	skipped map[string]struct{}
	missing map[string][]string // reference -> binaries that require it
}

// NewClosureSet returns an empty ClosureSet.
func NewClosureSet() *ClosureSet {
	return &ClosureSet{
		copied:  make(map[string]string),
		seen:    make(map[string]struct{}),
		skipped: make(map[string]struct{}),
		missing: make(map[string][]string),
	}
}

// MarkCopied records that src has been placed at dest. Both paths become
// members for Contains checks, mirroring the fact that a destination file
// must never be re-classified as a dependency to fetch.
func (c *ClosureSet) MarkCopied(src, dest string) {
	c.copied[src] = dest
	c.seen[src] = struct{}{}
	c.seen[dest] = struct{}{}
}

// Contains reports whether path has already been copied, either as a source
// or as a destination.
func (c *ClosureSet) Contains(path string) bool {
	_, ok := c.seen[path]
	return ok
}

// MarkSkipped records a reference classified as system scope.
func (c *ClosureSet) MarkSkipped(ref Reference) {
	c.skipped[ref.String()] = struct{}{}
}

// MarkMissing records a foreign reference together with the binary that
// required it, for end-of-run diagnosis.
func (c *ClosureSet) MarkMissing(ref Reference, requiredBy string) {
	key := ref.String()
	if !slices.Contains(c.missing[key], requiredBy) {
		c.missing[key] = append(c.missing[key], requiredBy)
	}
}

// CopiedCount returns the number of distinct source files copied.
func (c *ClosureSet) CopiedCount() int {
	return len(c.copied)
}

// Copied returns every copied path, sources and destinations interleaved,
// lexicographically sorted.
func (c *ClosureSet) Copied() []string {
	paths := make([]string, 0, len(c.copied)*2)
	dests := make(map[string]struct{}, len(c.copied))
	for src, dest := range c.copied {
		paths = append(paths, src)
		dests[dest] = struct{}{}
	}
	for dest := range dests {
		paths = append(paths, dest)
	}
	sort.Strings(paths)
	return slices.Compact(paths)
}

// Destination returns the destination path recorded for a copied source.
func (c *ClosureSet) Destination(src string) (string, bool) {
	dest, ok := c.copied[src]
	return dest, ok
}

// Skipped returns the sorted system-scope references.
func (c *ClosureSet) Skipped() []string {
	paths := make([]string, 0, len(c.skipped))
	for p := range c.skipped {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Missing returns the sorted foreign references together with the sorted
// list of binaries that require each.
func (c *ClosureSet) Missing() []MissingDependency {
	out := make([]MissingDependency, 0, len(c.missing))
	for ref, requirers := range c.missing {
		sorted := make([]string, len(requirers))
		copy(sorted, requirers)
		sort.Strings(sorted)
		out = append(out, MissingDependency{Reference: ref, RequiredBy: sorted})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Reference < out[j].Reference })
	return out
}

// MissingDependency is one foreign-absolute reference and the binaries that
// declared it.
type MissingDependency struct {
	Reference  string
	RequiredBy []string
}
