package closure

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/relo/internal/adapters/fs"
	"go.trai.ch/relo/internal/core/domain"
	"go.trai.ch/relo/internal/core/ports"
	"go.trai.ch/zerr"
)

// Builder runs the recursive closure traversal. It copies each distinct
// workspace file at most once, recurses into dependencies depth-first, and
// patches every binary only after its children are fully placed, so a
// patched binary never references a destination name that does not exist
// yet.
//
// A Builder is single-use: one instance accumulates the state of one run.
type Builder struct {
	lister     ports.DependencyLister
	relocator  ports.Relocator
	symbols    ports.SymbolSource
	classifier *Classifier
	resolver   *Resolver
	logger     ports.Logger

	outputDir string
	set       *domain.ClosureSet
	out       io.Writer
}

// NewBuilder creates a Builder writing the bundle into outputDir.
func NewBuilder(
	lister ports.DependencyLister,
	relocator ports.Relocator,
	symbols ports.SymbolSource,
	classifier *Classifier,
	resolver *Resolver,
	logger ports.Logger,
	outputDir string,
) *Builder {
	return &Builder{
		lister:     lister,
		relocator:  relocator,
		symbols:    symbols,
		classifier: classifier,
		resolver:   resolver,
		logger:     logger,
		outputDir:  outputDir,
		set:        domain.NewClosureSet(),
		out:        io.Discard,
	}
}

// WithOutput directs per-file progress lines to w, typically a span.
func (b *Builder) WithOutput(w io.Writer) *Builder {
	if w != nil {
		b.out = w
	}
	return b
}

// Closure returns the accumulated run state.
func (b *Builder) Closure() *domain.ClosureSet {
	return b.set
}

// Bundle copies the root binary and its transitive workspace dependencies
// into the output directory and rewrites their references. Safe to call
// once per root executable on the same Builder; work already done for an
// earlier root is not repeated.
func (b *Builder) Bundle(ctx context.Context, binaryPath string) error {
	return b.visit(ctx, binaryPath)
}

// visit processes one binary: copy, recurse into dependencies, patch.
func (b *Builder) visit(ctx context.Context, srcPath string) error {
	if b.set.Contains(srcPath) {
		return nil
	}

	destPath := filepath.Join(b.outputDir, filepath.Base(srcPath))
	b.warnOnCollision(srcPath, destPath)
	if err := fs.CopyFile(srcPath, destPath, true); err != nil {
		return err
	}
	b.set.MarkCopied(srcPath, destPath)
	_, _ = fmt.Fprintf(b.out, "copied %s\n", filepath.Base(srcPath))

	b.copySymbols(ctx, srcPath, true)

	refs, err := b.lister.ListDependencies(ctx, srcPath)
	if err != nil {
		return err
	}

	selfReal, err := fs.RealPath(srcPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrCopyFailed.Error())
	}

	var selfID string
	var changes []domain.Rewrite

	for _, ref := range refs {
		absRef, _ := b.classifier.Normalize(ref)

		switch b.classifier.Classify(absRef) {
		case domain.ScopeSystem:
			b.set.MarkSkipped(ref)

		case domain.ScopeForeign:
			b.set.MarkMissing(ref, filepath.Base(srcPath))

		case domain.ScopeWorkspace:
			refReal, err := fs.RealPath(absRef)
			if err != nil {
				wrapped := zerr.Wrap(err, domain.ErrCopyFailed.Error())
				return zerr.With(wrapped, "reference", ref.String())
			}

			newRef := domain.LoaderRelative(filepath.Base(absRef))

			// A reference resolving to the binary's own file is its
			// install identifier, not a dependency edge.
			if refReal == selfReal {
				selfID = newRef
				continue
			}

			if !b.set.Contains(absRef) {
				if err := b.bundleFamily(ctx, absRef, refReal); err != nil {
					return err
				}
			}

			changes = append(changes, domain.Rewrite{Old: ref.String(), New: newRef})
		}
	}

	if err := b.relocator.Rewrite(ctx, destPath, selfID, changes); err != nil {
		return err
	}
	if n := len(changes); n > 0 {
		_, _ = fmt.Fprintf(b.out, "patched %d reference(s) in %s\n", n, filepath.Base(srcPath))
	}

	return nil
}

// bundleFamily places every version-family member of the referenced library
// and recurses into the resolved real file. Siblings are copied no-clobber,
// since an earlier dependency edge may already have placed them; the real
// file itself is left to the recursive visit, which processes its own
// dependencies before patching it.
func (b *Builder) bundleFamily(ctx context.Context, refPath, refReal string) error {
	files, err := b.resolver.Siblings(refPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrCopyFailed.Error())
	}

	for _, file := range files {
		if file.Path == refReal {
			continue
		}
		if b.set.Contains(file.Path) {
			continue
		}
		destPath := filepath.Join(b.outputDir, filepath.Base(file.Path))
		b.warnOnCollision(file.Path, destPath)
		if err := fs.CopyFile(file.Path, destPath, false); err != nil {
			return err
		}
		b.set.MarkCopied(file.Path, destPath)
		_, _ = fmt.Fprintf(b.out, "copied %s\n", filepath.Base(file.Path))

		if !file.Symlink {
			b.copySymbols(ctx, file.Path, false)
		}
	}

	return b.visit(ctx, refReal)
}

// warnOnCollision flags a sibling whose basename already landed in the
// bundle from a different source file with different contents. The first
// copy wins; the collision is surfaced so the workspace can be fixed.
func (b *Builder) warnOnCollision(srcPath, destPath string) {
	if b.logger == nil {
		return
	}
	if _, err := os.Lstat(destPath); err != nil {
		return
	}
	if same, err := fs.SameContent(srcPath, destPath); err == nil && !same {
		b.logger.Warn(fmt.Sprintf(
			"%s already bundled with different contents, keeping the existing copy",
			filepath.Base(destPath),
		))
	}
}

// copySymbols places the binary's debug-symbol bundle next to its copy.
// Symbol failures never block shipping the binary itself.
func (b *Builder) copySymbols(ctx context.Context, binaryPath string, overwrite bool) {
	if b.symbols == nil {
		return
	}
	if err := b.symbols.CopyFor(ctx, binaryPath, b.outputDir, overwrite); err != nil {
		if b.logger != nil {
			b.logger.Warn(fmt.Sprintf("no debug symbols for %s: %v", filepath.Base(binaryPath), err))
		}
	}
}
