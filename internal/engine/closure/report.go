package closure

import (
	"fmt"
	"io"
	"strings"

	"go.trai.ch/relo/internal/core/domain"
)

// WriteReport renders the end-of-run diagnostics: every skipped system
// reference, every copied file, and every foreign reference that cannot
// ship, each category lexicographically sorted.
func WriteReport(w io.Writer, set *domain.ClosureSet) error {
	for _, lib := range set.Skipped() {
		if _, err := fmt.Fprintf(w, "[NOTE] skipped %s\n", lib); err != nil {
			return err
		}
	}

	for _, lib := range set.Copied() {
		if _, err := fmt.Fprintf(w, "Copied %s\n", lib); err != nil {
			return err
		}
	}

	for _, dep := range set.Missing() {
		line := fmt.Sprintf("[WARNING] missing %s", dep.Reference)
		if len(dep.RequiredBy) > 0 {
			line += fmt.Sprintf(" (required by %s)", strings.Join(dep.RequiredBy, ", "))
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	return nil
}
