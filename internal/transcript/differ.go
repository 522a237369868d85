package transcript

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Differ compares transcripts with their golden counterpart.
type Differ struct {
	normalizer *Normalizer
}

// NewDiffer creates a differ using n to normalize both sides.
func NewDiffer(n *Normalizer) *Differ {
	return &Differ{normalizer: n}
}

// Equal reports whether the normalized transcripts match, ignoring trailing newlines.
func (d *Differ) Equal(expected, actual string) bool {
	return d.clean(expected) == d.clean(actual)
}

// WriteDiff writes a report of the differences between expected and actual
// to w. It returns true when they match.
func (d *Differ) WriteDiff(w io.Writer, name, expected, actual string) bool {
	expected, actual = d.clean(expected), d.clean(actual)
	_, _ = fmt.Fprintf(w, "=== Transcript: %s ===\n", name)

	if expected == actual {
		_, _ = fmt.Fprintln(w, "No differences found")
		return true
	}

	_, _ = fmt.Fprintln(w, "\n--- Expected ---")
	writeNumberedLines(w, expected)
	_, _ = fmt.Fprintln(w, "\n--- Actual ---")
	writeNumberedLines(w, actual)

	_, _ = fmt.Fprintln(w, "\n--- Diff ---")
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(expected, actual, false))
	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffDelete:
			_, _ = fmt.Fprintf(w, "- %q\n", diff.Text)
		case diffmatchpatch.DiffInsert:
			_, _ = fmt.Fprintf(w, "+ %q\n", diff.Text)
		case diffmatchpatch.DiffEqual:
			if len(diff.Text) > 50 {
				_, _ = fmt.Fprintf(w, "  %q...\n", diff.Text[:47])
			} else {
				_, _ = fmt.Fprintf(w, "  %q\n", diff.Text)
			}
		}
	}
	return false
}

func (d *Differ) clean(s string) string {
	return strings.TrimRight(d.normalizer.Normalize(s), "\n")
}

func writeNumberedLines(w io.Writer, content string) {
	for i, line := range strings.Split(content, "\n") {
		_, _ = fmt.Fprintf(w, "%4d│%s\n", i+1, line)
	}
}
