package analysis

import (
	"fmt"
	"strings"
)

// DefaultMaxDiffLines keeps a diff response well under the ~25k token cap
// the calling agent enforces on a single tool result.
const DefaultMaxDiffLines = 500

// TruncateResult is a diff bounded to a line budget
type TruncateResult struct {
	Diff       string
	Truncated  bool
	TotalLines int
}

// TruncationMarker is the line appended to a truncated diff
func TruncationMarker(shown, total int) string {
	return fmt.Sprintf("... Output truncated. Showing %d of %d lines. Use max_diff_lines to see more ...", shown, total)
}

// CountLines counts newline separated lines; a trailing newline does not
// start another line.
func CountLines(text string) int {
	if text == "" {
		return 0
	}
	return len(splitLines(text))
}

func splitLines(text string) []string {
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// Truncate keeps the first maxLines lines of diff and appends a marker line
// when anything was cut. Hunk boundaries are ignored.
func Truncate(diff string, maxLines int) TruncateResult {
	if maxLines < 0 {
		maxLines = 0
	}

	total := CountLines(diff)
	if total <= maxLines {
		return TruncateResult{Diff: diff, TotalLines: total}
	}

	kept := splitLines(diff)[:maxLines]
	var b strings.Builder
	for _, line := range kept {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(TruncationMarker(maxLines, total))

	return TruncateResult{
		Diff:       b.String(),
		Truncated:  true,
		TotalLines: total,
	}
}
