package common

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
)

const (
	previewCharLimit = 300
	previewLineLimit = 8
)

// IsLongContent reports whether content exceeds the feed preview limits and
// should be collapsed behind an expand toggle.
func IsLongContent(content string) bool {
	if len(content) > previewCharLimit {
		return true
	}
	return strings.Count(content, "\n")+1 > previewLineLimit
}

// Preview collapses long content for list rendering. Short content passes
// through unchanged.
func Preview(content string) string {
	lines := strings.Split(content, "\n")
	if len(lines) > previewLineLimit {
		return strings.Join(lines[:previewLineLimit], "\n") + "..."
	}
	if len(content) > previewCharLimit {
		// Back off to a rune boundary so the cut never emits invalid UTF-8.
		cut := previewCharLimit
		for cut > 0 && !utf8.RuneStart(content[cut]) {
			cut--
		}
		return content[:cut] + "..."
	}
	return content
}

// TruncateLine shortens a single styled line to the given display width,
// ANSI-aware so escape sequences don't count against the budget.
func TruncateLine(line string, width int) string {
	if width <= 0 || ansi.StringWidth(line) <= width {
		return line
	}
	return ansi.Truncate(line, width-1, "…")
}

// FormatTime renders a timestamp the way the feed shows it: relative for
// recent activity, absolute beyond a week.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 02, 2006")
	}
}

// PageIndicator renders the "page x of y" line, empty until totals are known.
func PageIndicator(current, total int) string {
	if total <= 0 {
		return ""
	}
	return fmt.Sprintf("page %d of %d", current, total)
}
