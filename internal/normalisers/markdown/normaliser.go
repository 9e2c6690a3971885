package markdown

import (
	"strings"
	"time"

	"github.com/custodia-labs/changelog-migrate/internal/core/domain"
	"github.com/custodia-labs/changelog-migrate/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// calendarGlyph prefixes the date stamp ("🗓️").
const calendarGlyph = "\U0001F5D3\uFE0F"

// lineEndings maps CRLF and CR to LF.
var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Normaliser rewrites changelog entries for a month wrapper.
type Normaliser struct {
	indent string
}

// New creates a Markdown normaliser indenting content by indentWidth spaces.
// Negative widths are treated as zero.
func New(indentWidth int) *Normaliser {
	if indentWidth < 0 {
		indentWidth = 0
	}
	return &Normaliser{indent: strings.Repeat(" ", indentWidth)}
}

// Normalise shifts every heading one level deeper and indents the entry.
// A date stamp for published is inserted after the first heading only;
// content without headings is indented and nothing else.
// Blank lines are kept as they are. CRLF and lone CR line endings are
// rewritten to LF.
func (n *Normaliser) Normalise(content string, published time.Time) string {
	lines := strings.Split(lineEndings.Replace(content), "\n")
	out := make([]string, 0, len(lines)+3)
	stamped := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "#"):
			out = append(out, n.indent+shiftHeading(trimmed))
			if !stamped {
				out = append(out, "", n.indent+DateStamp(published), "")
				stamped = true
			}
		case trimmed != "":
			out = append(out, n.indent+line)
		default:
			out = append(out, line)
		}
	}

	return strings.Join(out, "\n")
}

// DateStamp renders the emphasised date line placed under an entry's
// first heading.
func DateStamp(published time.Time) string {
	return calendarGlyph + " **" + domain.DisplayDate(published) + "**"
}

// shiftHeading adds one level to a trimmed ATX heading line.
func shiftHeading(trimmed string) string {
	text := strings.TrimLeft(trimmed, "#")
	level := len(trimmed) - len(text)
	return strings.Repeat("#", level+1) + " " + strings.TrimSpace(text)
}
