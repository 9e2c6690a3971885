package cli

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/custodia-labs/changelog-migrate/internal/adapters/driving/tui/styles"
)

// newStyles returns coloured styles when w is a terminal and plain ones
// otherwise, so piped output and tests see no escape codes.
func newStyles(w io.Writer) *styles.Styles {
	if !isTerminal(w) {
		return styles.PlainStyles()
	}
	return styles.DefaultStyles()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func pluralise(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
