package template

// Adapted from https://raw.githubusercontent.com/cli/cli/e2973453b5cd77df1b246a6147bbed6b47e4ce1c/pkg/text/truncate.go,
// which I helped write. Whitespace is folded since each description fills one table cell.

import (
	"strings"

	"github.com/muesli/reflow/ansi"
	trunc "github.com/muesli/reflow/truncate"
)

const (
	ellipsis            = "..."
	minWidthForEllipsis = len(ellipsis) + 2
)

// truncate fits s on a single line of at most maxWidth display columns.
// Line breaks are folded into spaces since each description is one table cell.
func truncate(maxWidth int, s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if ansi.PrintableRuneWidth(s) <= maxWidth {
		return s
	}

	tail := ""
	if maxWidth >= minWidthForEllipsis {
		tail = ellipsis
	}

	r := trunc.StringWithTail(s, uint(maxWidth), tail)

	// Pad when a wide rune was cut so columns still line up.
	if ansi.PrintableRuneWidth(r) < maxWidth {
		r += " "
	}

	return r
}
