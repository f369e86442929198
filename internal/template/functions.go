package template

import (
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/cli/go-gh/pkg/tableprinter"
)

type tableState struct {
	w     io.Writer
	isTTY bool
	width int
	p     tableprinter.TablePrinter
}

func (ts *tableState) printer() tableprinter.TablePrinter {
	if ts.p == nil {
		ts.p = tableprinter.New(ts.w, ts.isTTY, ts.width)
	}
	return ts.p
}

func tablerowFunc(ts *tableState) func(...string) string {
	return func(fields ...string) string {
		p := ts.printer()
		for _, field := range fields {
			p.AddField(field)
		}
		p.EndRow()

		return ""
	}
}

func tablerenderFunc(ts *tableState) func() (string, error) {
	return func() (string, error) {
		// Nothing was added, e.g. for an empty range.
		if ts.p == nil {
			return "", nil
		}

		err := ts.p.Render()
		ts.p = nil

		return "", err
	}
}

func renderMarkdown(md string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}

	return r.Render(md)
}
