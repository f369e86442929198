package logger

import (
	"fmt"
	"io"

	"github.com/heaths/go-console"
	"github.com/heaths/go-console/pkg/colorscheme"
)

// Writer colors everything written to the console's stderr with a single style.
// Color is only applied when stderr is a terminal.
type Writer struct {
	w     io.Writer
	style func(string) string
}

func New(con console.Console, style string) *Writer {
	cs := con.ColorScheme().Clone(
		colorscheme.WithTTY(con.IsStderrTTY),
	)
	return &Writer{
		w:     con.Stderr(),
		style: cs.ColorFunc(style),
	}
}

func (w *Writer) Write(buf []byte) (int, error) {
	if _, err := w.w.Write([]byte(w.style(string(buf)))); err != nil {
		return 0, err
	}
	// Callers like httpretty expect the uncolored length.
	return len(buf), nil
}

func (w *Writer) Printf(format string, a ...interface{}) {
	fmt.Fprintf(w, format, a...)
}
