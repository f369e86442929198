package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/heaths/go-console"
	"github.com/sirupsen/logrus"
)

// Fields are attached to a reported message.
type Fields map[string]interface{}

// Reporter receives failures that were handled and did not become errors.
type Reporter interface {
	Report(msg string, fields Fields)
}

// Discard drops every report.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Report(string, Fields) {}

// NewConsole writes reports to stderr as the message followed by the fields as JSON.
func NewConsole(con console.Console) Reporter {
	return &consoleReporter{
		w: New(con, "red"),
	}
}

type consoleReporter struct {
	w *Writer
}

func (r *consoleReporter) Report(msg string, fields Fields) {
	b, err := json.Marshal(fields)
	if err != nil {
		r.w.Printf("%s: %v\n", msg, fields)
		return
	}

	r.w.Printf("%s: %s\n", msg, b)
}

// NewStructured emits each report as a single logrus error entry.
func NewStructured(l logrus.FieldLogger) Reporter {
	return &structuredReporter{l: l}
}

type structuredReporter struct {
	l logrus.FieldLogger
}

func (r *structuredReporter) Report(msg string, fields Fields) {
	r.l.WithFields(logrus.Fields(fields)).Error(msg)
}

// Multi reports to each reporter in order.
func Multi(reporters ...Reporter) Reporter {
	return multi(reporters)
}

type multi []Reporter

func (m multi) Report(msg string, fields Fields) {
	for _, r := range m {
		r.Report(msg, fields)
	}
}

// NewLogrus creates a logrus logger writing to out, or stderr if out is nil.
// Format is "json" or "text".
func NewLogrus(format, level string, out io.Writer) (*logrus.Logger, error) {
	l := logrus.New()
	if out == nil {
		out = os.Stderr
	}
	l.SetOutput(out)

	switch strings.ToLower(format) {
	case "", "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true})
	default:
		return nil, fmt.Errorf("unsupported log format %q", format)
	}

	if level == "" {
		level = "info"
	}
	lv, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	l.SetLevel(lv)

	return l, nil
}
