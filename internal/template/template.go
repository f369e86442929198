package template

// cSpell:ignore templ
import (
	"bytes"
	"io"
	tt "text/template"

	"github.com/MakeNowJust/heredoc"
	"github.com/cli/go-gh/pkg/text"
	"github.com/heaths/gh-pinned/internal/models"
	"github.com/heaths/go-console"
)

const (
	defaultWidth       = 80
	descriptionColumns = 60
)

type Template struct {
	t     *tt.Template
	w     io.Writer
	ts    tableState
	isTTY bool
	width int
}

func New(c console.Console) *Template {
	templ := tt.New("")
	t := &Template{
		t:     templ,
		w:     c.Stdout(),
		isTTY: c.IsStdoutTTY(),
		width: defaultWidth,
	}
	t.ts = tableState{
		w:     t.w,
		isTTY: t.isTTY,
		width: t.width,
	}

	cs := c.ColorScheme()
	templ.Funcs(map[string]interface{}{
		"bold": cs.ColorFunc("white+b"),
		"dim":  cs.ColorFunc("white+d"),
		"isTTY": func() bool {
			return t.isTTY
		},
		"pluralize": text.Pluralize,
		"summary": func(s string) string {
			if t.isTTY {
				return truncate(descriptionColumns, s)
			}
			return s
		},
		"tablerow":    tablerowFunc(&t.ts),
		"tablerender": tablerenderFunc(&t.ts),
	})

	return t
}

// Projects writes a table of projects. Terminals get a count header and
// truncated descriptions; otherwise rows are tab-separated.
func (t *Template) Projects(projects []models.Project) error {
	if _, err := t.t.New("projects").Parse(heredoc.Doc(`
		{{if isTTY}}Showing {{pluralize (len .) "pinned project"}}

		{{end}}{{range .}}{{tablerow .Icon (bold .Name) (summary .Description) (dim .URL)}}{{end}}{{tablerender}}`)); err != nil {
		return err
	}

	return t.t.ExecuteTemplate(t.w, "projects", projects)
}

// Markdown writes projects as a markdown list, rendered for terminals.
func (t *Template) Markdown(projects []models.Project) error {
	var buf bytes.Buffer
	if err := markdownTempl.Execute(&buf, projects); err != nil {
		return err
	}

	if !t.isTTY {
		_, err := t.w.Write(buf.Bytes())
		return err
	}

	out, err := renderMarkdown(buf.String(), t.width)
	if err != nil {
		return err
	}

	_, err = io.WriteString(t.w, out)
	return err
}
