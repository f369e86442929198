package template

import (
	"text/template"

	"github.com/MakeNowJust/heredoc"
)

var markdownTempl *template.Template

func init() {
	markdownTempl = template.Must(template.New("icon").Parse(
		`{{if .Icon}}{{.Icon}} {{end}}`))

	template.Must(markdownTempl.New("project").Parse(heredoc.Doc(`
	- {{template "icon" .}}**[{{.Name}}]({{.URL}})**{{if .Description}}: {{.Description}}{{end}}{{if .Homepage}} ([homepage]({{.Homepage}})){{end}}
	`)))

	template.Must(markdownTempl.New("projects").Parse(
		`{{range .}}{{template "project" .}}{{else}}_No pinned projects._
{{end}}`))

	markdownTempl = markdownTempl.Lookup("projects")
}
