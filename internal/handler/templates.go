package handler

import (
	"embed"
	"html/template"

	"github.com/noah-isme/engagement-dashboard/internal/models"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// DashboardTemplate is the name of the page template.
const DashboardTemplate = "dashboard"

type selectField struct {
	Name        string
	Placeholder string
	Options     []models.Option
	Selected    string
}

// Templates parses the embedded page templates once at startup.
func Templates() (*template.Template, error) {
	funcs := template.FuncMap{
		"selectData": func(name, placeholder string, options []models.Option, selected string) selectField {
			return selectField{Name: name, Placeholder: placeholder, Options: options, Selected: selected}
		},
	}
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
}
