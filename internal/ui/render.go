package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"studentportal/internal/logger"
	"studentportal/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = map[string]*template.Template{
	"list":           parsePage("list.html"),
	"confirm_delete": parsePage("confirm_delete.html"),
	"form":           parsePage("form.html"),
}

func parsePage(name string) *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/"+name))
}

type listPage struct {
	Title string
	State string
	Error string
	Alert string
	Token string
	Rows  []model.Student
}

type confirmPage struct {
	Title string
	ID    uint
	Token string
}

type formField struct {
	model.Field
	Value    string
	Disabled bool
}

type formPage struct {
	Title       string
	Class       string
	Heading     string
	Action      string
	Method      string
	SubmitLabel string
	State       string
	Error       string
	Fields      []formField
}

// render buffers the page so a template failure never leaves a half-written body.
func render(w http.ResponseWriter, page string, status int, data any) {
	tmpl, ok := pages[page]
	if !ok {
		logger.Log.Errorf("Unknown page template %q", page)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		logger.Log.WithError(err).Errorf("Failed to render %s", page)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Log.WithError(err).Debug("Client went away while writing page")
	}
}

// createFields lays out the create form from the current draft.
func createFields(draft model.Student) []formField {
	fields := make([]formField, 0, len(model.Fields))
	for _, f := range model.Fields {
		fields = append(fields, formField{Field: f, Value: draft.Get(f.Name)})
	}
	return fields
}

// editFields omits create-only inputs and disables the read-only ones.
func editFields(draft model.Student) []formField {
	fields := make([]formField, 0, len(model.Fields))
	for _, f := range model.Fields {
		if f.CreateOnly {
			continue
		}
		ff := formField{Field: f, Value: draft.Get(f.Name), Disabled: f.ReadOnlyOnEdit}
		if ff.Disabled {
			ff.Required = false
		}
		fields = append(fields, ff)
	}
	return fields
}

func editAction(id uint) string {
	return fmt.Sprintf("/edit/%d", id)
}
