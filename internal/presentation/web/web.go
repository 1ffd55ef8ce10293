// Package web holds the server-rendered expedição form.
package web

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/sangkips/expedicao-api/internal/domain/entity"
)

//go:embed templates/*.html
var templateFS embed.FS

// FormTemplate is the name of the order form template
const FormTemplate = "expedicao.html"

// Templates parses the embedded templates
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"deref":    entity.StringValue,
		"itemName": ItemInputName,
	}).ParseFS(templateFS, "templates/*.html")
}

// ItemInputName is the form input name of an item field, e.g. "Itens[0].Codigo"
func ItemInputName(index int, field string) string {
	return fmt.Sprintf("Itens[%d].%s", index, field)
}
