package dashboard

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templatesFS embed.FS

var page = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// WriteHTML encodes v as an HTML document.
func WriteHTML(w io.Writer, v View) error {
	var buf bytes.Buffer
	if err := page.ExecuteTemplate(&buf, "dashboard.html", v); err != nil {
		return fmt.Errorf("executing dashboard template: %w", err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("writing dashboard: %w", err)
	}
	return nil
}
