// Package views embeds the HTML served by the portal: the notification and
// dashboard templates, and the static login and registration forms.
package views

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

const (
	NotifyTemplate    = "notify.html"
	DashboardTemplate = "dashboard.html"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*.html
var staticFS embed.FS

// Templates parses the embedded templates. Each is named after its file.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

// Static serves the static pages from the root of the returned file system
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
