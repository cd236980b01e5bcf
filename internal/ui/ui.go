// Package ui holds the server-rendered pages: the login form and the main
// page that drives the JSON API from the browser.
package ui

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names
const (
	LoginTemplate = "login"
	MainTemplate  = "main"
)

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(templateFS, "templates/*.html")
}

// MustTemplates is Templates for program start-up.
func MustTemplates() *template.Template {
	return template.Must(Templates())
}
