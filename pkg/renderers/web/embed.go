package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

const (
	// PageTemplate is the template every page renders through.
	PageTemplate   = "templates/page.tmpl"
	StylesheetName = "inspect.css"
)

// TemplatesFS exposes the embedded page template so callers can start a
// custom bundle from it.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

func defaultStylesheet() string {
	data, err := fs.ReadFile(embeddedAssets, "assets/"+StylesheetName)
	if err != nil {
		return ""
	}
	return string(data)
}
