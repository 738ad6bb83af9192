// Package renderer turns the report and summary structs of the agendah
// package into presentable documents: a self-contained printable HTML file
// for the period report, and markdown for the terminal surfaces.
package renderer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/hfreitas/agendah"
	"github.com/yuin/goldmark"
)

//go:embed templates
var templates embed.FS

// noKeywordsMsg is shown on the cover when no word repeats often enough.
const noKeywordsMsg = "Sem repetição forte ainda — continue registrando."

// ReportHTML renders the journal report as one complete HTML document:
// embedded styles, inline thumbnails, an explicit page break after the
// cover and after every day page. No external resources.
func ReportHTML(r *agendah.JournalReport) (string, error) {
	tmpl, err := template.New("report.html.tmpl").Funcs(template.FuncMap{
		"markdown": markdownHTML,
		"hashTags": hashTags,
		// Thumbnails are base64 data URLs we generated ourselves; without
		// this the URL sanitizer would reject the data: scheme.
		"dataURL":     func(s string) template.URL { return template.URL(s) },
		"noKeywords":  func() string { return noKeywordsMsg },
		"generatedAt": func() string { return r.GeneratedAt.Format("02/01/2006 15:04:05") },
	}).ParseFS(templates, "templates/report.html.tmpl")
	if err != nil {
		return "", fmt.Errorf("parse report template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, r); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return buf.String(), nil
}

// markdownHTML converts free text (notes) to HTML through goldmark. Raw
// HTML in the source stays escaped, so the result is safe to inline.
func markdownHTML(text string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.New().Convert([]byte(text), &buf); err != nil {
		// Fall back to the escaped plain text.
		return template.HTML("<p>" + template.HTMLEscapeString(text) + "</p>")
	}
	return template.HTML(buf.String())
}

// hashTags renders the trailing tag line of a day page.
func hashTags(tags []string) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = "#" + t
	}
	return strings.Join(parts, " ")
}
