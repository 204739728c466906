// Backoffice - Admin Console for the Games API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/backoffice

package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/goccy/go-json"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"github.com/tomtom215/backoffice/internal/auth"
	"github.com/tomtom215/backoffice/internal/backend"
	"github.com/tomtom215/backoffice/internal/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutTemplate = "templates/layout.html"

// mdRenderer renders message bodies. Raw HTML in the input is dropped
// (WithUnsafe is not set), so the output is safe to mark as template.HTML.
var mdRenderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// templateFuncs are available to every page.
var templateFuncs = template.FuncMap{
	"json":     prettyJSON,
	"markdown": renderMarkdown,
	"field":    backend.FieldString,
	"add":      func(a, b int) int { return a + b },
	"sub":      func(a, b int) int { return a - b },
}

// templateSet holds one parsed template per page, each combined with the
// shared layout.
type templateSet struct {
	pages map[string]*template.Template
}

// loadTemplates parses every page under templates/ together with the layout.
func loadTemplates() (*templateSet, error) {
	names, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	set := &templateSet{pages: make(map[string]*template.Template, len(names))}
	for _, name := range names {
		if name == layoutTemplate {
			continue
		}
		tmpl, err := template.New(path.Base(layoutTemplate)).Funcs(templateFuncs).ParseFS(templateFS, layoutTemplate, name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		set.pages[strings.TrimSuffix(path.Base(name), ".html")] = tmpl
	}
	return set, nil
}

// view is the data passed to every page. Pages read the fields they need.
type view struct {
	Title    string
	Nav      string
	LoggedIn bool
	Flashes  []auth.Flash

	// Dashboard
	BaseURL     string
	MaskedToken string

	// Lists and forms
	Records  []backend.Record
	Record   backend.Record
	Resource string
	FormURL  string
	IsNew    bool

	// Games
	Kind    string
	Page    *PageInfo
	Markers []Marker

	// Login
	Next string
}

// render consumes pending flashes, saves the session and writes the page.
// Rendering goes through a buffer so a template error still yields a clean
// 500 instead of a half-written page.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data *view) {
	tmpl, ok := h.templates.pages[page]
	if !ok {
		logging.Ctx(r.Context()).Error().Str("page", page).Msg("Unknown template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data.LoggedIn = h.sessions.LoggedIn(r)
	data.Flashes = h.sessions.Flashes(r)
	h.saveSession(w, r)

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("page", page).Msg("Failed to render template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write page")
	}
}

// prettyJSON renders v as indented JSON for display in forms and views.
func prettyJSON(v interface{}) string {
	if v == nil {
		return "{}"
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil || string(data) == "null" {
		return "{}"
	}
	return string(data)
}

// renderMarkdown converts markdown to HTML, falling back to escaped text.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md)) //nolint:gosec // escaped above
	}
	return template.HTML(buf.String()) //nolint:gosec // goldmark drops raw HTML without WithUnsafe
}
