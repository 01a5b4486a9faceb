package web

import (
	"bytes"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"eventdesk/internal/domain/user"
)

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// TemplatesDir locates page templates. Tests override it with a path
// relative to their own package.
var TemplatesDir = "internal/adapters/http/templates"

func currentUser() (user.Profile, bool) {
	sess, ok := deps.Session.Current()
	if !ok {
		return user.Profile{}, false
	}
	return sess.User, true
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	profile, loggedIn := currentUser()

	funcMap := template.FuncMap{
		"currentRole":    func() string { return profile.Role },
		"currentEmail":   func() string { return profile.Email },
		"currentName":    func() string { return profile.DisplayName() },
		"isLoggedIn":     func() bool { return loggedIn },
		"canManage":      func() bool { return loggedIn && profile.CanManageEvents() },
		"canDelete":      func() bool { return loggedIn && profile.CanDeleteEvents() },
		"canManageUsers": func() bool { return loggedIn && profile.CanManageUsers() },
		"canRegister":    func() bool { return loggedIn && profile.CanRegister() },
		"csrfToken":      func() string { return csrf.Token(r) },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	}

	layoutPath := filepath.Join(TemplatesDir, "layout.html")
	pagePath := filepath.Join(TemplatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// redirectEvents sends the browser back to the events list, preserving the
// search term and offset carried in the form, plus an optional error banner.
func redirectEvents(w http.ResponseWriter, r *http.Request, errMsg string) {
	q := url.Values{}
	if term := r.FormValue("q"); term != "" {
		q.Set("q", term)
	}
	if offset := r.FormValue("offset"); offset != "" && offset != "0" {
		q.Set("offset", offset)
	}
	if errMsg != "" {
		q.Set("err", errMsg)
	}
	target := "/events"
	if enc := q.Encode(); enc != "" {
		target += "?" + enc
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func formInt(r *http.Request, name string) int {
	n, _ := strconv.Atoi(r.FormValue(name))
	return n
}

func formInt64(r *http.Request, name string) int64 {
	n, _ := strconv.ParseInt(r.FormValue(name), 10, 64)
	return n
}
