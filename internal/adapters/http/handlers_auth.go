package web

import (
	"errors"
	"net/http"

	"eventdesk/internal/adapters/api"
	"eventdesk/internal/application/session"
	"eventdesk/internal/domain/user"
)

// handleLogin handles GET (form) and POST (credentials) for /login.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		renderTemplate(w, r, "login.html", map[string]any{
			"Error": r.URL.Query().Get("err"),
		})
	case "POST":
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		email := r.FormValue("email")
		password := r.FormValue("password")
		_, err := deps.Session.Login(r.Context(), email, password)
		if err != nil {
			msg := session.ErrInvalidCredentials.Error()
			if !errors.Is(err, session.ErrInvalidCredentials) {
				msg = api.Detail(err, msg)
			}
			renderTemplate(w, r, "login.html", map[string]any{
				"Error": msg,
				"Email": email,
			})
			return
		}
		http.Redirect(w, r, "/events", http.StatusSeeOther)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleRegister handles GET (form) and POST (new account) for /register.
// Per-field backend errors re-render the form next to their fields; the
// submitted values are kept so the operator only fixes what failed.
func handleRegister(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		renderTemplate(w, r, "register.html", map[string]any{
			"Candidate":   user.Candidate{},
			"FieldErrors": map[string]string{},
		})
	case "POST":
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		candidate := user.Candidate{
			FirstName: r.FormValue("first_name"),
			LastName:  r.FormValue("last_name"),
			Email:     r.FormValue("email"),
			Password:  r.FormValue("password"),
			RoleID:    r.FormValue("role_id"),
		}
		if candidate.RoleID == "" {
			candidate.RoleID = "participant"
		}
		_, err := deps.Session.Register(r.Context(), candidate)
		if err != nil {
			data := map[string]any{
				"Candidate":   candidate,
				"FieldErrors": map[string]string{},
			}
			var verr api.ValidationError
			if errors.As(err, &verr) {
				fieldErrs := make(map[string]string, len(verr))
				for _, fe := range verr {
					fieldErrs[fe.Field] = fe.Message
				}
				data["FieldErrors"] = fieldErrs
			} else {
				data["Error"] = api.Detail(err, "No se pudo completar el registro")
			}
			renderTemplate(w, r, "register.html", data)
			return
		}
		// Registration never logs in; the operator signs in explicitly.
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleLogout handles POST /logout.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	deps.Session.Logout(r.Context())
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
