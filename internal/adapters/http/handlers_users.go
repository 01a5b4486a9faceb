package web

import (
	"errors"
	"net/http"
	"net/url"

	"eventdesk/internal/adapters/api"
	"eventdesk/internal/domain/user"
)

// handleUsers handles GET /users: the admin-only account roster.
// Non-admins are bounced back to the events list, not shown an error page.
func handleUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	profile, ok := currentUser()
	if !ok || !profile.CanManageUsers() {
		http.Redirect(w, r, "/events", http.StatusSeeOther)
		return
	}
	ctx := r.Context()
	deps.Users.LoadRoles(ctx)
	if err := deps.Users.Refresh(ctx); errors.Is(err, api.ErrUnauthorized) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	st := deps.Users.Snapshot()
	banner := st.Err
	if banner == "" {
		banner = r.URL.Query().Get("err")
	}
	renderTemplate(w, r, "users.html", map[string]any{
		"Users": st.Users,
		"Roles": st.Roles,
		"Error": banner,
	})
}

// userMutation wraps the shared plumbing of every user form POST.
func userMutation(w http.ResponseWriter, r *http.Request, call func() error) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	profile, ok := currentUser()
	if !ok || !profile.CanManageUsers() {
		http.Redirect(w, r, "/events", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	if err := call(); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/users?err="+url.QueryEscape(api.Detail(err, "No se pudo completar la operación")), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func handleUserCreate(w http.ResponseWriter, r *http.Request) {
	userMutation(w, r, func() error {
		return deps.Users.CreateUser(r.Context(), user.Candidate{
			FirstName: r.FormValue("first_name"),
			LastName:  r.FormValue("last_name"),
			Email:     r.FormValue("email"),
			Password:  r.FormValue("password"),
			RoleID:    r.FormValue("role_id"),
		})
	})
}

func handleUserUpdate(w http.ResponseWriter, r *http.Request) {
	userMutation(w, r, func() error {
		return deps.Users.UpdateUser(r.Context(), formInt64(r, "id"), api.AccountPatch{
			FirstName: r.FormValue("first_name"),
			LastName:  r.FormValue("last_name"),
			Email:     r.FormValue("email"),
			RoleID:    r.FormValue("role_id"),
		})
	})
}

func handleUserDelete(w http.ResponseWriter, r *http.Request) {
	userMutation(w, r, func() error {
		return deps.Users.DeleteUser(r.Context(), formInt64(r, "id"))
	})
}
