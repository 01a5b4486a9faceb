package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"eventdesk/internal/adapters/api"
	"eventdesk/internal/application/listutil"
	"eventdesk/internal/domain/event"
)

// handleEvents handles GET /events: the main list with search, pagination
// and the participant's registrations view.
func handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()
	q := r.URL.Query()
	params := listutil.ParseOffsetParams(q)

	deps.Events.SetQuery(params.Term, params.Offset)
	if err := deps.Events.Refresh(ctx); errors.Is(err, api.ErrUnauthorized) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err := deps.Events.RefreshRegistrations(ctx); errors.Is(err, api.ErrUnauthorized) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	st := deps.Events.Snapshot()
	banner := st.Err
	if banner == "" {
		banner = q.Get("err")
	}
	registered := make(map[int64]bool, len(st.Registrations))
	for _, reg := range st.Registrations {
		registered[reg.EventID] = true
	}

	renderTemplate(w, r, "events.html", map[string]any{
		"Events":        st.Events,
		"Registrations": st.Registrations,
		"Registered":    registered,
		"Term":          st.Term,
		"Offset":        st.Offset,
		"Page":          st.Page,
		"HasPrev":       st.HasPrev,
		"LikelyLast":    st.LikelyLast,
		"PageSize":      st.Limit,
		"View":          q.Get("view"),
		"Error":         banner,
	})
}

func eventFromForm(r *http.Request) event.Event {
	return event.Event{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Capacity:    formInt(r, "capacity"),
		StartDate:   r.FormValue("start_date"),
		EndDate:     r.FormValue("end_date"),
		Status:      r.FormValue("status"),
	}
}

func sessionFromForm(r *http.Request) event.Session {
	return event.Session{
		EventID:     formInt64(r, "event_id"),
		Title:       r.FormValue("title"),
		Speaker:     r.FormValue("speaker"),
		Description: r.FormValue("description"),
		Capacity:    formInt(r, "capacity"),
		StartTime:   r.FormValue("start_time"),
		EndTime:     r.FormValue("end_time"),
	}
}

// eventMutation wraps the shared plumbing of every event form POST: method
// and role checks, form parsing, the call, and the redirect back to the
// list with an error banner when the backend refuses.
func eventMutation(w http.ResponseWriter, r *http.Request, requireDelete bool, call func() error) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	profile, ok := currentUser()
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	allowed := profile.CanManageEvents()
	if requireDelete {
		allowed = profile.CanDeleteEvents()
	}
	if !allowed {
		http.Error(w, "Forbidden", http.StatusForbidden)
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
		redirectEvents(w, r, api.Detail(err, "No se pudo completar la operación"))
		return
	}
	redirectEvents(w, r, "")
}

func handleEventCreate(w http.ResponseWriter, r *http.Request) {
	eventMutation(w, r, false, func() error {
		e := eventFromForm(r)
		if e.Status == "" {
			e.Status = event.StatusDraft
		}
		return deps.Events.CreateEvent(r.Context(), e)
	})
}

func handleEventUpdate(w http.ResponseWriter, r *http.Request) {
	eventMutation(w, r, false, func() error {
		return deps.Events.UpdateEvent(r.Context(), formInt64(r, "id"), eventFromForm(r))
	})
}

func handleEventCancel(w http.ResponseWriter, r *http.Request) {
	eventMutation(w, r, false, func() error {
		return deps.Events.CancelEvent(r.Context(), formInt64(r, "id"))
	})
}

func handleEventDelete(w http.ResponseWriter, r *http.Request) {
	eventMutation(w, r, true, func() error {
		return deps.Events.DeleteEvent(r.Context(), formInt64(r, "id"))
	})
}

func handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	eventMutation(w, r, false, func() error {
		return deps.Events.CreateSession(r.Context(), sessionFromForm(r))
	})
}

func handleSessionUpdate(w http.ResponseWriter, r *http.Request) {
	eventMutation(w, r, false, func() error {
		s := sessionFromForm(r)
		return deps.Events.UpdateSession(r.Context(), formInt64(r, "id"), s)
	})
}

func handleSessionDelete(w http.ResponseWriter, r *http.Request) {
	eventMutation(w, r, false, func() error {
		return deps.Events.DeleteSession(r.Context(), formInt64(r, "id"))
	})
}

// handleEventRegister handles POST /events/register for participants.
func handleEventRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	profile, ok := currentUser()
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if !profile.CanRegister() {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	if err := deps.Events.RegisterForEvent(r.Context(), formInt64(r, "event_id")); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		redirectEvents(w, r, api.Detail(err, "No se pudo completar el registro"))
		return
	}
	redirectEvents(w, r, "")
}

// handleAPIEventsSearch handles POST /api/events/search. Each keystroke in
// the search box lands here; the controller debounces, so rapid calls
// collapse into one backend fetch for the final term.
func handleAPIEventsSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in struct {
		Term string `json:"term"`
	}
	if err := strictDecode(r, &in); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	deps.Events.Search(in.Term)
	w.WriteHeader(http.StatusAccepted)
}

// handleAPIEvents handles GET /api/events: the current list snapshot.
func handleAPIEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	st := deps.Events.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"term":   st.Term,
		"offset": st.Offset,
		"events": st.Events,
		"error":  st.Err,
	})
}
