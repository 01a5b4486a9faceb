package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"

	"eventdesk/internal/adapters/http/middleware"
	"eventdesk/internal/application/eventsview"
	"eventdesk/internal/application/session"
)

// Deps holds the application dependencies the handlers use.
type Deps struct {
	Session *session.Store
	Events  *eventsview.Controller
	Users   *eventsview.UsersController
}

// Global deps instance (set by NewMux)
var deps *Deps

// loadCSRFKey reads the CSRF secret from EVENTDESK_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("EVENTDESK_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("EVENTDESK_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("EVENTDESK_ENV") == "production" {
		log.Fatal("EVENTDESK_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (forms won't survive restart). Set EVENTDESK_CSRF_KEY for production.")
	return key
}

// NewMux wires HTTP handlers for the console.
func NewMux(d *Deps) http.Handler {
	deps = d

	mux := http.NewServeMux()
	registerRoutes(mux)

	csrfKey := loadCSRFKey()

	// Apply middleware: Timing -> Guard -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Guard(d.Session),
		middleware.Timing(),
	)
}

func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", handleRoot)
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/register", handleRegister)
	mux.HandleFunc("/logout", handleLogout)

	mux.HandleFunc("/events", handleEvents)
	mux.HandleFunc("/events/create", handleEventCreate)
	mux.HandleFunc("/events/update", handleEventUpdate)
	mux.HandleFunc("/events/cancel", handleEventCancel)
	mux.HandleFunc("/events/delete", handleEventDelete)
	mux.HandleFunc("/events/register", handleEventRegister)
	mux.HandleFunc("/events/sessions/create", handleSessionCreate)
	mux.HandleFunc("/events/sessions/update", handleSessionUpdate)
	mux.HandleFunc("/events/sessions/delete", handleSessionDelete)

	mux.HandleFunc("/users", handleUsers)
	mux.HandleFunc("/users/create", handleUserCreate)
	mux.HandleFunc("/users/update", handleUserUpdate)
	mux.HandleFunc("/users/delete", handleUserDelete)

	mux.HandleFunc("/api/events/search", handleAPIEventsSearch)
	mux.HandleFunc("/api/events", handleAPIEvents)
}

// handleRoot only ever sees requests the guard let through; the guard
// redirects "/" itself before it reaches the mux, so this is the catch-all
// for unknown paths. Those route back to "/", where the guard resolves
// them to /events or /login.
func handleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
