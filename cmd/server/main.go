package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	"eventdesk/internal/adapters/api"
	web "eventdesk/internal/adapters/http"
	"eventdesk/internal/adapters/storage"
	"eventdesk/internal/adapters/storage/credential"
	"eventdesk/internal/application/eventsview"
	"eventdesk/internal/application/session"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Local database holds the persisted session between restarts
	dbPath := envOrDefault("EVENTDESK_DB", "eventdesk.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Token sealing: with a key the stored token is encrypted at rest,
	// without one it is stored in the clear
	var sealer credential.Sealer
	if keyHex := os.Getenv("EVENTDESK_SEAL_KEY"); keyHex != "" {
		sealer, err = credential.NewAEADSealer(keyHex)
		if err != nil {
			log.Fatalf("EVENTDESK_SEAL_KEY: %v", err)
		}
		log.Println("Credential sealing enabled")
	} else {
		log.Println("WARNING: EVENTDESK_SEAL_KEY is not set; the access token is stored unencrypted")
	}

	creds := credential.NewSQLiteStore(db, sealer)

	baseURL := envOrDefault("EVENTDESK_API_BASE_URL", "http://localhost:8000")

	// The session store reads its token through the client and the client
	// reads its token through the session store, so wire in two steps.
	sess := session.NewStore(creds, nil, nil)
	client := api.NewClient(baseURL, sess.Token)
	sess.SetAuthAPI(client)

	// Pick up a session persisted by an earlier run
	sess.Restore(context.Background())

	events := eventsview.NewController(client, sess, 0)
	users := eventsview.NewUsersController(client, sess)

	mux := web.NewMux(&web.Deps{
		Session: sess,
		Events:  events,
		Users:   users,
	})

	addr := envOrDefault("EVENTDESK_ADDR", ":8080")
	log.Printf("EventDesk %s starting on %s (backend=%s, env=%s)", version, addr, baseURL, envOrDefault("EVENTDESK_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
