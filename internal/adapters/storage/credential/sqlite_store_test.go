package credential

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"eventdesk/internal/adapters/storage"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("init database: %v", err)
	}
	return db
}

func TestSetGetDelete(t *testing.T) {
	store := NewSQLiteStore(newTestDB(t), nil)
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, KeyAccessToken); err != nil || ok {
		t.Fatalf("Get on empty store = ok=%v err=%v, want absent", ok, err)
	}

	if err := store.Set(ctx, KeyAccessToken, "tok-1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, ok, err := store.Get(ctx, KeyAccessToken)
	if err != nil || !ok || got != "tok-1" {
		t.Fatalf("Get() = (%q, %v, %v), want (tok-1, true, nil)", got, ok, err)
	}

	// Upsert replaces
	if err := store.Set(ctx, KeyAccessToken, "tok-2"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, _, _ = store.Get(ctx, KeyAccessToken)
	if got != "tok-2" {
		t.Errorf("after upsert Get() = %q, want tok-2", got)
	}

	if err := store.Delete(ctx, KeyAccessToken); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := store.Get(ctx, KeyAccessToken); ok {
		t.Error("value still present after Delete")
	}
	// Deleting an absent key is fine
	if err := store.Delete(ctx, KeyAccessToken); err != nil {
		t.Errorf("Delete of absent key: %v", err)
	}
}

func TestClearRemovesEverything(t *testing.T) {
	store := NewSQLiteStore(newTestDB(t), nil)
	ctx := context.Background()

	store.Set(ctx, KeyAccessToken, "tok")
	store.Set(ctx, KeyUserData, `{"id":"1"}`)

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	for _, key := range []string{KeyAccessToken, KeyUserData} {
		if _, ok, _ := store.Get(ctx, key); ok {
			t.Errorf("%s still present after Clear", key)
		}
	}
	// Idempotent
	if err := store.Clear(ctx); err != nil {
		t.Errorf("second Clear() error = %v", err)
	}
}

func TestSealedRoundTrip(t *testing.T) {
	keyHex := "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"
	sealer, err := NewAEADSealer(keyHex)
	if err != nil {
		t.Fatalf("NewAEADSealer() error = %v", err)
	}

	db := newTestDB(t)
	store := NewSQLiteStore(db, sealer)
	ctx := context.Background()

	if err := store.Set(ctx, KeyAccessToken, "secret-token"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// On disk the value must not be the plaintext
	var raw []byte
	if err := db.QueryRowContext(ctx, `SELECT value FROM credential WHERE key = ?`, KeyAccessToken).Scan(&raw); err != nil {
		t.Fatalf("read raw value: %v", err)
	}
	if string(raw) == "secret-token" {
		t.Error("sealed store persisted the plaintext token")
	}

	got, ok, err := store.Get(ctx, KeyAccessToken)
	if err != nil || !ok || got != "secret-token" {
		t.Errorf("Get() = (%q, %v, %v), want (secret-token, true, nil)", got, ok, err)
	}
}

func TestGetWithWrongSealKeyFails(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	sealerA, _ := NewAEADSealer("000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
	sealerB, _ := NewAEADSealer("ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")

	if err := NewSQLiteStore(db, sealerA).Set(ctx, KeyAccessToken, "tok"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, _, err := NewSQLiteStore(db, sealerB).Get(ctx, KeyAccessToken); err == nil {
		t.Error("Get with a different key succeeded, want unseal failure")
	}
}
