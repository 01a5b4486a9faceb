package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"eventdesk/internal/adapters/api"
	"eventdesk/internal/adapters/storage/credential"
	"eventdesk/internal/application/token"
	"eventdesk/internal/domain/user"
)

// AuthAPI is the slice of the backend client the session store needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, candidate user.Candidate) (json.RawMessage, error)
}

// Decoder turns an access token into a profile. token.Decode outside tests.
type Decoder func(tok string) (user.Profile, error)

// Session is the current authenticated state: a token and the profile
// derived from it. They are set and cleared together, never independently.
type Session struct {
	Token string
	User  user.Profile
}

// Store owns the operator's session. It is the only writer of the persisted
// token, and every authenticated call reads the token through it.
type Store struct {
	mu    sync.RWMutex
	cur   Session
	creds credential.Store
	auth  AuthAPI
	dec   Decoder
}

// ErrInvalidCredentials is returned when the backend rejects a login or the
// returned token cannot be decoded.
var ErrInvalidCredentials = errors.New("usuario o contraseña incorrecta")

// NewStore creates a session store. A nil decoder uses token.Decode.
// PRE: creds and auth are non-nil
// POST: Returns a logged-out store; call Restore to seed from storage
func NewStore(creds credential.Store, auth AuthAPI, dec Decoder) *Store {
	if dec == nil {
		dec = token.Decode
	}
	return &Store{creds: creds, auth: auth, dec: dec}
}

// SetAuthAPI wires the backend client after construction. The client reads
// its bearer token through the store, so the two are built in sequence.
func (s *Store) SetAuthAPI(auth AuthAPI) {
	s.auth = auth
}

// Login exchanges credentials for a session. A token that cannot be decoded
// fails the whole operation: no partial session, nothing persisted.
// PRE: email and password are non-empty
// POST: On success the session is in memory and on disk; on failure state is untouched
func (s *Store) Login(ctx context.Context, email, password string) (user.Profile, error) {
	tok, err := s.auth.Login(ctx, email, password)
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", email)
		if errors.Is(err, api.ErrUnauthorized) {
			return user.Profile{}, ErrInvalidCredentials
		}
		var re *api.RequestError
		if errors.As(err, &re) && re.Detail != "" {
			return user.Profile{}, fmt.Errorf("%w: %s", ErrInvalidCredentials, re.Detail)
		}
		return user.Profile{}, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	profile, err := s.dec(tok)
	if err != nil {
		slog.Warn("auth_event", "event", "login_decode_failed", "email", email, "error", err)
		return user.Profile{}, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	data, err := json.Marshal(profile)
	if err != nil {
		return user.Profile{}, err
	}
	if err := s.creds.Set(ctx, credential.KeyAccessToken, tok); err != nil {
		return user.Profile{}, fmt.Errorf("persist token: %w", err)
	}
	if err := s.creds.Set(ctx, credential.KeyUserData, string(data)); err != nil {
		// Leave no half-written session behind.
		_ = s.creds.Clear(ctx)
		return user.Profile{}, fmt.Errorf("persist profile: %w", err)
	}

	s.mu.Lock()
	s.cur = Session{Token: tok, User: profile}
	s.mu.Unlock()

	slog.Info("auth_event", "event", "login_success", "email", profile.Email, "role", profile.Role)
	return profile, nil
}

// Register forwards a candidate profile to the backend. It does not log the
// user in; validation failures come back as api.ValidationError.
func (s *Store) Register(ctx context.Context, candidate user.Candidate) (json.RawMessage, error) {
	resp, err := s.auth.Register(ctx, candidate)
	if err != nil {
		slog.Info("auth_event", "event", "register_failed", "email", candidate.Email)
		return nil, err
	}
	slog.Info("auth_event", "event", "register_success", "email", candidate.Email)
	return resp, nil
}

// Logout clears persisted and in-memory state unconditionally. Idempotent.
// POST: Token and user are absent, storage holds no credentials
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	wasLoggedIn := s.cur.Token != ""
	s.cur = Session{}
	s.mu.Unlock()

	if err := s.creds.Clear(ctx); err != nil {
		slog.Warn("auth_event", "event", "logout_clear_failed", "error", err)
	}
	if wasLoggedIn {
		slog.Info("auth_event", "event", "logout")
	}
}

// Restore seeds the session from persisted storage at startup. Missing or
// unreadable values leave the store logged out and clear partial leftovers.
// POST: Either a complete session is loaded or state is fully logged out
func (s *Store) Restore(ctx context.Context) {
	tok, okTok, err := s.creds.Get(ctx, credential.KeyAccessToken)
	if err != nil {
		slog.Warn("auth_event", "event", "restore_failed", "error", err)
		return
	}
	data, okData, err := s.creds.Get(ctx, credential.KeyUserData)
	if err != nil {
		slog.Warn("auth_event", "event", "restore_failed", "error", err)
		return
	}
	if !okTok || !okData {
		if okTok || okData {
			_ = s.creds.Clear(ctx)
		}
		return
	}

	var profile user.Profile
	if err := json.Unmarshal([]byte(data), &profile); err != nil {
		slog.Warn("auth_event", "event", "restore_corrupt", "error", err)
		_ = s.creds.Clear(ctx)
		return
	}

	s.mu.Lock()
	s.cur = Session{Token: tok, User: profile}
	s.mu.Unlock()
	slog.Info("auth_event", "event", "session_restored", "email", profile.Email, "role", profile.Role)
}

// Current returns the session when one is active.
// INVARIANT: the returned copy shares no state with the store
func (s *Store) Current() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cur.Token == "" {
		return Session{}, false
	}
	return s.cur, true
}

// Token returns the current access token, or "" when logged out. Satisfies
// api.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Token
}

// Authenticated reports whether a session is active.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Token != ""
}

// CanRegister reports whether the current user may register for events.
func (s *Store) CanRegister() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Token != "" && s.cur.User.CanRegister()
}

// HandleUnauthorized ends the session after a 401-class backend response.
// A 401 anywhere forcibly logs the operator out.
func (s *Store) HandleUnauthorized(ctx context.Context) {
	slog.Info("auth_event", "event", "session_expired")
	s.Logout(ctx)
}
