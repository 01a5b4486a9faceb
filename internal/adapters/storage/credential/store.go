package credential

import "context"

// Well-known keys. KeyAccessToken holds the raw bearer token; KeyUserData
// holds the decoded profile as JSON. They are always cleared together.
const (
	KeyAccessToken = "access_token"
	KeyUserData    = "user_data"
)

// Store persists the console's credentials between runs, the way a browser
// client would use localStorage.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// Clear removes every persisted credential.
	Clear(ctx context.Context) error
}
