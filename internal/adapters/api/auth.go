package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"eventdesk/internal/domain/user"
)

// ErrNoToken indicates the login response carried neither an access_token
// nor an access field.
var ErrNoToken = errors.New("login response contained no access token")

// LoginResponse covers both token shapes the backend may return:
// {access_token} or {access, refresh}.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Access      string `json:"access"`
	Refresh     string `json:"refresh"`
}

// Token returns the usable access token from either response shape.
func (r LoginResponse) Token() string {
	if r.AccessToken != "" {
		return r.AccessToken
	}
	return r.Access
}

// Login exchanges credentials for an access token.
// PRE: email and password are non-empty
// POST: Returns the raw token on success; the caller decodes it
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	in := map[string]string{"email": email, "password": password}
	var out LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, in, &out); err != nil {
		return "", err
	}
	if out.Token() == "" {
		return "", ErrNoToken
	}
	return out.Token(), nil
}

// Register forwards a candidate profile to the backend. It does not log the
// user in. Structured validation failures come back as ValidationError.
// PRE: candidate has been through Candidate.Validate
// POST: Returns the backend's created-profile payload verbatim
func (c *Client) Register(ctx context.Context, candidate user.Candidate) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, candidate, &out); err != nil {
		return nil, err
	}
	return out, nil
}
