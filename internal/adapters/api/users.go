package api

import (
	"context"
	"fmt"
	"net/http"

	"eventdesk/internal/domain/user"
)

// Account is a user row as served by the admin users endpoint. Role comes
// back either as a nested object or as a bare role_id, depending on the
// backend version; the users controller resolves the display name.
type Account struct {
	ID        int64      `json:"id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	RoleID    string     `json:"role_id,omitempty"`
	Role      *user.Role `json:"role,omitempty"`
}

// AccountPatch carries the editable fields of an account. Password is only
// set on create.
type AccountPatch struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	RoleID    string `json:"role_id"`
}

// ListUsers fetches all user accounts (admin only).
func (c *Client) ListUsers(ctx context.Context) ([]Account, error) {
	var out []Account
	if err := c.do(ctx, http.MethodGet, "/users/", nil, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Account{}
	}
	return out, nil
}

// CreateUser creates an account with an initial role assignment.
func (c *Client) CreateUser(ctx context.Context, candidate user.Candidate) error {
	return c.do(ctx, http.MethodPost, "/users/", nil, candidate, nil)
}

// UpdateUser patches an account, including its role.
func (c *Client) UpdateUser(ctx context.Context, id int64, patch AccountPatch) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/users/%d", id), nil, patch, nil)
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil, nil)
}

// ListRoles fetches the role catalog for the role selector.
func (c *Client) ListRoles(ctx context.Context) ([]user.Role, error) {
	var out []user.Role
	if err := c.do(ctx, http.MethodGet, "/roles/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
