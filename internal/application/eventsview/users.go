package eventsview

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"eventdesk/internal/adapters/api"
	"eventdesk/internal/domain/user"
)

// UsersAPI is the slice of the backend client the users controller needs.
type UsersAPI interface {
	ListUsers(ctx context.Context) ([]api.Account, error)
	CreateUser(ctx context.Context, candidate user.Candidate) error
	UpdateUser(ctx context.Context, id int64, patch api.AccountPatch) error
	DeleteUser(ctx context.Context, id int64) error
	ListRoles(ctx context.Context) ([]user.Role, error)
}

// UsersState is a copy of the users view state, safe for rendering.
type UsersState struct {
	Users []api.Account
	Roles []user.Role
	Err   string
}

// UsersController manages the admin-only user roster and the role catalog.
// As with events, mutations never patch locally; they refetch.
type UsersController struct {
	mu   sync.Mutex
	api  UsersAPI
	sess SessionState

	users  []api.Account
	roles  []user.Role
	errMsg string
}

// NewUsersController creates a users controller with an empty roster.
func NewUsersController(apiClient UsersAPI, sess SessionState) *UsersController {
	return &UsersController{api: apiClient, sess: sess}
}

// Refresh refetches the full user roster.
func (c *UsersController) Refresh(ctx context.Context) error {
	users, err := c.api.ListUsers(ctx)
	c.mu.Lock()
	if err != nil {
		unauthorized := errors.Is(err, api.ErrUnauthorized)
		if !unauthorized {
			c.errMsg = api.Detail(err, "Error cargando usuarios")
		}
		c.mu.Unlock()
		if unauthorized {
			c.sess.HandleUnauthorized(ctx)
		}
		slog.Warn("users_fetch_failed", "error", err)
		return err
	}
	c.users = users
	c.errMsg = ""
	c.mu.Unlock()
	return nil
}

// LoadRoles fetches the role catalog for the user form's role selector.
// When the roles endpoint is missing or failing, the selector still has to
// render, so a fixed catalog of the three known roles stands in.
func (c *UsersController) LoadRoles(ctx context.Context) {
	roles, err := c.api.ListRoles(ctx)
	if err != nil || len(roles) == 0 {
		if errors.Is(err, api.ErrUnauthorized) {
			c.sess.HandleUnauthorized(ctx)
			return
		}
		slog.Warn("roles_fetch_failed", "error", err)
		roles = user.DefaultRoles()
	}
	c.mu.Lock()
	c.roles = roles
	c.mu.Unlock()
}

// CreateUser creates an account, then refetches the roster.
func (c *UsersController) CreateUser(ctx context.Context, candidate user.Candidate) error {
	if err := candidate.Validate(); err != nil {
		return err
	}
	return c.mutate(ctx, func() error { return c.api.CreateUser(ctx, candidate) })
}

// UpdateUser patches an account, then refetches the roster.
func (c *UsersController) UpdateUser(ctx context.Context, id int64, patch api.AccountPatch) error {
	return c.mutate(ctx, func() error { return c.api.UpdateUser(ctx, id, patch) })
}

// DeleteUser removes an account, then refetches the roster. The
// confirmation step happens in the UI before this is called.
func (c *UsersController) DeleteUser(ctx context.Context, id int64) error {
	return c.mutate(ctx, func() error { return c.api.DeleteUser(ctx, id) })
}

// Snapshot returns a copy of the users view state for rendering.
func (c *UsersController) Snapshot() UsersState {
	c.mu.Lock()
	defer c.mu.Unlock()
	users := make([]api.Account, len(c.users))
	copy(users, c.users)
	roles := make([]user.Role, len(c.roles))
	copy(roles, c.roles)
	return UsersState{Users: users, Roles: roles, Err: c.errMsg}
}

func (c *UsersController) mutate(ctx context.Context, call func() error) error {
	if err := call(); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			c.sess.HandleUnauthorized(ctx)
		}
		return err
	}
	return c.Refresh(ctx)
}
