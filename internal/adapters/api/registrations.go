package api

import (
	"context"
	"net/http"

	"eventdesk/internal/domain/registration"
)

// MyRegistrations fetches the current user's event registrations.
// PRE: the client has a token for a Participant
// POST: Returns the registration set; never nil on success
func (c *Client) MyRegistrations(ctx context.Context) (registration.Set, error) {
	var out registration.Set
	if err := c.do(ctx, http.MethodGet, "/registrations/my_registrations", nil, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = registration.Set{}
	}
	return out, nil
}

// RegisterForEvent claims a spot on a published event for the current user.
// The backend enforces one registration per user per event.
func (c *Client) RegisterForEvent(ctx context.Context, eventID int64) error {
	in := map[string]int64{"event_id": eventID}
	return c.do(ctx, http.MethodPost, "/registrations/", nil, in, nil)
}
