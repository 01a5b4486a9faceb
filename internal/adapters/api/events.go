package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"eventdesk/internal/domain/event"
)

// EventQuery carries the list parameters for the events endpoint.
type EventQuery struct {
	Term   string
	Limit  int
	Offset int
}

// ListEvents fetches one page of events filtered by the search term.
// PRE: q.Limit > 0, q.Offset >= 0
// POST: Returns the page in backend order; an empty page is a valid result
func (c *Client) ListEvents(ctx context.Context, q EventQuery) ([]event.Event, error) {
	query := url.Values{}
	query.Set("term", q.Term)
	query.Set("limit", strconv.Itoa(q.Limit))
	query.Set("offset", strconv.Itoa(q.Offset))

	var out []event.Event
	if err := c.do(ctx, http.MethodGet, "/events/", query, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []event.Event{}
	}
	return out, nil
}

// CreateEvent creates an event.
func (c *Client) CreateEvent(ctx context.Context, e event.Event) error {
	return c.do(ctx, http.MethodPost, "/events/", nil, e, nil)
}

// UpdateEvent patches an existing event.
func (c *Client) UpdateEvent(ctx context.Context, id int64, e event.Event) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/events/%d", id), nil, e, nil)
}

// CancelEvent marks an event cancelled via its cancel sub-resource.
func (c *Client) CancelEvent(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/events/%d/cancel", id), nil, struct{}{}, nil)
}

// DeleteEvent removes an event permanently.
func (c *Client) DeleteEvent(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/events/%d", id), nil, nil, nil)
}

// CreateSession adds a session to an event.
func (c *Client) CreateSession(ctx context.Context, s event.Session) error {
	return c.do(ctx, http.MethodPost, "/events/sessions/", nil, s, nil)
}

// UpdateSession patches an existing session.
func (c *Client) UpdateSession(ctx context.Context, id int64, s event.Session) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/events/sessions/%d", id), nil, s, nil)
}

// DeleteSession removes a session.
func (c *Client) DeleteSession(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/events/sessions/%d", id), nil, nil, nil)
}
