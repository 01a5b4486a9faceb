package eventsview

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"eventdesk/internal/adapters/api"
	"eventdesk/internal/application/listutil"
	"eventdesk/internal/domain/event"
	"eventdesk/internal/domain/registration"
)

// EventsAPI is the slice of the backend client the events controller needs.
type EventsAPI interface {
	ListEvents(ctx context.Context, q api.EventQuery) ([]event.Event, error)
	CreateEvent(ctx context.Context, e event.Event) error
	UpdateEvent(ctx context.Context, id int64, e event.Event) error
	CancelEvent(ctx context.Context, id int64) error
	DeleteEvent(ctx context.Context, id int64) error
	CreateSession(ctx context.Context, s event.Session) error
	UpdateSession(ctx context.Context, id int64, s event.Session) error
	DeleteSession(ctx context.Context, id int64) error
	MyRegistrations(ctx context.Context) (registration.Set, error)
	RegisterForEvent(ctx context.Context, eventID int64) error
}

// SessionState is the slice of the session store the controllers need.
type SessionState interface {
	Authenticated() bool
	CanRegister() bool
	HandleUnauthorized(ctx context.Context)
}

// DefaultDebounce is the quiet period after the last keystroke before a
// search fetch is issued.
const DefaultDebounce = 500 * time.Millisecond

// ErrListFailed is the fallback message when the backend gives no detail.
var ErrListFailed = errors.New("Error cargando eventos")

// State is a copy of the controller's view state, safe for rendering.
type State struct {
	Term          string
	Offset        int
	Limit         int
	Page          int
	HasPrev       bool
	LikelyLast    bool
	Events        []event.Event
	Registrations registration.Set
	Err           string
}

// Controller orchestrates the events list: debounced search, offset
// pagination, refetch-after-mutation and the participant registration set.
// There is no incremental local patching; every mutation re-queries the
// backend's authoritative state.
type Controller struct {
	mu       sync.Mutex
	api      EventsAPI
	sess     SessionState
	debounce time.Duration

	term   string
	offset int
	events []event.Event
	regs   registration.Set
	errMsg string

	// seq orders fetches; a response is applied only while its sequence is
	// still the latest, so a slow stale response never overwrites a fresh one.
	seq   uint64
	timer *time.Timer
}

// NewController creates an events controller. debounce <= 0 uses the default.
// PRE: apiClient and sess are non-nil
// POST: Returns a controller with an empty list; call Refresh to populate
func NewController(apiClient EventsAPI, sess SessionState, debounce time.Duration) *Controller {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Controller{api: apiClient, sess: sess, debounce: debounce}
}

// Search records a new term, resets the offset and re-arms the debounce
// timer. Once input has been quiet for the debounce period, exactly one
// fetch runs, parameterized by the final term.
func (c *Controller) Search(term string) {
	c.mu.Lock()
	c.term = term
	c.offset = 0
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, func() {
		_ = c.Refresh(context.Background())
	})
	c.mu.Unlock()
}

// SetQuery sets the term and offset without debouncing. Full page loads use
// this path: the navigation itself already ended the quiet period.
func (c *Controller) SetQuery(term string, offset int) {
	c.mu.Lock()
	if term != c.term {
		c.offset = 0
	} else {
		c.offset = listutil.ClampOffset(offset)
	}
	c.term = term
	c.mu.Unlock()
}

// NextPage advances one page and refetches. There is no upper clamp; an
// empty page is a valid, displayed result.
func (c *Controller) NextPage(ctx context.Context) error {
	c.mu.Lock()
	c.offset = listutil.NextOffset(c.offset)
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// PrevPage goes back one page, never below offset 0, and refetches.
func (c *Controller) PrevPage(ctx context.Context) error {
	c.mu.Lock()
	c.offset = listutil.PrevOffset(c.offset)
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// Refresh issues one authenticated fetch for the current term and offset.
// Success replaces the list and clears the error; a 401 forcibly ends the
// session; any other failure sets the error message and leaves the prior
// list unchanged.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.seq++
	mySeq := c.seq
	q := api.EventQuery{Term: c.term, Limit: listutil.PageSize, Offset: c.offset}
	c.mu.Unlock()

	events, err := c.api.ListEvents(ctx, q)

	c.mu.Lock()
	if mySeq != c.seq {
		// A newer fetch superseded this one; its response wins.
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		unauthorized := errors.Is(err, api.ErrUnauthorized)
		if !unauthorized {
			c.errMsg = api.Detail(err, ErrListFailed.Error())
		}
		c.mu.Unlock()
		if unauthorized {
			c.sess.HandleUnauthorized(ctx)
		}
		slog.Warn("events_fetch_failed", "term", q.Term, "offset", q.Offset, "error", err)
		return err
	}
	c.events = events
	c.errMsg = ""
	c.mu.Unlock()
	return nil
}

// RefreshRegistrations fetches the participant's registration set. Callers
// with any other role get a no-op: the endpoint is participant-only.
func (c *Controller) RefreshRegistrations(ctx context.Context) error {
	if !c.sess.CanRegister() {
		return nil
	}
	regs, err := c.api.MyRegistrations(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			c.sess.HandleUnauthorized(ctx)
		}
		slog.Warn("registrations_fetch_failed", "error", err)
		return err
	}
	c.mu.Lock()
	c.regs = regs
	c.mu.Unlock()
	return nil
}

// IsRegistered reports whether the current user already holds a
// registration for the event.
func (c *Controller) IsRegistered(eventID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.regs.ContainsEvent(eventID)
}

// CreateEvent creates an event, then refetches the list.
func (c *Controller) CreateEvent(ctx context.Context, e event.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}
	return c.mutate(ctx, func() error { return c.api.CreateEvent(ctx, e) })
}

// UpdateEvent patches an event, then refetches the list.
func (c *Controller) UpdateEvent(ctx context.Context, id int64, e event.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}
	return c.mutate(ctx, func() error { return c.api.UpdateEvent(ctx, id, e) })
}

// CancelEvent cancels an event, then refetches the list. The confirmation
// step happens in the UI before this is called.
func (c *Controller) CancelEvent(ctx context.Context, id int64) error {
	return c.mutate(ctx, func() error { return c.api.CancelEvent(ctx, id) })
}

// DeleteEvent removes an event, then refetches the list.
func (c *Controller) DeleteEvent(ctx context.Context, id int64) error {
	return c.mutate(ctx, func() error { return c.api.DeleteEvent(ctx, id) })
}

// CreateSession adds a session to an event, then refetches the list.
func (c *Controller) CreateSession(ctx context.Context, s event.Session) error {
	if err := s.Validate(); err != nil {
		return err
	}
	return c.mutate(ctx, func() error { return c.api.CreateSession(ctx, s) })
}

// UpdateSession patches a session, then refetches the list.
func (c *Controller) UpdateSession(ctx context.Context, id int64, s event.Session) error {
	if err := s.Validate(); err != nil {
		return err
	}
	return c.mutate(ctx, func() error { return c.api.UpdateSession(ctx, id, s) })
}

// DeleteSession removes a session, then refetches the list.
func (c *Controller) DeleteSession(ctx context.Context, id int64) error {
	return c.mutate(ctx, func() error { return c.api.DeleteSession(ctx, id) })
}

// RegisterForEvent claims a spot on an event, then refetches both the
// registration set and the event list.
func (c *Controller) RegisterForEvent(ctx context.Context, eventID int64) error {
	err := c.api.RegisterForEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			c.sess.HandleUnauthorized(ctx)
		}
		return err
	}
	_ = c.RefreshRegistrations(ctx)
	return c.Refresh(ctx)
}

// Snapshot returns a copy of the view state for rendering.
// INVARIANT: the copy shares no mutable state with the controller
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	events := make([]event.Event, len(c.events))
	copy(events, c.events)
	for i := range events {
		if len(events[i].Sessions) == 0 {
			continue
		}
		sessions := make([]event.Session, len(events[i].Sessions))
		copy(sessions, events[i].Sessions)
		events[i].Sessions = sessions
	}
	regs := make(registration.Set, len(c.regs))
	copy(regs, c.regs)
	return State{
		Term:          c.term,
		Offset:        c.offset,
		Limit:         listutil.PageSize,
		Page:          listutil.PageNumber(c.offset),
		HasPrev:       listutil.HasPrev(c.offset),
		LikelyLast:    listutil.LikelyLastPage(len(c.events)),
		Events:        events,
		Registrations: regs,
		Err:           c.errMsg,
	}
}

// mutate runs one backend call and, on success, unconditionally refetches.
// Failures map 401 to a forced logout and return the error for the caller's
// banner or modal; the list is left untouched.
func (c *Controller) mutate(ctx context.Context, call func() error) error {
	if err := call(); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			c.sess.HandleUnauthorized(ctx)
		}
		return err
	}
	return c.Refresh(ctx)
}
