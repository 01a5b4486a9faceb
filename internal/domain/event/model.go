package event

import (
	"errors"
	"strings"
)

// Event status constants as served by the backend.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusCancelled = "cancelled"
)

// ValidStatuses contains all valid event status values.
var ValidStatuses = []string{StatusDraft, StatusPublished, StatusCancelled}

// Domain errors
var (
	ErrEmptyName        = errors.New("event name cannot be empty")
	ErrNegativeCapacity = errors.New("capacity cannot be negative")
	ErrInvalidStatus    = errors.New("status must be one of: draft, published, cancelled")
	ErrInvalidDates     = errors.New("start date must be before end date")
	ErrEmptyTitle       = errors.New("session title cannot be empty")
	ErrEmptySpeaker     = errors.New("session speaker cannot be empty")
	ErrMissingEvent     = errors.New("session must belong to an event")
)

// Event is a backend-owned event. The console holds a read-mostly cached page
// of these; the backend remains the source of truth. Dates are kept as the
// ISO-8601 strings the backend serves; the console only displays and echoes
// them, it never does date arithmetic.
type Event struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Capacity    int       `json:"capacity"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Status      string    `json:"status"`
	Sessions    []Session `json:"sessions,omitempty"`
}

// Session is a talk or slot within an Event (many-to-one).
type Session struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Speaker     string `json:"speaker"`
	Description string `json:"description,omitempty"`
	Capacity    int    `json:"capacity"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	EventID     int64  `json:"event_id"`
}

// Validate checks event fields before they are submitted to the backend.
// The backend performs the authoritative validation; this rejects submissions
// that would be refused anyway, without a round trip. ISO-8601 date strings
// compare lexicographically, which is what the ordering check relies on.
// PRE: Event struct is populated
// POST: Returns nil if valid, error otherwise
func (e Event) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrEmptyName
	}
	if e.Capacity < 0 {
		return ErrNegativeCapacity
	}
	if e.Status != "" && !isValidStatus(e.Status) {
		return ErrInvalidStatus
	}
	if e.StartDate != "" && e.EndDate != "" && e.StartDate >= e.EndDate {
		return ErrInvalidDates
	}
	return nil
}

// IsPublished returns true if the event accepts registrations.
// INVARIANT: Event fields are not mutated
func (e Event) IsPublished() bool {
	return e.Status == StatusPublished
}

// IsCancelled returns true if the event has been cancelled.
// INVARIANT: Event fields are not mutated
func (e Event) IsCancelled() bool {
	return e.Status == StatusCancelled
}

// Validate checks session fields before they are submitted to the backend.
// PRE: Session struct is populated
// POST: Returns nil if valid, error otherwise
func (s Session) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(s.Speaker) == "" {
		return ErrEmptySpeaker
	}
	if s.Capacity < 0 {
		return ErrNegativeCapacity
	}
	if s.EventID == 0 {
		return ErrMissingEvent
	}
	if s.StartTime != "" && s.EndTime != "" && s.StartTime >= s.EndTime {
		return ErrInvalidDates
	}
	return nil
}

func isValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}
