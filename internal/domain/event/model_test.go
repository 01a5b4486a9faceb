package event

import (
	"errors"
	"testing"
)

func TestEventValidate(t *testing.T) {
	valid := Event{
		Name:      "Conferencia Go",
		Capacity:  100,
		StartDate: "2026-09-01T09:00:00",
		EndDate:   "2026-09-02T18:00:00",
		Status:    StatusPublished,
	}

	tests := []struct {
		name    string
		mutate  func(e *Event)
		wantErr error
	}{
		{"valid", func(e *Event) {}, nil},
		{"empty name", func(e *Event) { e.Name = "" }, ErrEmptyName},
		{"whitespace name", func(e *Event) { e.Name = "   " }, ErrEmptyName},
		{"negative capacity", func(e *Event) { e.Capacity = -1 }, ErrNegativeCapacity},
		{"zero capacity ok", func(e *Event) { e.Capacity = 0 }, nil},
		{"unknown status", func(e *Event) { e.Status = "archived" }, ErrInvalidStatus},
		{"empty status ok", func(e *Event) { e.Status = "" }, nil},
		{"start after end", func(e *Event) { e.StartDate, e.EndDate = e.EndDate, e.StartDate }, ErrInvalidDates},
		{"start equals end", func(e *Event) { e.EndDate = e.StartDate }, ErrInvalidDates},
		{"missing dates ok", func(e *Event) { e.StartDate, e.EndDate = "", "" }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			if err := e.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSessionValidate(t *testing.T) {
	valid := Session{
		Title:     "Concurrencia en la práctica",
		Speaker:   "Ana Torres",
		Capacity:  40,
		StartTime: "2026-09-01T10:00:00",
		EndTime:   "2026-09-01T11:00:00",
		EventID:   7,
	}

	tests := []struct {
		name    string
		mutate  func(s *Session)
		wantErr error
	}{
		{"valid", func(s *Session) {}, nil},
		{"empty title", func(s *Session) { s.Title = "" }, ErrEmptyTitle},
		{"empty speaker", func(s *Session) { s.Speaker = " " }, ErrEmptySpeaker},
		{"negative capacity", func(s *Session) { s.Capacity = -5 }, ErrNegativeCapacity},
		{"no event", func(s *Session) { s.EventID = 0 }, ErrMissingEvent},
		{"start after end", func(s *Session) { s.StartTime, s.EndTime = s.EndTime, s.StartTime }, ErrInvalidDates},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			if err := s.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestStatusPredicates(t *testing.T) {
	pub := Event{Status: StatusPublished}
	if !pub.IsPublished() || pub.IsCancelled() {
		t.Errorf("published event: IsPublished=%v IsCancelled=%v", pub.IsPublished(), pub.IsCancelled())
	}
	can := Event{Status: StatusCancelled}
	if can.IsPublished() || !can.IsCancelled() {
		t.Errorf("cancelled event: IsPublished=%v IsCancelled=%v", can.IsPublished(), can.IsCancelled())
	}
	draft := Event{Status: StatusDraft}
	if draft.IsPublished() || draft.IsCancelled() {
		t.Errorf("draft event should be neither published nor cancelled")
	}
}
