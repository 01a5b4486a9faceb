package registration

// Registration is a participant's claim on an event, as served by the
// backend's my_registrations endpoint. Uniqueness (one registration per user
// per event) is enforced by the backend; the console only reads the set.
type Registration struct {
	EventID      int64  `json:"event_id"`
	Name         string `json:"name"`
	Capacity     int    `json:"capacity"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	RegisteredAt string `json:"registered_at"`
}

// Set answers "is the current user registered for this event" lookups.
type Set []Registration

// ContainsEvent returns true if the set holds a registration for eventID.
// INVARIANT: the set is not mutated
func (s Set) ContainsEvent(eventID int64) bool {
	for _, r := range s {
		if r.EventID == eventID {
			return true
		}
	}
	return false
}
