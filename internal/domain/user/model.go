package user

import (
	"errors"
	"strings"
)

// Max length constants for user-editable fields.
const (
	MaxEmailLength = 254
	MaxNameLength  = 100
)

// Role constants as issued by the backend.
const (
	RoleAdmin       = "Admin"
	RoleOrganizer   = "Organizer"
	RoleParticipant = "Participant"
)

// ValidRoles contains all valid role values.
var ValidRoles = []string{RoleAdmin, RoleOrganizer, RoleParticipant}

// Domain errors
var (
	ErrEmptyEmail     = errors.New("email cannot be empty")
	ErrInvalidEmail   = errors.New("email must contain '@'")
	ErrEmptyFirstName = errors.New("first name cannot be empty")
	ErrEmptyLastName  = errors.New("last name cannot be empty")
	ErrEmptyPassword  = errors.New("password cannot be empty")
)

// Profile is the identity derived from the access token. It is never
// mutated independently of the token it was decoded from.
type Profile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Candidate carries the fields submitted to create an account, either via
// self-registration or the admin user table.
type Candidate struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	RoleID    string `json:"role_id,omitempty"`
}

// Validate checks a Candidate before it is sent to the backend. The backend
// performs the authoritative validation; this only rejects obviously empty
// submissions so the form can fail fast without a round trip.
// PRE: Candidate struct is populated
// POST: Returns nil if plausible, error otherwise
func (c *Candidate) Validate() error {
	if strings.TrimSpace(c.FirstName) == "" {
		return ErrEmptyFirstName
	}
	if strings.TrimSpace(c.LastName) == "" {
		return ErrEmptyLastName
	}
	if strings.TrimSpace(c.Email) == "" {
		return ErrEmptyEmail
	}
	if !strings.Contains(c.Email, "@") {
		return ErrInvalidEmail
	}
	if c.Password == "" {
		return ErrEmptyPassword
	}
	return nil
}

// DisplayName returns "First Last" for table rendering.
// INVARIANT: Profile fields are not mutated
func (p Profile) DisplayName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Initials returns up to two letters for the avatar badge.
// INVARIANT: Profile fields are not mutated
func (p Profile) Initials() string {
	var b strings.Builder
	if p.FirstName != "" {
		b.WriteString(p.FirstName[:1])
	}
	if p.LastName != "" {
		b.WriteString(p.LastName[:1])
	}
	return strings.ToUpper(b.String())
}

// IsAdmin returns true if the profile has the Admin role.
// INVARIANT: Profile fields are not mutated
func (p Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanManageEvents returns true if the profile may create, edit and cancel
// events and their sessions. Admin capabilities are a superset of Organizer's.
// INVARIANT: Profile fields are not mutated
func (p Profile) CanManageEvents() bool {
	return p.Role == RoleAdmin || p.Role == RoleOrganizer
}

// CanDeleteEvents returns true if the profile may hard-delete events and
// sessions. Organizers only get cancel, not delete.
// INVARIANT: Profile fields are not mutated
func (p Profile) CanDeleteEvents() bool {
	return p.Role == RoleAdmin
}

// CanManageUsers returns true if the profile may reach the user table.
// INVARIANT: Profile fields are not mutated
func (p Profile) CanManageUsers() bool {
	return p.Role == RoleAdmin
}

// CanRegister returns true if the profile may register for published events.
// INVARIANT: Profile fields are not mutated
func (p Profile) CanRegister() bool {
	return p.Role == RoleParticipant
}

// Role is a role record as served by the backend's role catalog.
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DefaultRoles is the fallback role catalog used when the backend's role
// endpoint is unavailable, so the role selector stays usable.
func DefaultRoles() []Role {
	return []Role{
		{ID: "admin", Name: RoleAdmin},
		{ID: "organizer", Name: RoleOrganizer},
		{ID: "participant", Name: RoleParticipant},
	}
}

// IsValidRole reports whether role is one of the known role values.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
