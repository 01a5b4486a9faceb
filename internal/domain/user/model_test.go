package user

import (
	"errors"
	"testing"
)

func TestCandidateValidate(t *testing.T) {
	valid := Candidate{
		FirstName: "María",
		LastName:  "García",
		Email:     "maria@example.com",
		Password:  "secreta123",
	}

	tests := []struct {
		name    string
		mutate  func(c *Candidate)
		wantErr error
	}{
		{"valid", func(c *Candidate) {}, nil},
		{"empty first name", func(c *Candidate) { c.FirstName = " " }, ErrEmptyFirstName},
		{"empty last name", func(c *Candidate) { c.LastName = "" }, ErrEmptyLastName},
		{"empty email", func(c *Candidate) { c.Email = "" }, ErrEmptyEmail},
		{"email without at", func(c *Candidate) { c.Email = "maria.example.com" }, ErrInvalidEmail},
		{"empty password", func(c *Candidate) { c.Password = "" }, ErrEmptyPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			if err := c.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCapabilities(t *testing.T) {
	tests := []struct {
		role        string
		manage      bool
		del         bool
		manageUsers bool
		register    bool
	}{
		{RoleAdmin, true, true, true, false},
		{RoleOrganizer, true, false, false, false},
		{RoleParticipant, false, false, false, true},
		{"", false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			p := Profile{Role: tt.role}
			if got := p.CanManageEvents(); got != tt.manage {
				t.Errorf("CanManageEvents() = %v, want %v", got, tt.manage)
			}
			if got := p.CanDeleteEvents(); got != tt.del {
				t.Errorf("CanDeleteEvents() = %v, want %v", got, tt.del)
			}
			if got := p.CanManageUsers(); got != tt.manageUsers {
				t.Errorf("CanManageUsers() = %v, want %v", got, tt.manageUsers)
			}
			if got := p.CanRegister(); got != tt.register {
				t.Errorf("CanRegister() = %v, want %v", got, tt.register)
			}
		})
	}
}

func TestDisplayNameAndInitials(t *testing.T) {
	tests := []struct {
		first, last  string
		wantName     string
		wantInitials string
	}{
		{"Ana", "Torres", "Ana Torres", "AT"},
		{"Ana", "", "Ana", "A"},
		{"", "", "", ""},
	}
	for _, tt := range tests {
		p := Profile{FirstName: tt.first, LastName: tt.last}
		if got := p.DisplayName(); got != tt.wantName {
			t.Errorf("DisplayName() = %q, want %q", got, tt.wantName)
		}
		if got := p.Initials(); got != tt.wantInitials {
			t.Errorf("Initials() = %q, want %q", got, tt.wantInitials)
		}
	}
}

func TestDefaultRoles(t *testing.T) {
	roles := DefaultRoles()
	if len(roles) != 3 {
		t.Fatalf("DefaultRoles() returned %d roles, want 3", len(roles))
	}
	wantNames := []string{RoleAdmin, RoleOrganizer, RoleParticipant}
	for i, want := range wantNames {
		if roles[i].Name != want {
			t.Errorf("roles[%d].Name = %q, want %q", i, roles[i].Name, want)
		}
		if roles[i].ID == "" {
			t.Errorf("roles[%d].ID is empty", i)
		}
	}
}

func TestIsValidRole(t *testing.T) {
	if !IsValidRole(RoleOrganizer) {
		t.Error("IsValidRole(Organizer) = false")
	}
	if IsValidRole("organizer") {
		t.Error("IsValidRole is case sensitive; lowercase should fail")
	}
}
