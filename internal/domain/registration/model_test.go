package registration

import "testing"

func TestContainsEvent(t *testing.T) {
	set := Set{
		{EventID: 1, Name: "Taller de Go"},
		{EventID: 3, Name: "Conferencia"},
	}

	if !set.ContainsEvent(1) || !set.ContainsEvent(3) {
		t.Error("ContainsEvent missed a registered event")
	}
	if set.ContainsEvent(2) {
		t.Error("ContainsEvent(2) = true for an unregistered event")
	}
	if (Set{}).ContainsEvent(1) {
		t.Error("empty set should contain nothing")
	}
}
