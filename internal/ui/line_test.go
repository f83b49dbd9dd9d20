package ui

import "testing"

func TestTitle(t *testing.T) {
	if got := Title("briansbrain"); got != "Briansbrain" {
		t.Fatalf("Title = %q", got)
	}
	if got := Title(""); got != "Arena" {
		t.Fatalf("empty Title = %q", got)
	}
}
