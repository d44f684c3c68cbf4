package validation

import (
	"strings"
	"testing"
)

func TestValidateUsername(t *testing.T) {
	cases := []struct {
		username string
		ok       bool
	}{
		{"alice", true},
		{"a.b_c123", true},
		{"ab", false},
		{strings.Repeat("x", 31), false},
		{"bad name", false},
		{"bad!", false},
		{"", false},
	}

	for i, c := range cases {
		err := ValidateUsername(c.username)
		if c.ok && err != nil {
			t.Fatalf("case %d (%q): expected ok, got %v", i, c.username, err)
		}
		if !c.ok && err == nil {
			t.Fatalf("case %d (%q): expected error, got nil", i, c.username)
		}
	}
}

func TestValidateBio(t *testing.T) {
	if err := ValidateBio(strings.Repeat("x", 155)); err != nil {
		t.Fatalf("155 chars must pass: %v", err)
	}
	if err := ValidateBio(strings.Repeat("x", 156)); err == nil {
		t.Fatal("156 chars must fail")
	}
}
