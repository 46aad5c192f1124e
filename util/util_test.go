package util

import (
	"testing"
)

func TestUIDMatcher(t *testing.T) {
	valid := []string{"alice", "bob-42", "a1b"}
	for _, v := range valid {
		if !UIDMatcher.MatchString(v) {
			t.Errorf("Expected %q to be a valid username", v)
		}
	}
	invalid := []string{"", "A", "-alice", "alice-", "a b"}
	for _, v := range invalid {
		if UIDMatcher.MatchString(v) {
			t.Errorf("Expected %q to be an invalid username", v)
		}
	}
}

func TestConvertStringToInt32(t *testing.T) {
	v, err := ConvertStringToInt32("42")
	if err != nil {
		t.Fatalf("Error converting string: %v", err)
	}
	if v != 42 {
		t.Errorf("Expected 42, got %d", v)
	}
	if _, err := ConvertStringToInt32("foo"); err == nil {
		t.Errorf("Expected error for non-numeric string")
	}
}

func TestRandomString(t *testing.T) {
	s, err := RandomString(32)
	if err != nil {
		t.Fatalf("Error generating random string: %v", err)
	}
	if len(s) != 32 {
		t.Errorf("Expected length 32, got %d", len(s))
	}
}
