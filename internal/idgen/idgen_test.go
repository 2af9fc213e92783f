package idgen

import (
	"regexp"
	"strings"
	"testing"
)

func TestNewEventID_Shape(t *testing.T) {
	id, err := NewEventID()
	if err != nil {
		t.Fatalf("NewEventID() error: %v", err)
	}
	wantLen := len(EventPrefix) + Length
	if len(id) != wantLen {
		t.Errorf("NewEventID() length = %d, want %d (id=%q)", len(id), wantLen, id)
	}
	if !strings.HasPrefix(id, EventPrefix) {
		t.Errorf("NewEventID() = %q, want prefix %q", id, EventPrefix)
	}
}

func TestNewUserID_Prefix(t *testing.T) {
	id, err := NewUserID()
	if err != nil {
		t.Fatalf("NewUserID() error: %v", err)
	}
	if !strings.HasPrefix(id, UserPrefix) {
		t.Errorf("NewUserID() = %q, want prefix %q", id, UserPrefix)
	}
}

func TestGenerateWithPrefix_Charset(t *testing.T) {
	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(EventPrefix) + `[a-zA-Z0-9]+$`)
	for i := 0; i < 100; i++ {
		id, err := GenerateWithPrefix(EventPrefix)
		if err != nil {
			t.Fatalf("GenerateWithPrefix() error on iteration %d: %v", i, err)
		}
		if !pattern.MatchString(id) {
			t.Fatalf("GenerateWithPrefix() = %q, does not match expected charset pattern", id)
		}
	}
}

func TestNewSecret_Length(t *testing.T) {
	s, err := NewSecret()
	if err != nil {
		t.Fatalf("NewSecret() error: %v", err)
	}
	if len(s) != 40 {
		t.Errorf("NewSecret() length = %d, want 40", len(s))
	}
}
