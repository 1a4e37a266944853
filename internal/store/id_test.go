package store

import (
	"strings"
	"testing"
	"time"
)

func TestSessionIDsSortChronologically(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	earlier := newSessionID(base)
	later := newSessionID(base.Add(time.Second))

	if !(earlier < later) {
		t.Errorf("expected %q to sort before %q", earlier, later)
	}
}

func TestSessionIDsAreUnique(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := newSessionID(now)
		if seen[id] {
			t.Fatalf("duplicate session id %q within the same millisecond", id)
		}
		seen[id] = true
	}
}

func TestSessionCreationTime(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	id := newSessionID(at)

	got, ok := sessionCreationTime(id)
	if !ok {
		t.Fatalf("expected creation time from %q", id)
	}
	if !got.Equal(at) {
		t.Errorf("expected %v, got %v", at, got)
	}

	if _, ok := sessionCreationTime("12345"); ok {
		t.Error("legacy pid ids carry no creation time")
	}
	if _, ok := sessionCreationTime("not-a-session"); ok {
		t.Error("arbitrary strings carry no creation time")
	}
}

func TestLegacyPID(t *testing.T) {
	if pid := legacyPID("12345"); pid != 12345 {
		t.Errorf("expected legacy pid 12345, got %d", pid)
	}
	modern := newSessionID(time.Now())
	if pid := legacyPID(modern); pid != 0 {
		t.Errorf("modern id %q should derive pid 0, got %d", modern, pid)
	}
	if strings.Count(modern, "-") != 1 {
		t.Errorf("unexpected modern id shape: %q", modern)
	}
}
