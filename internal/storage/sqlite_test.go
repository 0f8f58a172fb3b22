package storage

import (
	"path/filepath"
	"testing"
)

func testStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("init storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLastUpdateIDDefault(t *testing.T) {
	s := testStorage(t)

	id, err := s.LastUpdateID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 0 {
		t.Errorf("fresh storage should report 0, got %d", id)
	}
}

func TestLastUpdateIDRoundTrip(t *testing.T) {
	s := testStorage(t)

	if err := s.SetLastUpdateID(42); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.SetLastUpdateID(43); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	id, err := s.LastUpdateID()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if id != 43 {
		t.Errorf("want 43, got %d", id)
	}
}

func TestLastReminderDateRoundTrip(t *testing.T) {
	s := testStorage(t)

	date, err := s.LastReminderDate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if date != "" {
		t.Errorf("fresh storage should report empty date, got %q", date)
	}

	if err := s.SetLastReminderDate("2024-03-10"); err != nil {
		t.Fatalf("set: %v", err)
	}

	date, err = s.LastReminderDate()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if date != "2024-03-10" {
		t.Errorf("want 2024-03-10, got %q", date)
	}
}
