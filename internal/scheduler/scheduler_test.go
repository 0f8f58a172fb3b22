package scheduler

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/fkaiser/morningsync/config"
	"github.com/fkaiser/morningsync/internal/domain"
)

var cet = time.FixedZone("CET", 3600)

type mockState struct {
	lastDate string
	setCalls int
	err      error
}

func (m *mockState) LastReminderDate() (string, error) {
	return m.lastDate, m.err
}

func (m *mockState) SetLastReminderDate(date string) error {
	m.setCalls++
	m.lastDate = date
	return nil
}

type mockAgenda struct {
	events []domain.Event
	err    error
}

func (m *mockAgenda) Events(ctx context.Context, window domain.Window) ([]domain.Event, error) {
	return m.events, m.err
}

type mockSender struct {
	sent []string
	err  error
}

func (m *mockSender) SendMessage(text string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, text)
	return nil
}

func testScheduler(state *mockState, agenda *mockAgenda, sender *mockSender, now time.Time) *Scheduler {
	return &Scheduler{
		cfg: &config.Config{
			Timezone:     cet,
			ReminderTime: "07:00",
		},
		state:  state,
		agenda: agenda,
		sender: sender,
		now:    func() time.Time { return now },
	}
}

func TestReminderDue(t *testing.T) {
	cases := []struct {
		now  time.Time
		want bool
	}{
		{time.Date(2024, 3, 10, 6, 59, 0, 0, cet), false},
		{time.Date(2024, 3, 10, 7, 0, 0, 0, cet), true},
		{time.Date(2024, 3, 10, 12, 0, 0, 0, cet), true},
	}

	for _, c := range cases {
		got, err := reminderDue(c.now, "07:00")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != c.want {
			t.Errorf("%v: want %v, got %v", c.now, c.want, got)
		}
	}

	if _, err := reminderDue(time.Now(), "7 o'clock"); err == nil {
		t.Error("expected error for malformed clock value")
	}
}

func TestCheckReminderFiresOncePerDay(t *testing.T) {
	state := &mockState{}
	sender := &mockSender{}
	agenda := &mockAgenda{
		events: []domain.Event{
			{Start: time.Date(2024, 3, 10, 9, 0, 0, 0, cet), Summary: "Standup"},
		},
	}
	s := testScheduler(state, agenda, sender, time.Date(2024, 3, 10, 7, 0, 30, 0, cet))

	s.checkReminder()
	s.checkReminder()

	if len(sender.sent) != 1 {
		t.Fatalf("expected exactly one reminder, got %d", len(sender.sent))
	}
	if state.lastDate != "2024-03-10" {
		t.Errorf("last reminder date not recorded: %q", state.lastDate)
	}

	if !strings.Contains(sender.sent[0], "Guten Morgen") {
		t.Errorf("missing greeting:\n%s", sender.sent[0])
	}
	if !strings.Contains(sender.sent[0], "Standup") {
		t.Errorf("missing agenda:\n%s", sender.sent[0])
	}
}

func TestCheckReminderNotYetDue(t *testing.T) {
	state := &mockState{}
	sender := &mockSender{}
	s := testScheduler(state, &mockAgenda{}, sender, time.Date(2024, 3, 10, 6, 30, 0, 0, cet))

	s.checkReminder()

	if len(sender.sent) != 0 {
		t.Error("reminder fired before the configured time")
	}
	if state.setCalls != 0 {
		t.Error("date marker must not be written before firing")
	}
}

func TestCheckReminderSendFailureKeepsDate(t *testing.T) {
	state := &mockState{}
	sender := &mockSender{err: fmt.Errorf("transport down")}
	s := testScheduler(state, &mockAgenda{}, sender, time.Date(2024, 3, 10, 7, 5, 0, 0, cet))

	s.checkReminder()

	// The marker is only advanced after a successful send, so the next
	// tick retries.
	if state.setCalls != 0 {
		t.Error("date marker must not advance on send failure")
	}
}

func TestCheckReminderCrossesToNextDay(t *testing.T) {
	state := &mockState{lastDate: "2024-03-09"}
	sender := &mockSender{}
	s := testScheduler(state, &mockAgenda{}, sender, time.Date(2024, 3, 10, 7, 0, 0, 0, cet))

	s.checkReminder()

	if len(sender.sent) != 1 {
		t.Fatalf("a new day should fire again, got %d sends", len(sender.sent))
	}
	if state.lastDate != "2024-03-10" {
		t.Errorf("marker should move to the new day, got %q", state.lastDate)
	}
}

func TestCheckReminderEmptyAgenda(t *testing.T) {
	state := &mockState{}
	sender := &mockSender{}
	s := testScheduler(state, &mockAgenda{}, sender, time.Date(2024, 3, 10, 7, 0, 0, 0, cet))

	s.checkReminder()

	if len(sender.sent) != 1 {
		t.Fatalf("expected one reminder, got %d", len(sender.sent))
	}
	if !strings.Contains(sender.sent[0], "Keine Termine für heute.") {
		t.Errorf("empty day should carry the fixed sentence:\n%s", sender.sent[0])
	}
}
