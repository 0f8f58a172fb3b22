package domain

import (
	"testing"
	"time"
)

var cet = time.FixedZone("CET", 3600)

func TestWindowForToday(t *testing.T) {
	// 2024-03-10 is a Sunday.
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, cet)
	w := WindowFor(WindowToday, now)

	if !w.Start.Equal(now) {
		t.Errorf("today window should start at now, got %v", w.Start)
	}
	want := time.Date(2024, 3, 10, 23, 59, 59, 0, cet)
	if !w.End.Equal(want) {
		t.Errorf("today window should end at %v, got %v", want, w.End)
	}
	if !w.Bounded() {
		t.Error("today window should be bounded")
	}
}

func TestWindowForTomorrow(t *testing.T) {
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, cet)
	w := WindowFor(WindowTomorrow, now)

	wantStart := time.Date(2024, 3, 11, 0, 0, 0, 0, cet)
	wantEnd := time.Date(2024, 3, 11, 23, 59, 59, 0, cet)
	if !w.Start.Equal(wantStart) {
		t.Errorf("tomorrow window should start at %v, got %v", wantStart, w.Start)
	}
	if !w.End.Equal(wantEnd) {
		t.Errorf("tomorrow window should end at %v, got %v", wantEnd, w.End)
	}
}

func TestWindowForTomorrowCrossesMonthEnd(t *testing.T) {
	now := time.Date(2024, 2, 29, 22, 0, 0, 0, cet)
	w := WindowFor(WindowTomorrow, now)

	wantStart := time.Date(2024, 3, 1, 0, 0, 0, 0, cet)
	if !w.Start.Equal(wantStart) {
		t.Errorf("tomorrow window should start at %v, got %v", wantStart, w.Start)
	}
}

func TestWindowForWeekEndsOnSunday(t *testing.T) {
	// Wednesday.
	now := time.Date(2024, 3, 6, 14, 30, 0, 0, cet)
	w := WindowFor(WindowWeek, now)

	if !w.Start.Equal(now) {
		t.Errorf("week window should start at now, got %v", w.Start)
	}
	want := time.Date(2024, 3, 10, 23, 59, 59, 0, cet)
	if !w.End.Equal(want) {
		t.Errorf("week window should end Sunday %v, got %v", want, w.End)
	}
}

func TestWindowForWeekOnSunday(t *testing.T) {
	// On a Sunday the week window ends the same day.
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, cet)
	w := WindowFor(WindowWeek, now)

	want := time.Date(2024, 3, 10, 23, 59, 59, 0, cet)
	if !w.End.Equal(want) {
		t.Errorf("week window on Sunday should end %v, got %v", want, w.End)
	}
}

func TestWindowForNextIsUnbounded(t *testing.T) {
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, cet)
	w := WindowFor(WindowNext, now)

	if w.Bounded() {
		t.Error("next window should be unbounded")
	}
	if !w.Start.Equal(now) {
		t.Errorf("next window should start at now, got %v", w.Start)
	}
}

func TestWindowForRecomputedAcrossMidnight(t *testing.T) {
	before := time.Date(2024, 3, 10, 23, 59, 0, 0, cet)
	after := time.Date(2024, 3, 11, 0, 1, 0, 0, cet)

	wBefore := WindowFor(WindowToday, before)
	wAfter := WindowFor(WindowToday, after)

	if wBefore.End.Day() == wAfter.End.Day() {
		t.Error("today window should move after midnight")
	}
}
