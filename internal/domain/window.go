package domain

import "time"

// WindowKind names one of the supported query ranges.
type WindowKind string

const (
	WindowToday    WindowKind = "today"
	WindowTomorrow WindowKind = "tomorrow"
	WindowWeek     WindowKind = "week"
	WindowNext     WindowKind = "next"
)

// Window is a query range for event selection. End is the last
// representable second of the boundary day. The "next" kind has a zero
// End and is capped by result count instead of time.
type Window struct {
	Kind  WindowKind
	Start time.Time
	End   time.Time
}

// Bounded reports whether the window has an upper bound.
func (w Window) Bounded() bool {
	return !w.End.IsZero()
}

// WindowFor computes the query range for kind, anchored at now. All
// boundary math happens in now's location. The window is computed
// fresh on every call, so crossing midnight between calls moves it.
//
// The week window runs from now through the end of the current ISO
// week (Sunday 23:59:59), matching the "Termine für die Woche" label.
func WindowFor(kind WindowKind, now time.Time) Window {
	loc := now.Location()

	switch kind {
	case WindowTomorrow:
		t := now.AddDate(0, 0, 1)
		y, m, d := t.Date()
		return Window{
			Kind:  kind,
			Start: time.Date(y, m, d, 0, 0, 0, 0, loc),
			End:   time.Date(y, m, d, 23, 59, 59, 0, loc),
		}
	case WindowWeek:
		// Go counts weekdays from Sunday, so this is 0 on Sundays and
		// the window ends the same day.
		untilSunday := (7 - int(now.Weekday())) % 7
		e := now.AddDate(0, 0, untilSunday)
		y, m, d := e.Date()
		return Window{
			Kind:  kind,
			Start: now,
			End:   time.Date(y, m, d, 23, 59, 59, 0, loc),
		}
	case WindowNext:
		return Window{Kind: kind, Start: now}
	default:
		// Today: from the current instant, not midnight. The view is
		// "remaining events today".
		y, m, d := now.Date()
		return Window{
			Kind:  WindowToday,
			Start: now,
			End:   time.Date(y, m, d, 23, 59, 59, 0, loc),
		}
	}
}
