package domain

import "time"

// NoTitle is the placeholder summary for events without one.
const NoTitle = "Kein Titel"

// Event is one normalized calendar occurrence. Start is always
// timezone-aware and already converted to the bot's local zone before
// anything downstream sees it.
type Event struct {
	Start   time.Time
	Summary string
}

// FormatTime returns the start time for display.
func (e Event) FormatTime() string {
	return e.Start.Format("15:04")
}

// Date returns the local calendar date of the event (midnight).
func (e Event) Date() time.Time {
	y, m, d := e.Start.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, e.Start.Location())
}
