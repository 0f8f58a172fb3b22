package source

import (
	"context"
	"time"
)

// RawTime is the start of a raw event. Exactly one of the fields is
// set: DateTime for timed events, Date for all-day events. Values are
// kept as delivered by the feed; normalization happens in one place
// downstream.
type RawTime struct {
	DateTime string
	Date     string
}

// RawEvent is one calendar entry as a source delivers it, before any
// timezone handling. Summary may be empty.
type RawEvent struct {
	Start   RawTime
	Summary string
}

// Source is one calendar feed among potentially several. A source
// returns events ordered ascending by start within a single response.
type Source interface {
	Name() string

	// ListCalendars returns the IDs of all calendars this source
	// gives access to.
	ListCalendars(ctx context.Context) ([]string, error)

	// ListEvents returns raw events starting in [min, max]. A zero
	// max means no upper bound. maxResults caps the response when
	// greater than zero.
	ListEvents(ctx context.Context, calendarID string, min, max time.Time, maxResults int64) ([]RawEvent, error)
}
