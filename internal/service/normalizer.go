package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/fkaiser/morningsync/internal/domain"
	"github.com/fkaiser/morningsync/internal/source"
)

// Accepted date-time layouts: RFC3339 as Google delivers it, plus the
// iCal basic format from CalDAV feeds. The zoned flag tells whether
// the layout carries its own zone information.
var dateTimeLayouts = []struct {
	layout string
	zoned  bool
}{
	{time.RFC3339, true},
	{"2006-01-02T15:04:05", false},
	{"20060102T150405Z", true},
	{"20060102T150405", false},
}

var dateLayouts = []string{"2006-01-02", "20060102"}

// NormalizeStart parses a raw start value into an instant in loc.
//
// Values with a UTC marker or an explicit offset are parsed and
// converted to loc. Naive values are taken to already be local time
// and get loc attached without shifting. Date-only values become local
// midnight (all-day events).
func NormalizeStart(raw source.RawTime, loc *time.Location) (time.Time, error) {
	if raw.Date != "" {
		for _, layout := range dateLayouts {
			if t, err := time.ParseInLocation(layout, raw.Date, loc); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("unparseable date %q", raw.Date)
	}

	if raw.DateTime == "" {
		return time.Time{}, fmt.Errorf("event start has neither dateTime nor date")
	}

	for _, l := range dateTimeLayouts {
		if l.zoned {
			if t, err := time.Parse(l.layout, raw.DateTime); err == nil {
				return t.In(loc), nil
			}
		} else {
			if t, err := time.ParseInLocation(l.layout, raw.DateTime, loc); err == nil {
				return t, nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", raw.DateTime)
}

// Normalize converts one raw event into a domain event. A missing
// summary gets the fixed placeholder. An unparseable start is an
// error; the caller drops the event and keeps the rest of the
// response.
func Normalize(raw source.RawEvent, loc *time.Location) (domain.Event, error) {
	start, err := NormalizeStart(raw.Start, loc)
	if err != nil {
		return domain.Event{}, err
	}

	summary := strings.TrimSpace(raw.Summary)
	if summary == "" {
		summary = domain.NoTitle
	}

	return domain.Event{Start: start, Summary: summary}, nil
}
