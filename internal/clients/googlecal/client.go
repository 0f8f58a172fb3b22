package googlecal

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/fkaiser/morningsync/internal/source"
)

// Client is a read-only wrapper around the Google Calendar API. It
// implements source.Source.
type Client struct {
	service *calendar.Service
}

// NewClient creates a Google Calendar client from an authenticated
// HTTP client (see GetAuthenticatedClient).
func NewClient(ctx context.Context, httpClient *http.Client) (*Client, error) {
	service, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}
	return &Client{service: service}, nil
}

func (c *Client) Name() string { return "google" }

// ListCalendars returns the IDs of every calendar on the user's
// calendar list.
func (c *Client) ListCalendars(ctx context.Context) ([]string, error) {
	list, err := c.service.CalendarList.List().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list calendars: %w", err)
	}

	ids := make([]string, 0, len(list.Items))
	for _, cal := range list.Items {
		ids = append(ids, cal.Id)
	}
	return ids, nil
}

// ListEvents returns raw events starting in [min, max], ascending by
// start. Recurring events are expanded by the API (SingleEvents).
func (c *Client) ListEvents(ctx context.Context, calendarID string, min, max time.Time, maxResults int64) ([]source.RawEvent, error) {
	call := c.service.Events.List(calendarID).
		TimeMin(min.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx)
	if !max.IsZero() {
		call = call.TimeMax(max.Format(time.RFC3339))
	}
	if maxResults > 0 {
		call = call.MaxResults(maxResults)
	}

	list, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	events := make([]source.RawEvent, 0, len(list.Items))
	for _, item := range list.Items {
		events = append(events, rawFromItem(item))
	}
	return events, nil
}

// rawFromItem maps one API event to the raw representation the
// normalizer consumes. Exactly one of DateTime/Date is set by the API.
func rawFromItem(item *calendar.Event) source.RawEvent {
	raw := source.RawEvent{Summary: item.Summary}
	if item.Start != nil {
		raw.Start = source.RawTime{
			DateTime: item.Start.DateTime,
			Date:     item.Start.Date,
		}
	}
	return raw
}
