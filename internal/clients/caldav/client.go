package caldav

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-webdav/caldav"

	"github.com/fkaiser/morningsync/internal/source"
)

const (
	// Apple iCloud CalDAV endpoint
	DefaultiCloudURL = "https://caldav.icloud.com"
)

// Client is a read-only CalDAV calendar source. It implements
// source.Source and emits raw iCal property values; timestamp
// normalization stays in one place downstream.
type Client struct {
	baseURL  string
	username string
	password string
	client   *caldav.Client
}

// NewClient creates a CalDAV client. An empty baseURL defaults to the
// iCloud endpoint.
func NewClient(baseURL, username, password string) *Client {
	if baseURL == "" {
		baseURL = DefaultiCloudURL
	}
	return &Client{
		baseURL:  baseURL,
		username: username,
		password: password,
	}
}

// IsConfigured returns true if the client has credentials
func (c *Client) IsConfigured() bool {
	return c.username != "" && c.password != ""
}

func (c *Client) Name() string { return "caldav" }

// connect establishes connection to the CalDAV server
func (c *Client) connect() (*caldav.Client, error) {
	if c.client != nil {
		return c.client, nil
	}

	httpClient := &http.Client{
		Transport: &basicAuthTransport{
			username: c.username,
			password: c.password,
		},
		Timeout: 30 * time.Second,
	}

	client, err := caldav.NewClient(httpClient, c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to CalDAV: %w", err)
	}

	c.client = client
	return client, nil
}

// basicAuthTransport adds Basic Auth to HTTP requests
type basicAuthTransport struct {
	username string
	password string
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.SetBasicAuth(t.username, t.password)
	return http.DefaultTransport.RoundTrip(req)
}

// ListCalendars returns the paths of all calendars of the user.
func (c *Client) ListCalendars(ctx context.Context) ([]string, error) {
	client, err := c.connect()
	if err != nil {
		return nil, err
	}

	principal, err := client.FindCurrentUserPrincipal(ctx)
	if err != nil {
		return nil, fmt.Errorf("find principal: %w", err)
	}

	homeSet, err := client.FindCalendarHomeSet(ctx, principal)
	if err != nil {
		return nil, fmt.Errorf("find home set: %w", err)
	}

	cals, err := client.FindCalendars(ctx, homeSet)
	if err != nil {
		return nil, fmt.Errorf("find calendars: %w", err)
	}

	paths := make([]string, 0, len(cals))
	for _, cal := range cals {
		paths = append(paths, cal.Path)
	}
	return paths, nil
}

// ListEvents returns raw events starting in [min, max], ascending by
// start. CalDAV responses carry no ordering guarantee, so the result
// is sorted here before the cap is applied.
func (c *Client) ListEvents(ctx context.Context, calendarPath string, min, max time.Time, maxResults int64) ([]source.RawEvent, error) {
	client, err := c.connect()
	if err != nil {
		return nil, err
	}

	if calendarPath == "" {
		return nil, fmt.Errorf("calendar path not specified")
	}

	end := max
	if end.IsZero() {
		// Unbounded windows query one year ahead; the caller reduces
		// the response to the nearest few candidates anyway.
		end = min.AddDate(1, 0, 0)
	}

	query := &caldav.CalendarQuery{
		CompFilter: caldav.CompFilter{
			Name: "VCALENDAR",
			Comps: []caldav.CompFilter{
				{
					Name:  "VEVENT",
					Start: min,
					End:   end,
				},
			},
		},
	}

	objects, err := client.QueryCalendar(ctx, calendarPath, query)
	if err != nil {
		return nil, fmt.Errorf("query calendar: %w", err)
	}

	type keyed struct {
		start time.Time
		raw   source.RawEvent
	}

	var events []keyed
	for _, obj := range objects {
		raw, start, err := rawFromObject(&obj)
		if err != nil {
			continue // Skip invalid events
		}
		events = append(events, keyed{start: start, raw: raw})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].start.Before(events[j].start)
	})

	result := make([]source.RawEvent, 0, len(events))
	for _, e := range events {
		if maxResults > 0 && int64(len(result)) >= maxResults {
			break
		}
		result = append(result, e.raw)
	}
	return result, nil
}

// rawFromObject extracts the first VEVENT of a CalDAV object into a
// raw event. The DTSTART value is passed through untouched; the
// returned time is only a sort key.
func rawFromObject(obj *caldav.CalendarObject) (source.RawEvent, time.Time, error) {
	if obj.Data == nil {
		return source.RawEvent{}, time.Time{}, fmt.Errorf("no data in calendar object")
	}

	for _, comp := range obj.Data.Children {
		if comp.Name != ical.CompEvent {
			continue
		}

		raw := source.RawEvent{}
		if prop := comp.Props.Get(ical.PropSummary); prop != nil {
			raw.Summary = prop.Value
		}

		prop := comp.Props.Get(ical.PropDateTimeStart)
		if prop == nil {
			return source.RawEvent{}, time.Time{}, fmt.Errorf("event without DTSTART")
		}

		if prop.Params.Get(ical.ParamValue) == string(ical.ValueDate) {
			raw.Start = source.RawTime{Date: prop.Value}
		} else {
			raw.Start = source.RawTime{DateTime: prop.Value}
		}

		start, err := prop.DateTime(time.UTC)
		if err != nil {
			return source.RawEvent{}, time.Time{}, fmt.Errorf("parse DTSTART: %w", err)
		}

		return raw, start, nil
	}

	return source.RawEvent{}, time.Time{}, fmt.Errorf("no VEVENT in calendar object")
}
