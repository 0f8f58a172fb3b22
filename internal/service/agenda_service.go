package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/fkaiser/morningsync/internal/domain"
	"github.com/fkaiser/morningsync/internal/source"
)

// nextPerSourceCap limits how many upcoming candidates each calendar
// contributes to the next-event reduction.
const nextPerSourceCap = 3

// AgendaService queries all configured calendar sources and reduces
// their raw events into ordered domain events. It holds no mutable
// state; every call works from the supplied window or instant.
type AgendaService struct {
	sources  []source.Source
	location *time.Location
}

// NewAgendaService creates an agenda service over the given sources.
// Event times are normalized into loc.
func NewAgendaService(sources []source.Source, loc *time.Location) *AgendaService {
	if loc == nil {
		loc = time.UTC
	}
	return &AgendaService{sources: sources, location: loc}
}

// Events returns all events starting inside the window, merged across
// every source and calendar, sorted ascending by start. Events with
// equal timestamps keep their arrival order. A failing source or
// calendar is logged and skipped so the others still contribute; an
// error is returned only when no source responded at all.
func (s *AgendaService) Events(ctx context.Context, window domain.Window) ([]domain.Event, error) {
	var (
		events    []domain.Event
		reachable int
		lastErr   error
	)

	for _, src := range s.sources {
		calendars, err := src.ListCalendars(ctx)
		if err != nil {
			log.Printf("Warning: source %s unavailable: %v", src.Name(), err)
			lastErr = err
			continue
		}
		reachable++

		for _, calID := range calendars {
			raw, err := src.ListEvents(ctx, calID, window.Start, window.End, 0)
			if err != nil {
				log.Printf("Warning: source %s, calendar %s: %v", src.Name(), calID, err)
				continue
			}

			for _, re := range raw {
				event, err := Normalize(re, s.location)
				if err != nil {
					log.Printf("Dropping event from %s: %v", src.Name(), err)
					continue
				}
				// Re-check the window after normalization: a feed may
				// return entries just outside the requested range.
				if event.Start.Before(window.Start) {
					continue
				}
				if window.Bounded() && event.Start.After(window.End) {
					continue
				}
				events = append(events, event)
			}
		}
	}

	if reachable == 0 && lastErr != nil {
		return nil, fmt.Errorf("no calendar source available: %w", lastErr)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})
	return events, nil
}

// NextEvent returns the soonest event starting strictly after now
// across all sources, or nil when nothing upcoming exists. Ties go to
// the source listed first.
func (s *AgendaService) NextEvent(ctx context.Context, now time.Time) (*domain.Event, error) {
	var (
		next      *domain.Event
		reachable int
		lastErr   error
	)

	for _, src := range s.sources {
		calendars, err := src.ListCalendars(ctx)
		if err != nil {
			log.Printf("Warning: source %s unavailable: %v", src.Name(), err)
			lastErr = err
			continue
		}
		reachable++

		for _, calID := range calendars {
			raw, err := src.ListEvents(ctx, calID, now, time.Time{}, nextPerSourceCap)
			if err != nil {
				log.Printf("Warning: source %s, calendar %s: %v", src.Name(), calID, err)
				continue
			}

			for _, re := range raw {
				event, err := Normalize(re, s.location)
				if err != nil {
					log.Printf("Dropping event from %s: %v", src.Name(), err)
					continue
				}
				// Already-running events are not "next".
				if !event.Start.After(now) {
					continue
				}
				if next == nil || event.Start.Before(next.Start) {
					e := event
					next = &e
				}
				// Responses are ascending by start, so the first
				// future hit is this calendar's candidate.
				break
			}
		}
	}

	if reachable == 0 && lastErr != nil {
		return nil, fmt.Errorf("no calendar source available: %w", lastErr)
	}
	return next, nil
}
