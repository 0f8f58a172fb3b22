package format

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fkaiser/morningsync/internal/domain"
)

// Fixed no-event sentences, one per window kind.
const (
	EmptyToday    = "📅 Keine Termine für heute."
	EmptyTomorrow = "📅 Keine Termine für morgen."
	EmptyWeek     = "📅 Keine Termine diese Woche."
	EmptyNext     = "📅 Keine Termine gefunden."
)

var weekdayDE = map[string]string{
	"Monday":    "Montag",
	"Tuesday":   "Dienstag",
	"Wednesday": "Mittwoch",
	"Thursday":  "Donnerstag",
	"Friday":    "Freitag",
	"Saturday":  "Samstag",
	"Sunday":    "Sonntag",
}

var monthDE = map[string]string{
	"January":   "Januar",
	"February":  "Februar",
	"March":     "März",
	"April":     "April",
	"May":       "Mai",
	"June":      "Juni",
	"July":      "Juli",
	"August":    "August",
	"September": "September",
	"October":   "Oktober",
	"November":  "November",
	"December":  "Dezember",
}

// localizedDate renders "Wochentag, d. Monat" for t. A name missing
// from the tables signals a logic bug upstream, not bad calendar data,
// so it surfaces as an error instead of leaking English into the chat.
func localizedDate(t time.Time) (string, error) {
	weekday, ok := weekdayDE[t.Format("Monday")]
	if !ok {
		return "", fmt.Errorf("no translation for weekday %q", t.Format("Monday"))
	}
	month, ok := monthDE[t.Format("January")]
	if !ok {
		return "", fmt.Errorf("no translation for month %q", t.Format("January"))
	}
	return fmt.Sprintf("%s, %d. %s", weekday, t.Day(), month), nil
}

// Render produces the chat message for one window kind. The output
// depends only on the given events: same input, same bytes. Events are
// sorted ascending by start before rendering, so callers may pass
// merged sequences in any order.
func Render(kind domain.WindowKind, events []domain.Event) (string, error) {
	sorted := make([]domain.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	switch kind {
	case domain.WindowToday:
		return renderDay(sorted, EmptyToday, "heute")
	case domain.WindowTomorrow:
		return renderDay(sorted, EmptyTomorrow, "morgen")
	case domain.WindowWeek:
		return renderWeek(sorted)
	case domain.WindowNext:
		return renderNext(sorted)
	}
	return "", fmt.Errorf("unknown window kind %q", kind)
}

func renderDay(events []domain.Event, empty, label string) (string, error) {
	if len(events) == 0 {
		return empty, nil
	}

	date, err := localizedDate(events[0].Start)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 Dein Tagesplan für %s:\n\n", date)
	for _, e := range events {
		fmt.Fprintf(&sb, "🕒 %s – %s\n", e.FormatTime(), e.Summary)
	}
	fmt.Fprintf(&sb, "\n📝 Insgesamt %d Termine %s.\n✅ Viel Erfolg!", len(events), label)
	return sb.String(), nil
}

// renderWeek groups events by local calendar date, groups ascending,
// one total footer across all groups.
func renderWeek(events []domain.Event) (string, error) {
	if len(events) == 0 {
		return EmptyWeek, nil
	}

	groups := make(map[time.Time][]domain.Event)
	var dates []time.Time
	for _, e := range events {
		d := e.Date()
		if _, ok := groups[d]; !ok {
			dates = append(dates, d)
		}
		groups[d] = append(groups[d], e)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	var sb strings.Builder
	sb.WriteString("📅 Dein Wochenplan:\n")
	for _, d := range dates {
		date, err := localizedDate(d)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "\n📌 %s:\n", date)
		for _, e := range groups[d] {
			fmt.Fprintf(&sb, "🕒 %s – %s\n", e.FormatTime(), e.Summary)
		}
	}
	fmt.Fprintf(&sb, "\n📝 Insgesamt %d Termine diese Woche.\n✅ Viel Erfolg!", len(events))
	return sb.String(), nil
}

// renderNext highlights the single upcoming event. No count footer,
// only the closing remark.
func renderNext(events []domain.Event) (string, error) {
	if len(events) == 0 {
		return EmptyNext, nil
	}

	date, err := localizedDate(events[0].Start)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 Dein nächster Termin ist am %s:\n\n", date)
	for _, e := range events {
		fmt.Fprintf(&sb, "🕒 %s – %s\n", e.FormatTime(), e.Summary)
	}
	sb.WriteString("\n✅ Viel Erfolg!")
	return sb.String(), nil
}
