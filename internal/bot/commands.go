package bot

import (
	"context"
	"log"
	"strings"

	"github.com/fkaiser/morningsync/internal/domain"
	"github.com/fkaiser/morningsync/internal/format"
)

// MenuText is the static command menu.
const MenuText = "📋 <b>MorningSync Menü</b>\n\n" +
	"1️⃣ Heutige Termine\n" +
	"2️⃣ Termine für morgen\n" +
	"3️⃣ Termine für die Woche\n" +
	"4️⃣ Nächster Termin\n\n" +
	"Bitte wähle eine Option durch Senden der Zahl 1–4."

const invalidInput = "Ungültige Eingabe. Bitte 1-4 senden.\n\n" + MenuText

const apology = "😔 Entschuldigung, da ist etwas schiefgelaufen. Versuch es gleich noch einmal.\n\n" + MenuText

// Dispatch maps one incoming command token to its reply text. Unknown
// tokens get the menu without touching any calendar source; failures
// get a generic apology, never raw error text.
func (b *Bot) Dispatch(ctx context.Context, text string) string {
	var kind domain.WindowKind
	switch strings.TrimSpace(text) {
	case "1":
		kind = domain.WindowToday
	case "2":
		kind = domain.WindowTomorrow
	case "3":
		kind = domain.WindowWeek
	case "4":
		kind = domain.WindowNext
	default:
		return invalidInput
	}

	reply, err := b.queryWindow(ctx, kind)
	if err != nil {
		log.Printf("Error handling command %q: %v", text, err)
		return apology
	}
	return reply
}

// queryWindow runs selection and rendering for one window kind.
func (b *Bot) queryWindow(ctx context.Context, kind domain.WindowKind) (string, error) {
	now := b.now()

	if kind == domain.WindowNext {
		event, err := b.agenda.NextEvent(ctx, now)
		if err != nil {
			return "", err
		}
		var events []domain.Event
		if event != nil {
			events = []domain.Event{*event}
		}
		return format.Render(domain.WindowNext, events)
	}

	window := domain.WindowFor(kind, now)
	events, err := b.agenda.Events(ctx, window)
	if err != nil {
		return "", err
	}
	return format.Render(kind, events)
}
