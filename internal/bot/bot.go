package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/fkaiser/morningsync/config"
	"github.com/fkaiser/morningsync/internal/domain"
	"github.com/fkaiser/morningsync/internal/storage"
)

// Agenda is the calendar query surface the bot dispatches to.
type Agenda interface {
	Events(ctx context.Context, window domain.Window) ([]domain.Event, error)
	NextEvent(ctx context.Context, now time.Time) (*domain.Event, error)
}

type Bot struct {
	api     *tgbotapi.BotAPI
	cfg     *config.Config
	storage *storage.Storage
	agenda  Agenda
	now     func() time.Time
}

func New(cfg *config.Config, store *storage.Storage, agenda Agenda) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Printf("Authorized as @%s", api.Self.UserName)

	return &Bot{
		api:     api,
		cfg:     cfg,
		storage: store,
		agenda:  agenda,
		now: func() time.Time {
			return time.Now().In(cfg.Timezone)
		},
	}, nil
}

// Start long-polls Telegram for updates until ctx is cancelled. The
// cursor of the last handled update is loaded from storage so a
// restart does not replay old commands.
func (b *Bot) Start(ctx context.Context) error {
	offset, err := b.storage.LastUpdateID()
	if err != nil {
		return fmt.Errorf("load update cursor: %w", err)
	}

	u := tgbotapi.NewUpdate(offset + 1)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	log.Println("Polling for messages...")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update := <-updates:
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil {
		return
	}

	msg := update.Message
	if msg.Chat.ID != b.cfg.OwnerChatID {
		return
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	log.Printf("Incoming from %d: %s", msg.Chat.ID, text)

	reply := b.Dispatch(ctx, text)
	if err := b.SendMessage(reply); err != nil {
		// Cursor stays put, so a restart retries this command.
		log.Printf("Error sending reply: %v", err)
		return
	}

	if err := b.storage.SetLastUpdateID(update.UpdateID); err != nil {
		log.Printf("Error saving update cursor: %v", err)
	}
}

func (b *Bot) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(b.cfg.OwnerChatID, text)
	msg.ParseMode = "HTML"
	_, err := b.api.Send(msg)
	return err
}
