package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fkaiser/morningsync/config"
	"github.com/fkaiser/morningsync/internal/bot"
	"github.com/fkaiser/morningsync/internal/clients/caldav"
	"github.com/fkaiser/morningsync/internal/clients/googlecal"
	"github.com/fkaiser/morningsync/internal/clients/weather"
	"github.com/fkaiser/morningsync/internal/scheduler"
	"github.com/fkaiser/morningsync/internal/service"
	"github.com/fkaiser/morningsync/internal/source"
	"github.com/fkaiser/morningsync/internal/storage"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, err := storage.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to init storage: %v", err)
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Calendar sources: Google is the primary feed, CalDAV joins when
	// credentials are configured.
	var sources []source.Source

	oauthConfig, err := googlecal.NewOAuthConfig(cfg.GoogleCredentialsPath)
	if err != nil {
		log.Fatalf("Failed to load Google credentials: %v", err)
	}

	httpClient, err := googlecal.GetAuthenticatedClient(ctx, oauthConfig, googlecal.NewFileTokenStore(cfg.GoogleTokenPath))
	if err != nil {
		log.Fatalf("Failed to authenticate with Google: %v", err)
	}

	gcal, err := googlecal.NewClient(ctx, httpClient)
	if err != nil {
		log.Fatalf("Failed to init Google Calendar client: %v", err)
	}
	sources = append(sources, gcal)

	if dav := caldav.NewClient(cfg.CalDAVURL, cfg.CalDAVUsername, cfg.CalDAVPassword); dav.IsConfigured() {
		sources = append(sources, dav)
	}

	agendaSvc := service.NewAgendaService(sources, cfg.Timezone)

	var weatherClient *weather.Client
	if cfg.IncludeWeather {
		weatherClient = weather.NewClient(cfg.OpenWeatherAPIKey, cfg.City, cfg.IncludeFunnyWeather, cfg.IncludeOutfitTip)
	}

	tgBot, err := bot.New(cfg, store, agendaSvc)
	if err != nil {
		log.Fatalf("Failed to init bot: %v", err)
	}

	sched := scheduler.New(cfg, store, agendaSvc, weatherClient)
	sched.SetSender(tgBot)

	go func() {
		if err := sched.Start(ctx); err != nil {
			log.Printf("Scheduler error: %v", err)
		}
	}()

	go func() {
		if err := tgBot.Start(ctx); err != nil {
			log.Printf("Bot error: %v", err)
		}
	}()

	log.Println("MorningSync started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down...")

	cancel()
	sched.Stop()

	log.Println("MorningSync stopped")
}
