package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	TelegramToken string
	OwnerChatID   int64
	DatabasePath  string
	Timezone      *time.Location
	ReminderTime  string // HH:MM local

	GoogleCredentialsPath string
	GoogleTokenPath       string

	CalDAVURL      string
	CalDAVUsername string
	CalDAVPassword string

	OpenWeatherAPIKey   string
	City                string
	IncludeWeather      bool
	IncludeFunnyWeather bool
	IncludeOutfitTip    bool
}

func Load() (*Config, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	ownerID, err := strconv.ParseInt(os.Getenv("OWNER_CHAT_ID"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("OWNER_CHAT_ID is required and must be a number")
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "./data/morningsync.db"
	}

	tzName := os.Getenv("TIMEZONE")
	if tzName == "" {
		tzName = "Europe/Berlin"
	}
	tz, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	reminderTime := os.Getenv("REMINDER_TIME")
	if reminderTime == "" {
		reminderTime = "07:00"
	}
	if _, err := time.Parse("15:04", reminderTime); err != nil {
		return nil, fmt.Errorf("invalid REMINDER_TIME: %w", err)
	}

	credsPath := os.Getenv("GOOGLE_CREDENTIALS_PATH")
	if credsPath == "" {
		credsPath = "credentials.json"
	}

	tokenPath := os.Getenv("GOOGLE_TOKEN_PATH")
	if tokenPath == "" {
		tokenPath = "token.json"
	}

	city := os.Getenv("CITY")
	if city == "" {
		city = "Berlin"
	}

	return &Config{
		TelegramToken: token,
		OwnerChatID:   ownerID,
		DatabasePath:  dbPath,
		Timezone:      tz,
		ReminderTime:  reminderTime,

		GoogleCredentialsPath: credsPath,
		GoogleTokenPath:       tokenPath,

		CalDAVURL:      os.Getenv("CALDAV_URL"),
		CalDAVUsername: os.Getenv("CALDAV_USERNAME"),
		CalDAVPassword: os.Getenv("CALDAV_PASSWORD"),

		OpenWeatherAPIKey:   os.Getenv("OPENWEATHER_API_KEY"),
		City:                city,
		IncludeWeather:      boolEnv("INCLUDE_WEATHER_MESSAGE"),
		IncludeFunnyWeather: boolEnv("INCLUDE_FUNNY_WEATHER"),
		IncludeOutfitTip:    boolEnv("INCLUDE_OUTFIT_TIP"),
	}, nil
}

func boolEnv(name string) bool {
	return strings.EqualFold(strings.TrimSpace(os.Getenv(name)), "true")
}
