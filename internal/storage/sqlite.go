package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/mattn/go-sqlite3"
)

// State keys. last_update_id is the Telegram update cursor so a
// restart does not replay handled commands; last_reminder_date is the
// local calendar date the daily reminder last fired on.
const (
	keyLastUpdateID     = "last_update_id"
	keyLastReminderDate = "last_reminder_date"
)

type Storage struct {
	db *sql.DB
}

func New(dbPath string) (*Storage, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}

	s := &Storage{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS bot_state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL DEFAULT '',
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}

func (s *Storage) getState(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM bot_state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

func (s *Storage) setState(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO bot_state (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	return err
}

// LastUpdateID returns the highest Telegram update ID already handled,
// or 0 when no message has ever been processed.
func (s *Storage) LastUpdateID() (int, error) {
	value, err := s.getState(keyLastUpdateID)
	if err != nil || value == "" {
		return 0, err
	}
	return strconv.Atoi(value)
}

func (s *Storage) SetLastUpdateID(id int) error {
	return s.setState(keyLastUpdateID, strconv.Itoa(id))
}

// LastReminderDate returns the local date (2006-01-02) on which the
// daily reminder last fired, or "" if it never did.
func (s *Storage) LastReminderDate() (string, error) {
	return s.getState(keyLastReminderDate)
}

func (s *Storage) SetLastReminderDate(date string) error {
	return s.setState(keyLastReminderDate, date)
}
