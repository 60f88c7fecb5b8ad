// Package prefs maintains the user's display preferences on top of the
// profile API. Updates are optimistic: the local state changes immediately,
// the profile is written in the background of the same call, and a failed
// write reloads the server state so the two never drift apart.
package prefs

import (
	"context"
	"sync"
	"time"

	"pennywise/internal/format"
)

// Defaults applied before the profile has loaded or when the profile omits
// a field.
const (
	DefaultCurrency   = "USD"
	DefaultDateFormat = format.DateFormatUS
	DefaultLanguage   = "en"
)

// ProfileAPI is the slice of the profile service the store needs. Documents
// use camelCase keys on both sides.
type ProfileAPI interface {
	Fetch(ctx context.Context) (map[string]any, error)
	Save(ctx context.Context, doc map[string]any) error
}

// Preferences holds the user's display settings.
type Preferences struct {
	Currency   string
	DateFormat string
	Language   string
}

// Update describes a partial preference change. Nil fields are left as-is.
type Update struct {
	Currency   *string
	DateFormat *string
	Language   *string
}

// Store is a concurrency-safe preference cache bound to a profile API.
type Store struct {
	api ProfileAPI

	mu     sync.RWMutex
	prefs  Preferences
	loaded bool

	onLanguageChange func(language string)
}

// NewStore returns a store seeded with defaults.
func NewStore(api ProfileAPI) *Store {
	return &Store{
		api: api,
		prefs: Preferences{
			Currency:   DefaultCurrency,
			DateFormat: DefaultDateFormat,
			Language:   DefaultLanguage,
		},
	}
}

// OnLanguageChange registers a hook fired whenever the effective language
// changes, including on the initial load.
func (s *Store) OnLanguageChange(fn func(language string)) {
	s.mu.Lock()
	s.onLanguageChange = fn
	s.mu.Unlock()
}

// Load pulls preferences from the profile, falling back to defaults for
// any missing field.
func (s *Store) Load(ctx context.Context) error {
	doc, err := s.api.Fetch(ctx)
	if err != nil {
		return err
	}

	loaded := Preferences{
		Currency:   stringField(doc, "preferredCurrency", DefaultCurrency),
		DateFormat: stringField(doc, "dateFormat", DefaultDateFormat),
		Language:   stringField(doc, "preferredLanguage", DefaultLanguage),
	}

	s.mu.Lock()
	previous := s.prefs.Language
	s.prefs = loaded
	s.loaded = true
	hook := s.onLanguageChange
	s.mu.Unlock()

	if hook != nil && loaded.Language != previous {
		hook(loaded.Language)
	}
	return nil
}

// Loaded reports whether preferences have been read from the profile at
// least once.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Get returns the current preferences.
func (s *Store) Get() Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

// Set applies an update optimistically and persists the full preference set
// to the profile. If the write fails, the server state is reloaded and the
// write error is returned.
func (s *Store) Set(ctx context.Context, upd Update) error {
	s.mu.Lock()
	previous := s.prefs.Language
	if upd.Currency != nil {
		s.prefs.Currency = *upd.Currency
	}
	if upd.DateFormat != nil {
		s.prefs.DateFormat = *upd.DateFormat
	}
	if upd.Language != nil {
		s.prefs.Language = *upd.Language
	}
	applied := s.prefs
	hook := s.onLanguageChange
	s.mu.Unlock()

	if hook != nil && applied.Language != previous {
		hook(applied.Language)
	}

	err := s.api.Save(ctx, map[string]any{
		"preferredCurrency": applied.Currency,
		"dateFormat":        applied.DateFormat,
		"preferredLanguage": applied.Language,
	})
	if err != nil {
		// Revert the optimistic state to whatever the server still holds.
		_ = s.Load(ctx)
		return err
	}
	return nil
}

// FormatAmount renders an amount in the preferred currency.
func (s *Store) FormatAmount(amount float64) string {
	return format.FormatCurrency(amount, s.Get().Currency)
}

// FormatDate renders a date in the preferred format.
func (s *Store) FormatDate(t time.Time) string {
	return format.FormatDate(t, s.Get().DateFormat)
}

func stringField(doc map[string]any, key, fallback string) string {
	if v, ok := doc[key].(string); ok && v != "" {
		return v
	}
	return fallback
}
