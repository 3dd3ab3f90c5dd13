package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmcdole/prompter/internal/domain"
	"github.com/mmcdole/prompter/internal/params"
)

// SessionService saves and restores the parameter set and lyric text under
// a session name. It is used from the UI goroutine only.
type SessionService struct {
	store  domain.SessionStore
	params *params.Store
	name   string
	logger *slog.Logger

	// What was last written or read, for dirty checks
	savedVersion uint64
	savedText    string
	synced       bool
}

// NewSessionService creates a session service for name.
func NewSessionService(store domain.SessionStore, p *params.Store, name string, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		store:  store,
		params: p,
		name:   name,
		logger: logger,
	}
}

// Name is the session key.
func (s *SessionService) Name() string {
	return s.name
}

// Load restores saved parameters and returns the saved text. found is false
// (with a nil error) when nothing was saved yet; parameters keep their
// current values in that case.
func (s *SessionService) Load() (text string, found bool, err error) {
	state, err := s.store.Load(s.name)
	if errors.Is(err, domain.ErrSessionNotFound) {
		s.logger.Info("no saved session, using defaults", "session", s.name)
		s.markSynced("")
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to load session %q: %w", s.name, err)
	}

	s.params.Restore(state.Params)
	s.markSynced(state.Text)
	s.logger.Info("session loaded", "session", s.name, "bytes", len(state.Text))
	return state.Text, true, nil
}

// Save writes the current parameters and text.
func (s *SessionService) Save(text string) error {
	state := domain.SessionState{Params: s.params.Snapshot(), Text: text}
	version := s.params.Version()
	if err := s.store.Save(s.name, state); err != nil {
		return fmt.Errorf("failed to save session %q: %w", s.name, err)
	}
	s.savedVersion = version
	s.savedText = text
	s.synced = true
	s.logger.Debug("session saved", "session", s.name)
	return nil
}

// Dirty reports whether text or any parameter changed since the last load
// or save.
func (s *SessionService) Dirty(text string) bool {
	return !s.synced || s.params.Version() != s.savedVersion || text != s.savedText
}

// SaveIfDirty saves only when something changed and reports whether it wrote.
func (s *SessionService) SaveIfDirty(text string) (bool, error) {
	if !s.Dirty(text) {
		return false, nil
	}
	return true, s.Save(text)
}

func (s *SessionService) markSynced(text string) {
	s.savedVersion = s.params.Version()
	s.savedText = text
	s.synced = true
}
