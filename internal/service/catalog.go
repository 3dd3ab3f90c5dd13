package service

import (
	"fmt"
	"time"
)

// SessionCatalog is the part of a session store that enumerates sessions
type SessionCatalog interface {
	List() ([]string, error)
	LastSession() (string, bool)
	SavedAt(name string) (time.Time, error)
	Delete(name string) error
}

// SessionInfo describes one saved session
type SessionInfo struct {
	Name    string
	SavedAt time.Time
	Last    bool // most recently saved
}

// ResolveSessionName picks the session to open: an explicit request wins,
// then the most recently saved session, then fallback.
func ResolveSessionName(c SessionCatalog, requested, fallback string) string {
	if requested != "" {
		return requested
	}
	if last, ok := c.LastSession(); ok && last != "" {
		return last
	}
	return fallback
}

// ListSessions returns every saved session in name order
func ListSessions(c SessionCatalog) ([]SessionInfo, error) {
	names, err := c.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	last, _ := c.LastSession()

	out := make([]SessionInfo, 0, len(names))
	for _, name := range names {
		saved, err := c.SavedAt(name)
		if err != nil {
			return nil, err
		}
		out = append(out, SessionInfo{Name: name, SavedAt: saved, Last: name == last})
	}
	return out, nil
}

// DeleteSession removes a saved session
func DeleteSession(c SessionCatalog, name string) error {
	if err := c.Delete(name); err != nil {
		return fmt.Errorf("failed to delete session %q: %w", name, err)
	}
	return nil
}
