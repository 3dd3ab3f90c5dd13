package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/prompter/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketSessions = []byte("sessions")
	bucketMeta     = []byte("meta")
)

// Key suffixes within the sessions bucket. Text is stored as raw bytes so it
// round-trips exactly, including bytes that are not valid UTF-8.
const (
	suffixParams = ":params"
	suffixText   = ":text"
	suffixSaved  = ":saved"

	keyLastSession = "last"
)

// SessionStore implements domain.SessionStore using BoltDB.
type SessionStore struct {
	db     *bolt.DB
	mu     sync.RWMutex // Protects memory cache and closed
	closed bool

	// In-memory cache for reads (promoted on access); the only storage in
	// memory-only mode
	cache map[string][]byte
}

var _ domain.SessionStore = (*SessionStore)(nil)

// NewSessionStore opens (or creates) prompter.db under dir. An empty dir
// gives a memory-only store.
func NewSessionStore(dir string) (*SessionStore, error) {
	if dir == "" {
		return &SessionStore{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "prompter.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketSessions, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SessionStore{db: db, cache: make(map[string][]byte)}, nil
}

func (s *SessionStore) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *SessionStore) get(bucket []byte, key string) ([]byte, bool, error) {
	cacheKey := string(bucket) + ":" + key

	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return nil, false, domain.ErrStoreClosed
	}
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return data, true, nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return nil, false, nil
	}

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil || data == nil {
		return nil, false, err
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return data, true, nil
}

// put writes every key/value pair to bucket in one transaction.
func (s *SessionStore) put(bucket []byte, kv map[string][]byte) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return domain.ErrStoreClosed
	}
	for k, v := range kv {
		s.cache[string(bucket)+":"+k] = v
	}
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		for k, v := range kv {
			if err := b.Put([]byte(k), v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SessionStore) deletePrefix(bucket []byte, prefix string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return domain.ErrStoreClosed
	}
	cachePrefix := string(bucket) + ":" + prefix
	for k := range s.cache {
		if strings.HasPrefix(k, cachePrefix) {
			delete(s.cache, k)
		}
	}
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		prefixBytes := []byte(prefix)
		var keys [][]byte
		for k, _ := c.Seek(prefixBytes); k != nil && strings.HasPrefix(string(k), prefix); k, _ = c.Next() {
			keys = append(keys, append([]byte(nil), k...))
		}
		for _, k := range keys {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// === Sessions ===

func validateName(name string) error {
	if name == "" || strings.Contains(name, ":") {
		return fmt.Errorf("invalid session name %q", name)
	}
	return nil
}

// Load returns the state saved under name.
func (s *SessionStore) Load(name string) (domain.SessionState, error) {
	if err := validateName(name); err != nil {
		return domain.SessionState{}, err
	}

	rawParams, ok, err := s.get(bucketSessions, name+suffixParams)
	if err != nil {
		return domain.SessionState{}, err
	}
	if !ok {
		return domain.SessionState{}, fmt.Errorf("load %q: %w", name, domain.ErrSessionNotFound)
	}

	var state domain.SessionState
	if err := json.Unmarshal(rawParams, &state.Params); err != nil {
		return domain.SessionState{}, fmt.Errorf("decode params for %q: %w", name, err)
	}

	text, _, err := s.get(bucketSessions, name+suffixText)
	if err != nil {
		return domain.SessionState{}, err
	}
	state.Text = string(text)
	return state, nil
}

// Save writes state under name and records it as the last used session.
func (s *SessionStore) Save(name string, state domain.SessionState) error {
	if err := validateName(name); err != nil {
		return err
	}

	rawParams, err := json.Marshal(state.Params)
	if err != nil {
		return err
	}
	saved, err := time.Now().UTC().MarshalText()
	if err != nil {
		return err
	}

	err = s.put(bucketSessions, map[string][]byte{
		name + suffixParams: rawParams,
		name + suffixText:   []byte(state.Text),
		name + suffixSaved:  saved,
	})
	if err != nil {
		return err
	}
	return s.put(bucketMeta, map[string][]byte{keyLastSession: []byte(name)})
}

// Delete removes a session. Deleting a missing session is not an error.
func (s *SessionStore) Delete(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := s.deletePrefix(bucketSessions, name+":"); err != nil {
		return err
	}
	if last, ok := s.LastSession(); ok && last == name {
		return s.deletePrefix(bucketMeta, keyLastSession)
	}
	return nil
}

// List returns the names of all saved sessions in sorted order.
func (s *SessionStore) List() ([]string, error) {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return nil, domain.ErrStoreClosed
	}
	names := make(map[string]struct{})
	prefix := string(bucketSessions) + ":"
	for k := range s.cache {
		if name, ok := sessionName(strings.TrimPrefix(k, prefix)); ok && strings.HasPrefix(k, prefix) {
			names[name] = struct{}{}
		}
	}
	s.mu.RUnlock()

	if s.db != nil {
		err := s.db.View(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucketSessions)
			if b == nil {
				return nil
			}
			return b.ForEach(func(k, _ []byte) error {
				if name, ok := sessionName(string(k)); ok {
					names[name] = struct{}{}
				}
				return nil
			})
		})
		if err != nil {
			return nil, err
		}
	}

	out := make([]string, 0, len(names))
	for name := range names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

// LastSession returns the most recently saved session name, if any.
func (s *SessionStore) LastSession() (string, bool) {
	data, ok, err := s.get(bucketMeta, keyLastSession)
	if err != nil || !ok {
		return "", false
	}
	return string(data), true
}

// SavedAt returns when name was last saved.
func (s *SessionStore) SavedAt(name string) (time.Time, error) {
	data, ok, err := s.get(bucketSessions, name+suffixSaved)
	if err != nil {
		return time.Time{}, err
	}
	if !ok {
		return time.Time{}, fmt.Errorf("saved at %q: %w", name, domain.ErrSessionNotFound)
	}
	var ts time.Time
	if err := ts.UnmarshalText(data); err != nil {
		return time.Time{}, fmt.Errorf("decode timestamp for %q: %w", name, err)
	}
	return ts, nil
}

// sessionName extracts the session name from a params key.
func sessionName(key string) (string, bool) {
	name, ok := strings.CutSuffix(key, suffixParams)
	return name, ok && name != ""
}
