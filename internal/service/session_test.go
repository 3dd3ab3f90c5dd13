package service

import (
	"errors"
	"testing"

	"github.com/mmcdole/prompter/internal/domain"
	"github.com/mmcdole/prompter/internal/params"
	"github.com/mmcdole/prompter/internal/store"
)

type failingStore struct {
	domain.SessionStore
}

func (failingStore) Load(string) (domain.SessionState, error) {
	return domain.SessionState{}, errors.New("disk on fire")
}

func newMemoryStore(t *testing.T) *store.SessionStore {
	t.Helper()
	s, err := store.NewSessionStore("")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSessionLoadMissingKeepsDefaults(t *testing.T) {
	p := params.NewStore()
	svc := NewSessionService(newMemoryStore(t), p, "default", nil)

	text, found, err := svc.Load()
	if err != nil || found || text != "" {
		t.Fatalf("load = %q %v %v", text, found, err)
	}
	if p.Snapshot() != params.Defaults() {
		t.Fatalf("params changed on a missing session")
	}
	if svc.Dirty("") {
		t.Fatalf("fresh session with no changes is not dirty")
	}
}

func TestSessionSaveAndRestore(t *testing.T) {
	backing := newMemoryStore(t)

	p := params.NewStore()
	svc := NewSessionService(backing, p, "gig", nil)
	p.Set(domain.ParamStartBar, 8)
	p.SetBool(domain.ParamResetOnStop, true)
	if err := svc.Save("line a\nline b"); err != nil {
		t.Fatalf("save: %v", err)
	}

	restored := params.NewStore()
	svc2 := NewSessionService(backing, restored, "gig", nil)
	text, found, err := svc2.Load()
	if err != nil || !found || text != "line a\nline b" {
		t.Fatalf("load = %q %v %v", text, found, err)
	}
	if restored.Snapshot() != p.Snapshot() {
		t.Fatalf("params differ: %+v vs %+v", restored.Snapshot(), p.Snapshot())
	}
}

func TestSessionSaveIfDirty(t *testing.T) {
	p := params.NewStore()
	svc := NewSessionService(newMemoryStore(t), p, "gig", nil)
	svc.Load()

	if wrote, err := svc.SaveIfDirty(""); wrote || err != nil {
		t.Fatalf("clean session wrote: %v %v", wrote, err)
	}
	p.Set(domain.ParamFontSize, 30)
	if wrote, err := svc.SaveIfDirty(""); !wrote || err != nil {
		t.Fatalf("param change not saved: %v %v", wrote, err)
	}
	if wrote, _ := svc.SaveIfDirty("new text"); !wrote {
		t.Fatalf("text change not saved")
	}
	if svc.Dirty("new text") {
		t.Fatalf("dirty right after save")
	}
}

func TestSessionLoadError(t *testing.T) {
	svc := NewSessionService(failingStore{}, params.NewStore(), "gig", nil)
	if _, _, err := svc.Load(); err == nil {
		t.Fatalf("expected load error")
	}
}
