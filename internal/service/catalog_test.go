package service

import (
	"testing"

	"github.com/mmcdole/prompter/internal/domain"
	"github.com/mmcdole/prompter/internal/params"
)

func TestResolveSessionName(t *testing.T) {
	st := newMemoryStore(t)

	if got := ResolveSessionName(st, "", "default"); got != "default" {
		t.Fatalf("empty store = %q, want fallback", got)
	}

	if err := st.Save("gig", domain.SessionState{Params: params.Defaults(), Text: "a"}); err != nil {
		t.Fatal(err)
	}
	if got := ResolveSessionName(st, "", "default"); got != "gig" {
		t.Fatalf("resolved %q, want last saved session", got)
	}
	if got := ResolveSessionName(st, "rehearsal", "default"); got != "rehearsal" {
		t.Fatalf("resolved %q, want explicit request", got)
	}
}

func TestListAndDeleteSessions(t *testing.T) {
	st := newMemoryStore(t)
	for _, name := range []string{"b", "a"} {
		if err := st.Save(name, domain.SessionState{Params: params.Defaults(), Text: name}); err != nil {
			t.Fatal(err)
		}
	}

	infos, err := ListSessions(st)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(infos) != 2 || infos[0].Name != "a" || infos[1].Name != "b" {
		t.Fatalf("infos = %+v", infos)
	}
	if !infos[0].Last || infos[1].Last {
		t.Fatalf("last marker = %+v", infos)
	}
	if infos[0].SavedAt.IsZero() {
		t.Fatal("missing saved time")
	}

	if err := DeleteSession(st, "b"); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	infos, err = ListSessions(st)
	if err != nil || len(infos) != 1 || infos[0].Name != "a" {
		t.Fatalf("after delete = %+v, %v", infos, err)
	}
}

func TestDeleteLastSessionFallsBack(t *testing.T) {
	st := newMemoryStore(t)
	if err := st.Save("gig", domain.SessionState{Params: params.Defaults()}); err != nil {
		t.Fatal(err)
	}
	if err := DeleteSession(st, "gig"); err != nil {
		t.Fatal(err)
	}
	if got := ResolveSessionName(st, "", "default"); got != "default" {
		t.Fatalf("resolved %q after deleting the last session", got)
	}
}
