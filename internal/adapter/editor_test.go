package adapter

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func testEditor(command string, env map[string]string, installed ...string) *Editor {
	e := NewEditor(command, NullLogger())
	e.getenv = func(k string) string { return env[k] }
	e.lookup = func(name string) (string, error) {
		for _, n := range installed {
			if n == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", errors.New("not found")
	}
	return e
}

func TestEditorResolve(t *testing.T) {
	tests := []struct {
		name      string
		command   string
		env       map[string]string
		installed []string
		wantArgs  []string
		wantErr   bool
	}{
		{
			name:     "configured with args",
			command:  "code --wait",
			env:      map[string]string{"EDITOR": "nano"},
			wantArgs: []string{"code", "--wait", "song.txt"},
		},
		{
			name:     "visual before editor",
			env:      map[string]string{"VISUAL": "hx", "EDITOR": "nano"},
			wantArgs: []string{"hx", "song.txt"},
		},
		{
			name:     "editor env",
			env:      map[string]string{"EDITOR": "emacs -nw"},
			wantArgs: []string{"emacs", "-nw", "song.txt"},
		},
		{
			name:      "detected",
			installed: []string{"vi", "nano", "notepad"},
			wantArgs:  nil, // platform dependent, only checks success
		},
		{
			name:    "nothing available",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := testEditor(tt.command, tt.env, tt.installed...)
			cmd, err := e.Command("song.txt")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Command: %v", err)
			}
			if tt.wantArgs == nil {
				if cmd.Args[len(cmd.Args)-1] != "song.txt" {
					t.Fatalf("args = %v", cmd.Args)
				}
				return
			}
			if len(cmd.Args) != len(tt.wantArgs) {
				t.Fatalf("args = %v, want %v", cmd.Args, tt.wantArgs)
			}
			for i := range tt.wantArgs {
				if cmd.Args[i] != tt.wantArgs[i] {
					t.Fatalf("args = %v, want %v", cmd.Args, tt.wantArgs)
				}
			}
		})
	}
}

func TestDraftRoundTrip(t *testing.T) {
	path, err := WriteDraft("line one\nline two")
	if err != nil {
		t.Fatalf("WriteDraft: %v", err)
	}
	if filepath.Ext(path) != ".txt" {
		t.Fatalf("draft path %q", path)
	}

	got, err := ReadDraft(path)
	if err != nil {
		t.Fatalf("ReadDraft: %v", err)
	}
	if got != "line one\nline two" {
		t.Fatalf("ReadDraft = %q", got)
	}

	if _, err := ReadDraft(path); err == nil {
		t.Fatal("draft should be removed after reading")
	}
}

func TestReadDraftDropsEditorNewline(t *testing.T) {
	text := "verse\nchorus\nbridge"
	for _, suffix := range []string{"\n", "\r\n", "\n\n"} {
		path, err := WriteDraft(text)
		if err != nil {
			t.Fatalf("WriteDraft: %v", err)
		}
		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			t.Fatal(err)
		}
		f.WriteString(suffix)
		f.Close()

		got, err := ReadDraft(path)
		if err != nil {
			t.Fatalf("ReadDraft: %v", err)
		}
		if got != text {
			t.Fatalf("suffix %q: ReadDraft = %q, want %q", suffix, got, text)
		}
	}
}
