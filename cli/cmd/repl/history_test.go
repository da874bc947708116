package repl

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestHistory_WriteAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)

	if _, err := h.WriteWithMode("let x = 1", modeEval); err != nil {
		t.Fatalf("WriteWithMode failed: %v", err)
	}

	if _, err := h.WriteWithMode("list", modeCtrl); err != nil {
		t.Fatalf("WriteWithMode failed: %v", err)
	}

	// A fresh instance reloads both entries with their modes.
	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if reloaded.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", reloaded.Len())
	}

	first, err := reloaded.GetEntry(0)
	if err != nil {
		t.Fatalf("GetEntry(0) failed: %v", err)
	}

	if first.Line != "let x = 1" || first.Mode != modeEval {
		t.Errorf("entry 0 = %+v, want eval-mode 'let x = 1'", first)
	}

	second, err := reloaded.GetEntry(1)
	if err != nil {
		t.Fatalf("GetEntry(1) failed: %v", err)
	}

	if second.Line != "list" || second.Mode != modeCtrl {
		t.Errorf("entry 1 = %+v, want ctrl-mode 'list'", second)
	}
}

func TestHistory_DedupMovesEntryToEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)

	for _, line := range []string{"first", "second", "first"} {
		if _, err := h.WriteWithMode(line, modeEval); err != nil {
			t.Fatalf("WriteWithMode(%q) failed: %v", line, err)
		}
	}

	entries := h.Entries()
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}

	if entries[0].Line != "second" || entries[1].Line != "first" {
		t.Errorf("entries = %v, want [second first]", entries)
	}

	// The rewrite must also be reflected on disk.
	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if reloaded.Len() != 2 {
		t.Errorf("reloaded Len() = %d, want 2", reloaded.Len())
	}
}

func TestHistory_SameLineDifferentModes(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)

	// The same text in different modes yields distinct entries.
	if _, err := h.WriteWithMode("help", modeEval); err != nil {
		t.Fatalf("WriteWithMode failed: %v", err)
	}

	if _, err := h.WriteWithMode("help", modeCtrl); err != nil {
		t.Fatalf("WriteWithMode failed: %v", err)
	}

	if h.Len() != 2 {
		t.Errorf("Len() = %d, want 2", h.Len())
	}
}

func TestHistory_SkipsBlankAndConsecutiveDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)

	if _, err := h.WriteWithMode("   ", modeEval); err != nil {
		t.Fatalf("WriteWithMode failed: %v", err)
	}

	if h.Len() != 0 {
		t.Errorf("blank entry recorded: Len() = %d", h.Len())
	}

	for range 3 {
		if _, err := h.WriteWithMode("same", modeEval); err != nil {
			t.Fatalf("WriteWithMode failed: %v", err)
		}
	}

	if h.Len() != 1 {
		t.Errorf("consecutive duplicates recorded: Len() = %d, want 1", h.Len())
	}
}

func TestHistory_LoadMissingFile(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "does-not-exist"))

	if err := h.Load(); err != nil {
		t.Errorf("Load of missing file should succeed, got %v", err)
	}

	if h.Len() != 0 {
		t.Errorf("Len() = %d, want 0", h.Len())
	}
}

func TestHistory_LoadLegacyFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	// Lines without a mode prefix load as eval-mode entries.
	content := "let x = 1\nE:let y = 2\nC:list\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := []HistoryEntry{
		{Line: "let x = 1", Mode: modeEval},
		{Line: "let y = 2", Mode: modeEval},
		{Line: "list", Mode: modeCtrl},
	}

	entries := h.Entries()
	if len(entries) != len(want) {
		t.Fatalf("len(entries) = %d, want %d", len(entries), len(want))
	}

	for i, entry := range entries {
		if entry != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, entry, want[i])
		}
	}
}

func TestHistory_GetEntryOutOfBounds(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), baseHistory))

	if _, err := h.GetEntry(0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("GetEntry(0) error = %v, want ErrOutOfBounds", err)
	}

	if _, err := h.GetEntry(-1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("GetEntry(-1) error = %v, want ErrOutOfBounds", err)
	}
}
