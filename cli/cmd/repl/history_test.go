package repl

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestHistoryRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)

	if _, err := h.WriteWithMode("0b1010", modeEval); err != nil {
		t.Fatal(err)
	}

	if _, err := h.WriteWithMode("list", modeCtrl); err != nil {
		t.Fatal(err)
	}

	// A fresh instance must load the same entries with modes intact.
	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}

	entries := reloaded.Entries()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	if entries[0].Line != "0b1010" || entries[0].Mode != modeEval {
		t.Errorf("entry 0 = %+v", entries[0])
	}

	if entries[1].Line != "list" || entries[1].Mode != modeCtrl {
		t.Errorf("entry 1 = %+v", entries[1])
	}
}

func TestHistoryDeduplicates(t *testing.T) {
	t.Parallel()

	h := NewHistory(filepath.Join(t.TempDir(), baseHistory))

	for _, line := range []string{"$a$", "$b$", "$a$"} {
		if _, err := h.WriteWithMode(line, modeEval); err != nil {
			t.Fatal(err)
		}
	}

	// The repeated entry moves to the end.
	if h.Len() != 2 {
		t.Fatalf("len = %d, want 2", h.Len())
	}

	last, err := h.GetLine(1)
	if err != nil || last != "$a$" {
		t.Errorf("last entry = %q, %v", last, err)
	}
}

func TestHistorySameModeOnly(t *testing.T) {
	t.Parallel()

	h := NewHistory(filepath.Join(t.TempDir(), baseHistory))

	// The same line in different modes is two distinct entries.
	if _, err := h.WriteWithMode("quit", modeEval); err != nil {
		t.Fatal(err)
	}

	if _, err := h.WriteWithMode("quit", modeCtrl); err != nil {
		t.Fatal(err)
	}

	if h.Len() != 2 {
		t.Errorf("len = %d, want 2", h.Len())
	}
}

func TestHistorySkipsBlankAndRepeat(t *testing.T) {
	t.Parallel()

	h := NewHistory(filepath.Join(t.TempDir(), baseHistory))

	if _, err := h.WriteWithMode("  ", modeEval); err != nil {
		t.Fatal(err)
	}

	if _, err := h.WriteWithMode("0b1", modeEval); err != nil {
		t.Fatal(err)
	}

	if _, err := h.WriteWithMode("0b1", modeEval); err != nil {
		t.Fatal(err)
	}

	if h.Len() != 1 {
		t.Errorf("len = %d, want 1", h.Len())
	}
}

func TestHistoryOutOfBounds(t *testing.T) {
	t.Parallel()

	h := NewHistory(filepath.Join(t.TempDir(), baseHistory))

	if _, err := h.GetLine(0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("GetLine(0) error = %v, want ErrOutOfBounds", err)
	}

	if _, err := h.GetEntry(-1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("GetEntry(-1) error = %v, want ErrOutOfBounds", err)
	}
}

func TestHistoryLoadLegacyFormat(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), baseHistory)

	// Lines without a mode prefix load as eval-mode entries.
	if err := os.WriteFile(path, []byte("0b1\nC:clear\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatal(err)
	}

	entries := h.Entries()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	if entries[0].Mode != modeEval || entries[1].Mode != modeCtrl {
		t.Errorf("modes = %v, %v", entries[0].Mode, entries[1].Mode)
	}

	if err := NewHistory(filepath.Join(t.TempDir(), "absent")).Load(); err != nil {
		t.Errorf("Load of missing file failed: %v", err)
	}
}
