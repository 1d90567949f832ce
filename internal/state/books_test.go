package state

import (
	"testing"

	"github.com/Bhanujeet/stackpad/internal/message"
)

func TestPastebooksActiveIndex(t *testing.T) {
	t.Parallel()

	var p Pastebooks
	if got := p.ActiveIndex(); got != -1 {
		t.Errorf("empty ActiveIndex() = %d, want -1", got)
	}
	if got := p.ActiveName(); got != "" {
		t.Errorf("empty ActiveName() = %q, want empty", got)
	}

	p.SetEntries([]message.PastebookEntry{
		{ID: "a", Name: "First", Count: 2},
		{ID: "b", Name: "Second", Count: 0},
	})
	p.SetActive(&message.Pastebook{ID: "b", Name: "Second"})

	if got := p.ActiveIndex(); got != 1 {
		t.Errorf("ActiveIndex() = %d, want 1", got)
	}
	if got := p.ActiveName(); got != "Second" {
		t.Errorf("ActiveName() = %q, want Second", got)
	}
	if got := p.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
}

func TestPastebooksActiveMissingFromList(t *testing.T) {
	t.Parallel()

	var p Pastebooks
	p.SetEntries([]message.PastebookEntry{{ID: "a", Name: "Only", Count: 1}})
	p.SetActive(&message.Pastebook{ID: "gone", Name: "Deleted"})

	// A stale active pointer between reloads must not panic or match.
	if got := p.ActiveIndex(); got != -1 {
		t.Errorf("ActiveIndex() = %d, want -1 for unknown active id", got)
	}
	if got := p.ActiveName(); got != "Deleted" {
		t.Errorf("ActiveName() = %q, want the cached name", got)
	}
}
