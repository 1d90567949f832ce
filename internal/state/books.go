package state

import "github.com/Bhanujeet/stackpad/internal/message"

// Pastebooks caches the pastebook list and the active pointer. Both reload
// after any mutation that could change membership or counts; the active
// pointer only moves once the backend confirms.
type Pastebooks struct {
	entries []message.PastebookEntry
	active  *message.Pastebook
}

// SetEntries replaces the cached list.
func (p *Pastebooks) SetEntries(entries []message.PastebookEntry) {
	p.entries = entries
}

// SetActive replaces the cached active pointer. A nil pb means the backend
// reported no active pastebook.
func (p *Pastebooks) SetActive(pb *message.Pastebook) {
	p.active = pb
}

// Entries returns the cached list in backend order.
func (p *Pastebooks) Entries() []message.PastebookEntry { return p.entries }

// Active returns the cached active pastebook, or nil when unknown.
func (p *Pastebooks) Active() *message.Pastebook { return p.active }

// ActiveName returns the active pastebook's name, or "" when unknown.
func (p *Pastebooks) ActiveName() string {
	if p.active == nil {
		return ""
	}
	return p.active.Name
}

// ActiveIndex returns the position of the active pastebook in the cached
// list, or -1.
func (p *Pastebooks) ActiveIndex() int {
	if p.active == nil {
		return -1
	}
	for i, e := range p.entries {
		if e.ID == p.active.ID {
			return i
		}
	}
	return -1
}

// Len returns the number of cached pastebooks.
func (p *Pastebooks) Len() int { return len(p.entries) }
