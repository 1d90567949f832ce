// Package backendtest is an in-memory stand-in for the stackpad backend. It
// serves the full bridge protocol over any net.Listener or single net.Conn,
// with the same storage semantics as the real thing, so surfaces and tests
// can run against it without a desktop session. Nothing is persisted.
package backendtest

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Bhanujeet/stackpad/internal/message"
)

// DefaultBookName is the pastebook present in a fresh store.
const DefaultBookName = "My First Pastebook"

type pastebook struct {
	id        string
	name      string
	createdAt time.Time
	clips     []message.Clip
}

// Store holds pastebooks and clips. One pastebook is always active; a fresh
// store starts with an empty default pastebook.
type Store struct {
	mu     sync.Mutex
	books  []*pastebook
	active string
	apiKey string
	now    func() time.Time
}

// NewStore returns a store with the default pastebook active.
func NewStore() *Store {
	s := &Store{now: time.Now}
	pb := &pastebook{id: uuid.NewString(), name: DefaultBookName, createdAt: s.now()}
	s.books = []*pastebook{pb}
	s.active = pb.id
	return s
}

// SetClock replaces the time source. Test hook.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

func (s *Store) activeBook() *pastebook {
	for _, b := range s.books {
		if b.id == s.active {
			return b
		}
	}
	return nil
}

// NewClip builds a clip the way the backend does on capture.
func (s *Store) NewClip(content, sourceApp, windowTitle string) message.Clip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return message.Clip{
		ID:      uuid.NewString(),
		Content: content,
		Metadata: message.ClipMetadata{
			Timestamp:   s.now(),
			SourceApp:   sourceApp,
			WindowTitle: windowTitle,
		},
		Status: "raw",
	}
}

// AddClip inserts clip at the front of the active pastebook.
func (s *Store) AddClip(clip message.Clip) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.activeBook()
	if b == nil {
		return false
	}
	b.clips = append([]message.Clip{clip}, b.clips...)
	return true
}

// Clips returns the active pastebook's clips, newest first.
func (s *Store) Clips() []message.Clip {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.activeBook()
	if b == nil {
		return nil
	}
	out := make([]message.Clip, len(b.clips))
	copy(out, b.clips)
	return out
}

// DeleteClip removes the clip with the given id from the active pastebook.
func (s *Store) DeleteClip(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.activeBook()
	if b == nil {
		return false
	}
	for i, c := range b.clips {
		if c.ID == id {
			b.clips = append(b.clips[:i], b.clips[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateClip replaces a clip's content.
func (s *Store) UpdateClip(id, content string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.activeBook()
	if b == nil {
		return false
	}
	for i := range b.clips {
		if b.clips[i].ID == id {
			b.clips[i].Content = content
			return true
		}
	}
	return false
}

// ReorderClips rearranges the active pastebook: listed ids first in the
// given order, then unlisted clips in their prior relative order. Unknown
// ids are ignored.
func (s *Store) ReorderClips(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.activeBook()
	if b == nil {
		return
	}
	ordered := make([]message.Clip, 0, len(b.clips))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		for _, c := range b.clips {
			if c.ID == id {
				ordered = append(ordered, c)
				seen[id] = true
				break
			}
		}
	}
	for _, c := range b.clips {
		if !seen[c.ID] {
			ordered = append(ordered, c)
		}
	}
	b.clips = ordered
}

// MergeClips joins the contents of the given clips with blank lines, in the
// given id order, into a new front-inserted clip carrying the first matched
// clip's metadata. The merged clips are removed. Returns nil when fewer than
// two ids are given or none match.
func (s *Store) MergeClips(ids []string) *message.Clip {
	if len(ids) < 2 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.activeBook()
	if b == nil {
		return nil
	}

	var contents []string
	var meta *message.ClipMetadata
	for _, id := range ids {
		for _, c := range b.clips {
			if c.ID == id {
				contents = append(contents, c.Content)
				if meta == nil {
					m := c.Metadata
					meta = &m
				}
				break
			}
		}
	}
	if len(contents) == 0 {
		return nil
	}

	merged := message.Clip{
		ID:       uuid.NewString(),
		Content:  strings.Join(contents, "\n\n"),
		Metadata: *meta,
		Status:   "raw",
	}

	keep := b.clips[:0]
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	for _, c := range b.clips {
		if !drop[c.ID] {
			keep = append(keep, c)
		}
	}
	b.clips = append([]message.Clip{merged}, keep...)
	return &merged
}

// AllContent returns every clip's content joined with blank lines.
func (s *Store) AllContent() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.activeBook()
	if b == nil {
		return ""
	}
	parts := make([]string, len(b.clips))
	for i, c := range b.clips {
		parts[i] = c.Content
	}
	return strings.Join(parts, "\n\n")
}

// ClearClips empties the active pastebook.
func (s *Store) ClearClips() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b := s.activeBook(); b != nil {
		b.clips = nil
	}
}

// ListPastebooks returns every pastebook with its clip count.
func (s *Store) ListPastebooks() []message.PastebookEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]message.PastebookEntry, len(s.books))
	for i, b := range s.books {
		out[i] = message.PastebookEntry{ID: b.id, Name: b.name, Count: len(b.clips)}
	}
	return out
}

// ActivePastebook returns the active pastebook, or nil.
func (s *Store) ActivePastebook() *message.Pastebook {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.activeBook()
	if b == nil {
		return nil
	}
	return &message.Pastebook{ID: b.id, Name: b.name, CreatedAt: b.createdAt}
}

// CreatePastebook creates a pastebook and makes it active.
func (s *Store) CreatePastebook(name string) message.Pastebook {
	s.mu.Lock()
	defer s.mu.Unlock()
	pb := &pastebook{id: uuid.NewString(), name: name, createdAt: s.now()}
	s.books = append(s.books, pb)
	s.active = pb.id
	return message.Pastebook{ID: pb.id, Name: pb.name, CreatedAt: pb.createdAt}
}

// SwitchPastebook makes the given pastebook active if it exists.
func (s *Store) SwitchPastebook(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.books {
		if b.id == id {
			s.active = id
			return true
		}
	}
	return false
}

// DeletePastebook removes a pastebook. The last remaining pastebook cannot
// be deleted. Deleting the active one makes the first remaining active.
func (s *Store) DeletePastebook(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.books) <= 1 {
		return false
	}
	for i, b := range s.books {
		if b.id == id {
			s.books = append(s.books[:i], s.books[i+1:]...)
			if s.active == id {
				s.active = s.books[0].id
			}
			return true
		}
	}
	return false
}

// RenamePastebook renames a pastebook if it exists.
func (s *Store) RenamePastebook(id, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.books {
		if b.id == id {
			b.name = name
			return true
		}
	}
	return false
}

// SetAPIKey stores the model API key.
func (s *Store) SetAPIKey(key string) {
	s.mu.Lock()
	s.apiKey = key
	s.mu.Unlock()
}

// APIKey returns the stored model API key.
func (s *Store) APIKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apiKey
}

// MagicSort stands in for the model-driven reorder: clips are sorted by
// content, case-insensitively. Deterministic so tests can assert on it.
func (s *Store) MagicSort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.activeBook()
	if b == nil {
		return
	}
	sort.SliceStable(b.clips, func(i, j int) bool {
		return strings.ToLower(b.clips[i].Content) < strings.ToLower(b.clips[j].Content)
	})
}
